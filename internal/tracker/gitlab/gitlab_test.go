package gitlab

import "testing"

func TestSupportsRemote(t *testing.T) {
	tests := []struct {
		url       string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{"git@gitlab.com:acme/widgets.git", "acme", "widgets", true},
		{"https://gitlab.com/acme/widgets.git", "acme", "widgets", true},
		{"https://github.com/acme/widgets", "", "", false},
	}

	c := &Connector{}
	for _, tt := range tests {
		owner, repo, ok := c.SupportsRemote(tt.url)
		if ok != tt.wantOK || owner != tt.wantOwner || repo != tt.wantRepo {
			t.Errorf("SupportsRemote(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.url, owner, repo, ok, tt.wantOwner, tt.wantRepo, tt.wantOK)
		}
	}
}
