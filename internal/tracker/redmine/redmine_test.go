package redmine

import "testing"

func TestSupportsRemote(t *testing.T) {
	tests := []struct {
		url     string
		wantURL string
		wantOK  bool
	}{
		{"https://redmine.example.com/issues/123", "https://redmine.example.com", true},
		{"https://github.com/acme/widgets", "", false},
	}

	c := &Connector{}
	for _, tt := range tests {
		owner, _, ok := c.SupportsRemote(tt.url)
		if ok != tt.wantOK || owner != tt.wantURL {
			t.Errorf("SupportsRemote(%q) = (%q, %v), want (%q, %v)", tt.url, owner, ok, tt.wantURL, tt.wantOK)
		}
	}
}
