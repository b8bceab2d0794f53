package jira

import "testing"

func TestSupportsRemote(t *testing.T) {
	tests := []struct {
		url       string
		wantOwner string
		wantOK    bool
	}{
		{"https://acme.atlassian.net/browse/PROJ-123", "PROJ", true},
		{"https://issues.example.com/browse/PROJ-123", "PROJ", true},
		{"https://github.com/acme/widgets", "", false},
	}

	c := &Connector{}
	for _, tt := range tests {
		owner, _, ok := c.SupportsRemote(tt.url)
		if ok != tt.wantOK || owner != tt.wantOwner {
			t.Errorf("SupportsRemote(%q) = (%q, %v), want (%q, %v)", tt.url, owner, ok, tt.wantOwner, tt.wantOK)
		}
	}
}

func TestPlainTextToADF(t *testing.T) {
	doc := plainTextToADF("hello")
	if doc["type"] != "doc" {
		t.Errorf("type = %v, want doc", doc["type"])
	}
}
