package gitrepo

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initTestRepo(t *testing.T) *Repository {
	t.Helper()
	dir := t.TempDir()
	raw, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	cfg, err := raw.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	cfg.User.Name = "Test User"
	cfg.User.Email = "test@example.com"
	if err := raw.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}

	repo, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	return repo
}

func TestDiscoverMissingRepository(t *testing.T) {
	if _, err := Discover(t.TempDir()); err == nil {
		t.Fatal("expected error discovering a non-repository directory")
	}
}

func TestBlobRoundTrip(t *testing.T) {
	repo := initTestRepo(t)

	oid, err := repo.BlobCreate([]byte(`{"id":"1"}`))
	if err != nil {
		t.Fatalf("BlobCreate: %v", err)
	}
	data, err := repo.FindBlob(oid)
	if err != nil {
		t.Fatalf("FindBlob: %v", err)
	}
	if string(data) != `{"id":"1"}` {
		t.Errorf("got %q", data)
	}
}

func TestTreeBuilderAndCommit(t *testing.T) {
	repo := initTestRepo(t)

	taskOid, err := repo.BlobCreate([]byte(`{"id":"1"}`))
	if err != nil {
		t.Fatalf("BlobCreate: %v", err)
	}
	actionOid, err := repo.BlobCreate([]byte(`"TaskCreate"`))
	if err != nil {
		t.Fatalf("BlobCreate: %v", err)
	}

	tb := repo.TreeBuilder(nil)
	tb.Insert("1", taskOid)
	tb.Insert("action-1", actionOid)
	if tb.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tb.Len())
	}

	treeHash, err := tb.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	sig := object.Signature{Name: "Test User", Email: "test@example.com"}
	commitHash, err := repo.Commit("refs/tasks/tasks", sig, sig, "Create task 1", treeHash, nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	tip, err := repo.FindReference("refs/tasks/tasks")
	if err != nil {
		t.Fatalf("FindReference: %v", err)
	}
	if tip != commitHash {
		t.Fatalf("tip = %s, want %s", tip, commitHash)
	}

	tree, err := repo.PeelToTree(tip)
	if err != nil {
		t.Fatalf("PeelToTree: %v", err)
	}
	if oid, ok := tree.GetName("1"); !ok || oid != taskOid {
		t.Fatalf("GetName(1) = %s, %v", oid, ok)
	}

	var walked []string
	if err := tree.Walk(func(name string, _ plumbing.Hash) error {
		walked = append(walked, name)
		return nil
	}); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(walked) != 2 {
		t.Fatalf("walked = %v, want 2 entries", walked)
	}
}

func TestTreeBuilderRemoveMissingIsNoop(t *testing.T) {
	repo := initTestRepo(t)
	tb := repo.TreeBuilder(nil)
	tb.Remove("nonexistent")
	if tb.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tb.Len())
	}
}

func TestConfigGetSetString(t *testing.T) {
	repo := initTestRepo(t)

	if _, err := repo.ConfigGetString("task.ref"); err == nil {
		t.Fatal("expected error for unset key")
	}
	if err := repo.ConfigSetString("task.ref", "refs/heads/custom-tasks"); err != nil {
		t.Fatalf("ConfigSetString: %v", err)
	}
	got, err := repo.ConfigGetString("task.ref")
	if err != nil {
		t.Fatalf("ConfigGetString: %v", err)
	}
	if got != "refs/heads/custom-tasks" {
		t.Errorf("got %q", got)
	}
}

func TestRemotesAndFindRemoteURL(t *testing.T) {
	repo := initTestRepo(t)
	if err := repo.CreateRemote("origin", "https://example.com/repo.git"); err != nil {
		t.Fatalf("CreateRemote: %v", err)
	}

	names, err := repo.Remotes()
	if err != nil {
		t.Fatalf("Remotes: %v", err)
	}
	if len(names) != 1 || names[0] != "origin" {
		t.Fatalf("Remotes() = %v", names)
	}

	url, err := repo.FindRemoteURL("origin")
	if err != nil {
		t.Fatalf("FindRemoteURL: %v", err)
	}
	if url != "https://example.com/repo.git" {
		t.Errorf("got %q", url)
	}
}
