package gittask_test

import (
	"testing"

	git "github.com/go-git/go-git/v5"

	"github.com/steveyegge/gittask"
)

func TestOpenAndCreateTask(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatal(err)
	}

	store := gittask.Open(dir)
	if store == nil {
		t.Fatal("Open returned nil")
	}

	task, err := gittask.NewTask("write docs", "", "open", "")
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}

	created, err := store.CreateTask(task)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID == "" {
		t.Error("expected CreateTask to assign an ID")
	}
}

func TestDefaultRef(t *testing.T) {
	if gittask.DefaultRef != "refs/tasks/tasks" {
		t.Errorf("DefaultRef = %q, want refs/tasks/tasks", gittask.DefaultRef)
	}
}
