package gittask

import (
	"errors"
	"testing"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name        string
		taskName    string
		description string
		status      string
		wantErr     bool
	}{
		{name: "valid", taskName: "Fix bug", description: "details", status: "OPEN"},
		{name: "missing name", taskName: "", status: "OPEN", wantErr: true},
		{name: "missing status", taskName: "Fix bug", status: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask(tt.taskName, tt.description, tt.status, "")
			if tt.wantErr {
				if !errors.Is(err, ErrEmptyTask) {
					t.Fatalf("expected ErrEmptyTask, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if task.Props["name"] != tt.taskName {
				t.Errorf("name = %q, want %q", task.Props["name"], tt.taskName)
			}
			if task.Props["status"] != tt.status {
				t.Errorf("status = %q, want %q", task.Props["status"], tt.status)
			}
			if !task.HasProperty("created") {
				t.Error("expected created property to be set")
			}
		})
	}
}

func TestAddCommentAssignsSequentialID(t *testing.T) {
	task, err := NewTask("A", "", "OPEN", "")
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}

	c1 := task.AddComment("", map[string]string{"author": "dev"}, "first", "")
	if c1.ID != "1" {
		t.Errorf("first comment ID = %q, want %q", c1.ID, "1")
	}

	c2 := task.AddComment("", nil, "second", "dev2")
	if c2.ID != "2" {
		t.Errorf("second comment ID = %q, want %q", c2.ID, "2")
	}
	if c2.Props["author"] != "dev2" {
		t.Errorf("expected author fallback to be used, got %q", c2.Props["author"])
	}
}

func TestDeleteCommentNotFound(t *testing.T) {
	task, _ := NewTask("A", "", "OPEN", "")
	task.AddComment("1", nil, "hi", "")

	if err := task.DeleteComment("1"); err != nil {
		t.Fatalf("unexpected error deleting existing comment: %v", err)
	}
	if err := task.DeleteComment("1"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestLabelLookupByName(t *testing.T) {
	task, _ := NewTask("A", "", "OPEN", "")
	color := "red"
	task.AddLabel("bug", &color, nil)

	if l := task.LabelByName("bug"); l == nil || l.GetColor() != "red" {
		t.Fatalf("expected label bug with color red, got %+v", l)
	}
	if l := task.LabelByName("missing"); l != nil {
		t.Fatalf("expected nil for missing label, got %+v", l)
	}
	if err := task.DeleteLabel("missing"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
