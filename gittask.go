// Package gittask provides a minimal public API for embedding the
// git-backed task store in other Go programs, without going through the
// cmd/gittask CLI.
//
// Most callers only need Store, Task, and the error sentinels below; the
// connector layer (internal/tracker) is CLI-only for now and not re-exported
// here.
package gittask

import (
	"github.com/steveyegge/gittask/internal/gittask"
	"github.com/steveyegge/gittask/internal/taskstore"
)

// Core types for working with tasks.
type (
	Task       = gittask.Task
	Comment    = gittask.Comment
	Label      = gittask.Label
	TaskAction = gittask.TaskAction
)

// TaskAction constants.
const (
	ActionTaskCreate            = gittask.TaskCreate
	ActionUpdateStatus          = gittask.UpdateStatus
	ActionSetProperty           = gittask.SetProperty
	ActionEditProperty          = gittask.EditProperty
	ActionDeleteProperty        = gittask.DeleteProperty
	ActionSearchReplaceProperty = gittask.SearchReplaceProperty
	ActionAddComment            = gittask.AddComment
	ActionDeleteComment         = gittask.DeleteComment
	ActionAddLabel              = gittask.AddLabel
	ActionUpdateLabel           = gittask.UpdateLabel
	ActionDeleteLabel           = gittask.DeleteLabel
	ActionUnknownUpdate         = gittask.UnknownUpdate
)

// Error sentinels, matching spec.md §7's error taxonomy.
var (
	ErrRepositoryNotFound = gittask.ErrRepositoryNotFound
	ErrReferenceAbsent    = gittask.ErrReferenceAbsent
	ErrEntryNotFound      = gittask.ErrEntryNotFound
	ErrEmptyTask          = gittask.ErrEmptyTask
	ErrSerialization      = gittask.ErrSerialization
)

// Store is the task store handle (internal/taskstore.Store).
type Store = taskstore.Store

// DefaultRef is the task reference used when none is configured.
const DefaultRef = taskstore.DefaultRefPath

// Open returns a Store handle rooted at path. path need not be the
// repository root — discovery walks up to find the enclosing repository.
func Open(path string) *Store {
	return taskstore.New(path)
}

// NewTask constructs a Task with the reserved properties populated.
func NewTask(name, description, status, author string) (Task, error) {
	return gittask.NewTask(name, description, status, author)
}
