package gittask

import "errors"

// Sentinel errors for the taxonomy in spec.md §7. Wrap these with
// fmt.Errorf("...: %w", ...) to add context; callers can still match with
// errors.Is.
var (
	// ErrRepositoryNotFound means git discovery failed at the given path.
	ErrRepositoryNotFound = errors.New("repository not found")
	// ErrReferenceAbsent means an operation needed the task reference to
	// already exist, but it doesn't.
	ErrReferenceAbsent = errors.New("task reference does not exist")
	// ErrEntryNotFound means a lookup by ID (task, comment, label) missed.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrEmptyTask means a Task was rejected because name or status was
	// empty.
	ErrEmptyTask = errors.New("name or status is empty")
	// ErrSerialization means a stored blob failed to decode as JSON.
	ErrSerialization = errors.New("serialization error")
)
