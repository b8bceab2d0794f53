package gittask

import (
	"encoding/json"
	"fmt"
)

// EncodeTask serializes a task to the UTF-8 JSON blob format stored at tree
// entry name <id>. Encoding is strict: Go's encoding/json already rejects
// unmarshalable values, so there's nothing extra to validate here beyond
// what NewTask/TaskFromProperties already enforce.
func EncodeTask(t Task) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode task: %w", err)
	}
	return data, nil
}

// DecodeTask deserializes a task blob. Decoding is lenient on unknown
// top-level fields (encoding/json already ignores them) but still reports
// malformed JSON as ErrSerialization rather than panicking, per spec.md §7.
func DecodeTask(data []byte) (Task, error) {
	var t Task
	if err := json.Unmarshal(data, &t); err != nil {
		return Task{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return t, nil
}

// EncodeAction serializes a TaskAction to the blob format stored at tree
// entry name action-<id>.
func EncodeAction(a TaskAction) ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode action: %w", err)
	}
	return data, nil
}

// DecodeAction deserializes an action blob, mapping any tag it doesn't
// recognize to UnknownUpdate (see TaskAction.UnmarshalJSON) rather than
// failing.
func DecodeAction(data []byte) (TaskAction, error) {
	var a TaskAction
	if err := json.Unmarshal(data, &a); err != nil {
		return UnknownUpdate, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return a, nil
}
