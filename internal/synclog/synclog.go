// Package synclog records the outcome of a connector sync run: every local
// task pushed to a remote tracker during one invocation of
// `gittask task connector sync`, correlated by a run ID so a caller can line up
// log lines, CLI output, and any persisted audit trail for the same run.
//
// This is ambient bookkeeping around the connector layer, not part of the
// core task store — the store itself records mutations as git commits
// (internal/taskstore) regardless of whether a sync ever runs.
package synclog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how a single task's sync attempt ended.
type Outcome int

const (
	// Synced indicates the local task and the remote task were reconciled
	// without error.
	Synced Outcome = iota
	// Skipped indicates the task was left alone (e.g. no connector matched
	// its remote, or it carries no remote reference yet).
	Skipped
	// Failed indicates the connector call returned an error.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Synced:
		return "synced"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry records one task's sync attempt within a Run.
type Entry struct {
	TaskID      string    `json:"task_id"`
	Connector   string    `json:"connector"`
	RemoteID    string    `json:"remote_id,omitempty"`
	Outcome     Outcome   `json:"outcome"`
	Error       string    `json:"error,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// MarshalJSON writes Outcome as its string name rather than its ordinal, so
// Run JSON stays stable across reorderings of the Outcome const block.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON reads the string name written by MarshalJSON.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range []Outcome{Synced, Skipped, Failed} {
		if candidate.String() == name {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown sync outcome %q", name)
}

// Run is the envelope for one `connector sync` invocation: every Entry
// sharing a Run shares its ID, so log aggregation and CLI summaries can
// group them even when entries are emitted one at a time as the sync
// progresses.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Entries   []Entry   `json:"entries"`
}

// newID is a var so tests can substitute a deterministic generator.
var newID = uuid.NewString

// NewRun starts a Run with a fresh correlation ID.
func NewRun(startedAt time.Time) *Run {
	return &Run{ID: newID(), StartedAt: startedAt}
}

// Record appends an Entry to the run, stamping it with the connector name
// and outcome. A nil err records a Synced outcome; a non-nil err records
// Failed with its message.
func (r *Run) Record(taskID, connectorName, remoteID string, recordedAt time.Time, err error) {
	entry := Entry{
		TaskID:     taskID,
		Connector:  connectorName,
		RemoteID:   remoteID,
		RecordedAt: recordedAt,
		Outcome:    Synced,
	}
	if err != nil {
		entry.Outcome = Failed
		entry.Error = err.Error()
	}
	r.Entries = append(r.Entries, entry)
}

// Skip appends a Skipped entry, for tasks the sync deliberately passed over.
func (r *Run) Skip(taskID, reason string, recordedAt time.Time) {
	r.Entries = append(r.Entries, Entry{
		TaskID:     taskID,
		Outcome:    Skipped,
		Error:      reason,
		RecordedAt: recordedAt,
	})
}

// Counts tallies entries by Outcome, for the CLI's end-of-run summary line.
func (r *Run) Counts() (synced, skipped, failed int) {
	for _, e := range r.Entries {
		switch e.Outcome {
		case Synced:
			synced++
		case Skipped:
			skipped++
		case Failed:
			failed++
		}
	}
	return
}
