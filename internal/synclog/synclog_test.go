package synclog

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewRunAssignsID(t *testing.T) {
	run := NewRun(time.Now())
	if run.ID == "" {
		t.Error("NewRun left ID empty")
	}
}

func TestRecordSyncedAndFailed(t *testing.T) {
	run := NewRun(time.Now())
	now := time.Now()

	run.Record("1", "github", "gh-1", now, nil)
	run.Record("2", "github", "", now, errors.New("boom"))
	run.Skip("3", "no connector matched", now)

	synced, skipped, failed := run.Counts()
	if synced != 1 || skipped != 1 || failed != 1 {
		t.Fatalf("Counts() = (%d, %d, %d), want (1, 1, 1)", synced, skipped, failed)
	}

	if run.Entries[1].Error != "boom" {
		t.Errorf("Entries[1].Error = %q, want boom", run.Entries[1].Error)
	}
}

func TestOutcomeMarshalsAsName(t *testing.T) {
	data, err := json.Marshal(Synced)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"synced"` {
		t.Errorf("Marshal(Synced) = %s, want \"synced\"", data)
	}
}

func TestRunMarshalsEntries(t *testing.T) {
	run := NewRun(time.Now())
	run.Record("1", "jira", "PROJ-1", time.Now(), nil)

	data, err := json.Marshal(run)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Run
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Entries) != 1 || decoded.Entries[0].TaskID != "1" {
		t.Errorf("round-tripped run = %+v", decoded)
	}
}
