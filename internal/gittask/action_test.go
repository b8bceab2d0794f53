package gittask

import "testing"

func TestActionRoundTrip(t *testing.T) {
	for _, a := range []TaskAction{TaskCreate, UpdateStatus, AddComment, DeleteLabel} {
		data, err := EncodeAction(a)
		if err != nil {
			t.Fatalf("encode %v: %v", a, err)
		}
		got, err := DecodeAction(data)
		if err != nil {
			t.Fatalf("decode %v: %v", a, err)
		}
		if got != a {
			t.Errorf("round trip = %v, want %v", got, a)
		}
	}
}

func TestActionUnknownTagFallsBackToUnknownUpdate(t *testing.T) {
	got, err := DecodeAction([]byte(`"SomeFutureAction"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != UnknownUpdate {
		t.Errorf("got %v, want UnknownUpdate", got)
	}
}

func TestCodecTaskRoundTrip(t *testing.T) {
	task, err := NewTask("Fix bug", "desc", "OPEN", "dev")
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	task.ID = "1"
	task.AddComment("1", map[string]string{"author": "dev"}, "hi", "")
	color := "blue"
	task.AddLabel("feature", &color, nil)

	data, err := EncodeTask(task)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeTask(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != task.ID || got.Props["name"] != task.Props["name"] {
		t.Errorf("round trip mismatch: %+v vs %+v", got, task)
	}
	if len(got.Comments) != 1 || got.Comments[0].Text != "hi" {
		t.Errorf("comments not preserved: %+v", got.Comments)
	}
	if len(got.Labels) != 1 || got.Labels[0].GetColor() != "blue" {
		t.Errorf("labels not preserved: %+v", got.Labels)
	}
}

func TestDecodeTaskMalformedJSON(t *testing.T) {
	if _, err := DecodeTask([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
