package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewTextFormatWritesKeyValueLines(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: Text, Level: slog.LevelInfo, Writer: &buf})
	log.Info("task created", "id", "42")

	out := buf.String()
	if !strings.Contains(out, "task created") || !strings.Contains(out, "id=42") {
		t.Errorf("text output = %q, want it to contain msg and id=42", out)
	}
}

func TestNewJSONFormatWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: JSON, Level: slog.LevelInfo, Writer: &buf})
	log.Info("task created", "id", "42")

	out := buf.String()
	if !strings.Contains(out, `"id":"42"`) {
		t.Errorf("json output = %q, want it to contain \"id\":\"42\"", out)
	}
}

func TestNewRespectsLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: Text, Level: slog.LevelWarn, Writer: &buf})
	log.Info("should be dropped")

	if buf.Len() != 0 {
		t.Errorf("expected no output below configured level, got %q", buf.String())
	}
}

func TestDiscardDropsEverything(t *testing.T) {
	log := Discard()
	log.Error("should not panic or write anywhere")
}
