// Package logging sets up the structured logger used across gittask: a
// thin wrapper around log/slog, in the style of the teacher's own
// newSilentLogger helper (cmd/bd/daemon_deprecated.go) rather than a
// heavyweight logging framework.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the slog handler used by New.
type Format string

const (
	// Text renders human-readable key=value lines, the default for
	// interactive CLI use.
	Text Format = "text"
	// JSON renders one JSON object per line, for scripted/CI use
	// (paired with the CLI's --output json flag).
	JSON Format = "json"
)

// Options configures New. The zero value produces a text logger at
// slog.LevelInfo writing to os.Stderr.
type Options struct {
	Format Format
	Level  slog.Level
	Writer io.Writer
}

// New builds a *slog.Logger per opts. Callers typically install the result
// with slog.SetDefault so library code that calls slog.Default() picks it up.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler
	if opts.Format == JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops every record, mirroring the teacher's
// newSilentLogger for tests and library callers that don't want CLI output.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
