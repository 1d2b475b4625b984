// Package logging builds the slog loggers used across the engines and the
// CLI. All diagnostics go to stderr: stdout belongs to the tutor replies in
// chat mode and must stay clean for piping.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger at the given level. Attribute keys are
// normalized so that "error" becomes "err", keeping log lines uniform no
// matter which package emitted them.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: normalizeKeys,
	}))
}

// NewNop returns a logger that discards everything. It is the default for
// embedded use, where the host application decides what to log.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func normalizeKeys(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
