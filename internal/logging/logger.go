// Package logging builds the loggers hooksett components accept through
// their WithLogger options. Handler chains run on the caller's goroutine, so
// diagnostics stay on stderr and keep stdout free for whatever the caller
// (or the scan CLI) prints there.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// maxValueChars bounds the rendered "value" attribute. Tracked values are
// arbitrary caller payloads; a diagnostic line must not balloon with one.
const maxValueChars = 256

// New creates the diagnostic logger for registries, scanners and the CLI.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: rewriteAttr,
	}))
}

// rewriteAttr normalizes the module's recurring attributes: errors log under
// the short "err" key, and oversized tracked values are truncated.
func rewriteAttr(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case "error":
		a.Key = "err"
	case "value":
		if s := a.Value.String(); len(s) > maxValueChars {
			a.Value = slog.StringValue(s[:maxValueChars] + "...")
		}
	}
	return a
}

// NewNop returns a logger that discards everything. It is the default for
// every component, so instrumentation stays silent unless asked.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
