package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureRecord(t *testing.T, log func(l *slog.Logger)) string {
	t.Helper()
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: rewriteAttr,
	}))
	log(l)
	return buf.String()
}

func TestRewriteAttr_ErrorKeyShortened(t *testing.T) {
	out := captureRecord(t, func(l *slog.Logger) {
		l.Info("save failed", "error", "connection refused")
	})
	assert.Contains(t, out, "err=")
	assert.NotContains(t, out, "error=")
}

func TestRewriteAttr_OversizedValueTruncated(t *testing.T) {
	big := strings.Repeat("x", 4096)
	out := captureRecord(t, func(l *slog.Logger) {
		l.Info("tracked value", "name", "blob", "value", big)
	})
	assert.Contains(t, out, "...")
	assert.Less(t, len(out), 1024)
}

func TestRewriteAttr_SmallValueUntouched(t *testing.T) {
	out := captureRecord(t, func(l *slog.Logger) {
		l.Info("tracked value", "name", "accuracy", "value", 0.93)
	})
	assert.Contains(t, out, "value=0.93")
	assert.NotContains(t, out, "...")
}

func TestNewNop_Discards(t *testing.T) {
	// Smoke: logging through the nop logger must not panic or print.
	NewNop().Info("ignored", "value", 1)
}
