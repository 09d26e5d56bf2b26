package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesFields(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(buf, Options{Level: "info", Color: true})
	require.NoError(t, err)

	l.Info("request handled", F("path", "/foo"), F("status", 200))
	l.Debug("hidden")
	l.With(F("component", "server")).Error("accept failed", Err(errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "request handled")
	assert.Contains(t, out, `"path": "/foo"`)
	assert.Contains(t, out, `"status": 200`)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"component": "server"`)
	assert.Contains(t, out, `"error": "boom"`)

	// Test: a bytes.Buffer is not a terminal, so no color codes
	assert.NotContains(t, out, "\x1b[")
}

func TestLoggerTruncatesLongValues(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(buf, Options{Level: "debug"})
	require.NoError(t, err)

	l.Debug("long", F("value", strings.Repeat("x", 150)))

	assert.Contains(t, buf.String(), strings.Repeat("x", 100)+"...[truncated]")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 101))

	buf.Reset()
	l.Error("panic", F("stack", strings.Repeat("y", 150)))
	assert.Contains(t, buf.String(), strings.Repeat("y", 150))
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "INFO", "warn", "error"} {
		_, err := ParseLevel(level)
		assert.NoError(t, err, level)
	}

	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("nothing")
	l.With(F("a", 1)).Warn("still nothing")
	assert.NoError(t, l.Sync())
}
