package logger

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToConsole(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Output: &buf})
	require.NoError(t, err)

	l.Named("generator").Infow("generated", "qrId", "abc")
	l.Debug("hidden")
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.Contains(t, out, "dotqr.generator")
	assert.Contains(t, out, "generated")
	assert.Contains(t, out, `"qrId": "abc"`)
	assert.NotContains(t, out, "hidden")
}

func TestDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Debug: true, Output: &buf})
	require.NoError(t, err)
	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLogToFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	l, err := New(Config{LogToFile: true, LogsDir: dir, Output: &buf})
	require.NoError(t, err)
	l.Warn("to file")
	require.NoError(t, l.Sync())

	assert.Equal(t, dir, l.LogsPath())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(dir + "/" + entries[0].Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"WARN"`)
}

func TestZoneOf(t *testing.T) {
	ref := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_, off := ref.In(zoneOf("GMT+3")).Zone()
	assert.Equal(t, 3*3600, off)
	_, off = ref.In(zoneOf("utc-5")).Zone()
	assert.Equal(t, -5*3600, off)
	assert.Equal(t, time.UTC, zoneOf(""))
	assert.Equal(t, time.UTC, zoneOf("Mars/Olympus"))
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("nothing")
	assert.Equal(t, "x", l.Named("x").Name)
}
