package voxscene

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultLoggerDebugToggle(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("test", false, LogFileConfig{}, zapcore.AddSync(&buf))

	l.Debugf("hidden %d", 1)
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug line written while debug disabled: %q", buf.String())
	}
	assert.False(t, l.DebugEnabled())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	l.Warnf("careful")

	out := buf.String()
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "test")

	l.SetDebug(false)
	assert.False(t, l.DebugEnabled())
}

func TestDefaultLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("", false, LogFileConfig{}, zapcore.AddSync(&buf))
	l.SetLevel(ParseLogLevel("error"))

	l.Infof("info line")
	l.Warnf("warn line")
	l.Errorf("error line")

	out := buf.String()
	assert.NotContains(t, out, "info line")
	assert.NotContains(t, out, "warn line")
	assert.Contains(t, out, "error line")

	// Leaving debug mode returns to the configured level, not info.
	l.SetDebug(true)
	l.SetDebug(false)
	l.Warnf("still hidden")
	assert.NotContains(t, buf.String(), "still hidden")
}

func TestDefaultLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "voxscene.log")
	l := newLogger("file", false, DefaultLogFileConfig(path), nil)

	l.Infof("meshed %d quads", 6)
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "meshed 6 quads")
	assert.Contains(t, string(data), "INFO")
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Debugf("x")
	l.Errorf("y")
}
