package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{"warning", LevelWarn},
		{"Error", LevelError},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelWarn, Output: &buf, Prefix: "mixedtabs"})

	log.Info("hidden")
	log.Warn("shown %d", 42)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] mixedtabs: shown 42")
}

func TestLoggerFieldsAreSortedAndShared(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelInfo, Output: &buf})
	child := log.WithComponent("infobar").WithField("doc", "a.go")

	log.SetLevel(LevelDebug)
	child.Debug("state changed")

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line, "state changed {component=infobar, doc=a.go}"), line)
	assert.Equal(t, LevelDebug, child.Level())
}

func TestNullLogger(t *testing.T) {
	log := Null()
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.Error("nothing")
	log.WithField("k", "v").Error("nothing")

	assert.Zero(t, buf.Len())
}
