package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogger(tt.verbosity, "")
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
	SetupLogger(0, "")
}

func TestSetupLogger_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "asciix.log")

	SetupLogger(0, logPath)
	l := GetLogger("test")
	l.Warn().Msg("hello from test")
	SetupLogger(0, "")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"component":"test"`)
}
