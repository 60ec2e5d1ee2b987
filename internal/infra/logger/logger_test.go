package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{input: "debug", want: zerolog.DebugLevel},
		{input: "INFO", want: zerolog.InfoLevel},
		{input: "", want: zerolog.InfoLevel},
		{input: "warning", want: zerolog.WarnLevel},
		{input: "error", want: zerolog.ErrorLevel},
		{input: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false, zerolog.InfoLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Str("track", "music1").Msg("playing")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "playing", entry["message"])
	assert.Equal(t, "music1", entry["track"])
	assert.NotContains(t, entry, "caller")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true, zerolog.DebugLevel)

	logger.Debug().Msg("queue replaced")
	assert.Contains(t, buf.String(), "queue replaced")
	assert.Contains(t, buf.String(), "logger_test.go")
}

func TestShortCaller(t *testing.T) {
	file := filepath.Join("home", "user", "musicbox", "internal", "app", "queue", "manager.go")
	assert.Equal(t, filepath.Join("queue", "manager.go")+":42", shortCaller(0, file, 42))
	assert.Equal(t, "main.go:7", shortCaller(0, "main.go", 7))
}

func TestInit_FileRequiresPath(t *testing.T) {
	err := Init(Config{Output: "file", Level: "info"})
	require.Error(t, err)
}
