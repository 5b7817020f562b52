package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "producttable.log")

	result := NewLoggerWithPath(Config{Level: "info", Format: FormatJSON, Output: OutputFile, File: path})
	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Info().Str("k", "v").Msg("hello")
	require.NoError(t, result.Close())
	require.NoError(t, result.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var event map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &event))
	assert.Equal(t, "hello", event["message"])
	assert.Equal(t, "v", event["k"])
}

func TestNewLoggerWithPath_Fallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	result := NewLoggerWithPath(Config{Output: OutputFile, File: filepath.Join(blocker, "app.log")})
	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	logger := ComponentLogger(base, "engine")
	logger.Info().Msg("x")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "engine", event["component"])
}

func TestTraceIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	id := GetOrGenerateTraceID(ctx)
	assert.Len(t, id, 26)

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
	assert.NotEqual(t, id, GenerateTraceID())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	FromContext(ctx).Info().Msg("attached")
	assert.Contains(t, buf.String(), "attached")

	// A bare context yields a usable, silent logger.
	FromContext(context.Background()).Info().Msg("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}
