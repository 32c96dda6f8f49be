package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/five82/marquee/internal/logtail"
)

func TestNew_WritesJSONLinesAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marquee.log")

	logger, err := New(Options{Path: path, Level: "warn"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("saved state unreadable", zap.String("key", "movieRandomizer"))
	logger.Error("movie search failed", zap.String("query", "alien"))
	_ = logger.Sync()

	entries, err := logtail.Tail(path, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "warn", entries[0].Level)
	require.Equal(t, "saved state unreadable", entries[0].Message)
	require.Equal(t, "movieRandomizer", entries[0].Fields["key"])
	require.False(t, entries[0].Time.IsZero())

	require.Equal(t, "error", entries[1].Level)
	require.Equal(t, "alien", entries[1].Fields["query"])
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Error("dropped")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{Path: filepath.Join(t.TempDir(), "x.log"), Level: "chatty"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse log level")
}

func TestNew_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	logger, err := New(Options{Path: path})
	require.NoError(t, err)
	logger.Info("started")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "previous run\n"))
	require.Contains(t, string(data), `"msg":"started"`)
}
