package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/backlog/internal/logger"
)

func Test_New_Writes_JSON_With_Fields_When_Format_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log, err := logger.New(&buf, "info", logger.FormatJSON)
	require.NoError(t, err)

	log.With("component", "test").Info("saved", "count", 3)
	log.Sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "saved", entry["msg"])
	assert.Equal(t, "test", entry["component"])
	assert.InDelta(t, 3, entry["count"], 0)
}

func Test_New_Drops_Entries_Below_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log, err := logger.New(&buf, "warn", logger.FormatConsole)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func Test_New_Rejects_Unknown_Level_And_Format(t *testing.T) {
	t.Parallel()

	_, err := logger.New(&bytes.Buffer{}, "loud", logger.FormatJSON)
	require.Error(t, err)

	_, err = logger.New(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}

func Test_Nop_Discards_Everything(t *testing.T) {
	t.Parallel()

	log := logger.Nop()
	log.Error("nothing happens", "k", "v")
	log.Sync()
}

func Test_With_Leaves_Parent_Logger_Unchanged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log, err := logger.New(&buf, "debug", logger.FormatJSON)
	require.NoError(t, err)

	child := log.With("backend", "file")
	log.Warn("parent")
	child.Error("child")
	log.Sync()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var parent, sub map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &parent))
	require.NoError(t, json.Unmarshal(lines[1], &sub))

	assert.Equal(t, "warn", parent["level"])
	assert.NotContains(t, parent, "backend")
	assert.Equal(t, "error", sub["level"])
	assert.Equal(t, "file", sub["backend"])
}
