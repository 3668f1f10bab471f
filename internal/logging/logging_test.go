// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/jiyuu-tui/internal/config"
)

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "jiyuu.log")

	logger, _, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", File: path})
	require.NoError(t, err)

	logger.Named("session").Info("model ready", zap.String("model", "llama3.2:1b"))
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "model ready", entry["msg"])
	assert.Equal(t, "session", entry["logger"])
	assert.Equal(t, "llama3.2:1b", entry["model"])
}

func TestNewLogger_LevelIsAdjustable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiyuu.log")

	logger, level, err := NewLogger(config.LoggingConfig{Level: "warn", Format: "console", File: path})
	require.NoError(t, err)

	logger.Info("before")
	level.SetLevel(zapcore.DebugLevel)
	logger.Debug("after")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "before")
	assert.Contains(t, string(data), "after")
}

func TestNewLogger_Invalid(t *testing.T) {
	_, _, err := NewLogger(config.LoggingConfig{Level: "banana", File: "stderr"})
	assert.Error(t, err)

	_, _, err = NewLogger(config.LoggingConfig{Level: "info", Format: "xml", File: "stderr"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
