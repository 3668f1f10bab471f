// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv keeps the developer's JIYUU_* variables out of the tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"JIYUU_MODEL", "JIYUU_OLLAMA_URL", "JIYUU_LOCALE", "JIYUU_LOG_LEVEL", "JIYUU_LOG_FILE"} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

// =============================================================================
// DEFAULTS & VALIDATION
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultModel, cfg.Model.ID)
	assert.Equal(t, time.Second, cfg.Chat.ReadySignalDelay)
	assert.True(t, cfg.Model.AutoPull)
}

func TestSetDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Default().Ollama, cfg.Ollama)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"empty model", func(c *Config) { c.Model.ID = " " }, []string{"model.id"}},
		{"model with space", func(c *Config) { c.Model.ID = "llama 3" }, []string{"model.id"}},
		{"bad keep alive", func(c *Config) { c.Model.KeepAlive = "forever" }, []string{"model.keep_alive"}},
		{"keep alive forever", func(c *Config) { c.Model.KeepAlive = "-1" }, nil},
		{"bad url", func(c *Config) { c.Ollama.URL = "localhost" }, []string{"ollama.url"}},
		{"bad scheme", func(c *Config) { c.Ollama.URL = "ftp://localhost:11434" }, []string{"ollama.url"}},
		{"long ready signal", func(c *Config) { c.Chat.ReadySignalDelay = time.Hour }, []string{"chat.ready_signal_delay"}},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, []string{"logging.level"}},
		{
			"collects all",
			func(c *Config) {
				c.Logging.Format = "xml"
				c.UI.WordWrap = -1
			},
			[]string{"ui.word_wrap", "logging.format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "want ValidateErrors, got %v", err)
			var got []string
			for _, v := range verrs {
				got = append(got, v.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[model]
id = "qwen2.5:0.5b"

[chat]
ready_signal_delay = "250ms"
system_prompt = "Be brief."
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "qwen2.5:0.5b", cfg.Model.ID)
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.ReadySignalDelay)
	assert.Equal(t, "Be brief.", cfg.Chat.SystemPrompt)
	assert.True(t, cfg.Model.AutoPull, "unset booleans keep defaults")
	assert.Equal(t, Default().Ollama.URL, cfg.Ollama.URL)
}

func TestLoadFromPath_UnknownKey(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[model]\nname = \"x\"\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model.name")
}

func TestLoadFromPath_Invalid(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[logging]\nlevel = \"chatty\"\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestLoadFromPath_FixesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	clearEnv(t)
	path := writeConfig(t, "")
	require.NoError(t, os.Chmod(path, 0644))

	_, err := LoadFromPath(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", os.Getenv("HOME"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIYUU_MODEL", "phi3:mini")
	t.Setenv("JIYUU_OLLAMA_URL", "http://gpu-box:11434")
	t.Setenv("JIYUU_LOCALE", "ja")
	t.Setenv("JIYUU_LOG_LEVEL", "debug")
	t.Setenv("JIYUU_LOG_FILE", "/tmp/jiyuu.log")
	path := writeConfig(t, "[model]\nid = \"from-file\"\n")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "phi3:mini", cfg.Model.ID)
	assert.Equal(t, "http://gpu-box:11434", cfg.Ollama.URL)
	assert.Equal(t, "ja", cfg.UI.Locale)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/jiyuu.log", cfg.Logging.File)
}

func TestSaveTo_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Model.ID = "mistral:7b"
	cfg.Chat.SystemPrompt = "You are terse."
	cfg.Ollama.Timeout = 45 * time.Second
	cfg.UI.Mouse = true
	require.NoError(t, SaveTo(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

// =============================================================================
// GET / SET
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("model.id", "gemma2:2b"))
	require.NoError(t, cfg.Set("model.auto_pull", "false"))
	require.NoError(t, cfg.Set("ui.word_wrap", "80"))
	require.NoError(t, cfg.Set("chat.ready_signal_delay", "2s"))

	assert.Equal(t, "gemma2:2b", cfg.Model.ID)
	assert.False(t, cfg.Model.AutoPull)
	assert.Equal(t, 80, cfg.UI.WordWrap)
	assert.Equal(t, 2*time.Second, cfg.Chat.ReadySignalDelay)

	v, err := cfg.Get("model.id")
	require.NoError(t, err)
	assert.Equal(t, "gemma2:2b", v)
}

func TestGetSet_Errors(t *testing.T) {
	cfg := Default()

	_, err := cfg.Get("model.nope")
	assert.Error(t, err)
	_, err = cfg.Get("model")
	assert.Error(t, err, "sections are not values")
	assert.Error(t, cfg.Set("ui.word_wrap", "wide"))
	assert.Error(t, cfg.Set("model.auto_pull", "maybe"))
	assert.Error(t, cfg.Set("", "x"))
}

func TestKeys_AllResolvable(t *testing.T) {
	cfg := Default()
	keys := Keys()
	assert.Contains(t, keys, "chat.system_prompt")
	for _, k := range keys {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
}

// =============================================================================
// GLOBAL
// =============================================================================

func TestGlobal_ConcurrentAccess(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, Global())
		}()
	}
	wg.Wait()
}

func TestSetGlobal_WinsOverLazyLoad(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	cfg := Default()
	cfg.Model.ID = "set-first"
	SetGlobal(cfg)
	assert.Equal(t, "set-first", Global().Model.ID)
}

// =============================================================================
// WATCH
// =============================================================================

func TestWatch_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[ui]\nlocale = \"en\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 8)
	w, err := Watch(ctx, path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			changes <- cfg
		}
	})
	require.NoError(t, err)

	cfg := Default()
	cfg.UI.Locale = "fr"
	require.NoError(t, SaveTo(cfg, path))

	select {
	case got := <-changes:
		assert.Equal(t, "fr", got.UI.Locale)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 8)
	_, err := Watch(ctx, path, 10*time.Millisecond, func(*Config, error) {
		calls <- struct{}{}
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "notes.txt"), []byte("x"), 0600))

	select {
	case <-calls:
		t.Fatal("reload triggered by unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_MissingDir(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "gone", "config.toml"), 0, func(*Config, error) {})
	assert.Error(t, err)
}
