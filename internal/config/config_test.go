// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points the studysync home at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	for _, key := range []string{"STUDYSYNC_API_URL", "STUDYSYNC_ASSISTANT_URL", "STUDYSYNC_STORAGE", "STUDYSYNC_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	return dir
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	if cfg.API.LoginPath != "/login" {
		t.Errorf("LoginPath = %q, want /login", cfg.API.LoginPath)
	}
	if cfg.API.RegisterPath != "/api/auth/register" {
		t.Errorf("RegisterPath = %q, want /api/auth/register", cfg.API.RegisterPath)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, BackendFile)
	}
	if cfg.Timeout() != 15*time.Second {
		t.Errorf("Timeout() = %v, want 15s", cfg.Timeout())
	}
}

// =============================================================================
// LOADING
// =============================================================================

func TestLoad_NoFilesReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	if cfg.API.BaseURL != Default().API.BaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.API.BaseURL)
	}
}

func TestLoad_TOMLOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	content := `
[api]
base_url = "https://studysync.example.edu"
timeout_secs = 30

[storage]
backend = "sqlite"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	if cfg.API.BaseURL != "https://studysync.example.edu" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", cfg.API.TimeoutSecs)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	// Untouched keys keep their defaults.
	if cfg.API.LoginPath != "/login" {
		t.Errorf("LoginPath = %q, want /login", cfg.API.LoginPath)
	}
}

func TestLoad_JSONFallback(t *testing.T) {
	dir := isolate(t)
	content := `{"api": {"base_url": "http://10.0.0.5:9000"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	if cfg.API.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
}

func TestLoad_BrokenTOMLFallsBackWithError(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[api\nbroken"), 0600))

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load() error = nil, want decode error")
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config alongside a load error")
	}
	if cfg.API.BaseURL != Default().API.BaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.API.BaseURL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("STUDYSYNC_API_URL", "https://api.studysync.dev/")
	t.Setenv("STUDYSYNC_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	if cfg.API.BaseURL != "https://api.studysync.dev" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
}

func TestSaveTOML_RoundTripAndPermissions(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://campus.example.org"
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm() != 0600 {
		t.Errorf("perm = %o, want 600", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	if loaded.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.API.BaseURL, cfg.API.BaseURL)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, "api.base_url"},
		{"no host", func(c *Config) { c.API.BaseURL = "http://" }, "api.base_url"},
		{"bad assistant", func(c *Config) { c.API.AssistantURL = "localhost:8000" }, "api.assistant_url"},
		{"login path", func(c *Config) { c.API.LoginPath = "login" }, "api.login_path"},
		{"timeout", func(c *Config) { c.API.TimeoutSecs = 0 }, "api.timeout_secs"},
		{"negative rate", func(c *Config) { c.API.RequestsPerSecond = -1 }, "api.requests_per_second"},
		{"burst", func(c *Config) { c.API.Burst = 0 }, "api.burst"},
		{"backend", func(c *Config) { c.Storage.Backend = "redis" }, "storage.backend"},
		{"theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() = %v, want ValidateErrors", err)
			}
			found := false
			for _, e := range verrs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %s", verrs, tt.field)
			}
		})
	}
}

func TestValidate_EmptyAssistantAllowed(t *testing.T) {
	cfg := Default()
	cfg.API.AssistantURL = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

// =============================================================================
// GET / SET
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("api.timeout_secs", "42"))
	require.NoError(t, cfg.Set("storage.encrypt_token", "false"))
	require.NoError(t, cfg.Set("api.requests_per_second", "2.5"))
	require.NoError(t, cfg.Set("ui.theme", "light"))

	if v, _ := cfg.Get("api.timeout_secs"); v != 42 {
		t.Errorf("timeout_secs = %v, want 42", v)
	}
	if cfg.Storage.EncryptToken {
		t.Error("encrypt_token should be false")
	}
	if cfg.API.RequestsPerSecond != 2.5 {
		t.Errorf("requests_per_second = %v, want 2.5", cfg.API.RequestsPerSecond)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
}

func TestGetSet_Errors(t *testing.T) {
	cfg := Default()

	if _, err := cfg.Get("api.nope"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get(api.nope) = %v, want ErrUnknownKey", err)
	}
	if _, err := cfg.Get("api"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get(api) = %v, want ErrUnknownKey for a section", err)
	}
	if err := cfg.Set("api.timeout_secs", "soon"); err == nil {
		t.Error("Set with non-integer should fail")
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	joined := strings.Join(keys, ",")
	for _, want := range []string{"api.base_url", "storage.backend", "log.level", "version"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Keys() missing %s", want)
		}
	}
}

func TestStoragePath(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	p, err := cfg.StoragePath()
	require.NoError(t, err)
	if p != filepath.Join(dir, "session.json") {
		t.Errorf("file path = %q", p)
	}

	cfg.Storage.Backend = BackendSQLite
	p, err = cfg.StoragePath()
	require.NoError(t, err)
	if p != filepath.Join(dir, "session.db") {
		t.Errorf("sqlite path = %q", p)
	}
}
