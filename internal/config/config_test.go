package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearKeyEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.TMDB.BaseURL, defaultBaseURL)
	}
	if cfg.TMDB.Timeout != defaultTimeout {
		t.Fatalf("Timeout = %s, want %s", cfg.TMDB.Timeout, defaultTimeout)
	}
	if cfg.Storage.Backend != "file" {
		t.Fatalf("Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != "movieRandomizer" {
		t.Fatalf("Key = %q, want movieRandomizer", cfg.Storage.Key)
	}

	wantStorage, err := expandPath(defaultStoragePath)
	if err != nil {
		t.Fatalf("expandPath(defaultStoragePath) returned error: %v", err)
	}
	if cfg.Storage.Path != wantStorage {
		t.Fatalf("Storage.Path = %q, want %q", cfg.Storage.Path, wantStorage)
	}
	if !strings.HasPrefix(cfg.Log.Path, home) {
		t.Fatalf("Log.Path = %q, want it under HOME %q", cfg.Log.Path, home)
	}
	if cfg.SearchEnabled() {
		t.Fatalf("SearchEnabled = true with no API key")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate on defaults returned error: %v", err)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearKeyEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
[tmdb]
api_key = "  abc123  "
language = "de-DE"
timeout = "3s"

[storage]
backend = " SQLite "
path = "  ~/movies  "
key = "picks"

[log]
level = "DEBUG"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.APIKey != "abc123" {
		t.Fatalf("APIKey = %q, want %q", cfg.TMDB.APIKey, "abc123")
	}
	if cfg.TMDB.Language != "de-DE" {
		t.Fatalf("Language = %q, want de-DE", cfg.TMDB.Language)
	}
	if cfg.TMDB.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %s, want 3s", cfg.TMDB.Timeout)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Fatalf("Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != filepath.Join(home, "movies") {
		t.Fatalf("Storage.Path = %q, want %q", cfg.Storage.Path, filepath.Join(home, "movies"))
	}
	if cfg.Storage.Key != "picks" {
		t.Fatalf("Key = %q, want picks", cfg.Storage.Key)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.SearchEnabled() {
		t.Fatalf("SearchEnabled = false with an API key")
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
[storage]
backend = "file"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("MARQUEE_STORAGE_BACKEND", "redis")
	t.Setenv("MARQUEE_STORAGE_REDIS_ADDR", "cache:6380")
	t.Setenv("TMDB_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Backend != "redis" {
		t.Fatalf("Backend = %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Storage.RedisAddr != "cache:6380" {
		t.Fatalf("RedisAddr = %q, want cache:6380", cfg.Storage.RedisAddr)
	}
	if cfg.TMDB.APIKey != "from-env" {
		t.Fatalf("APIKey = %q, want from-env", cfg.TMDB.APIKey)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearKeyEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
[tmdb]
base_url = "   "
language = ""

[storage]
backend = ""
key = "  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.TMDB.BaseURL, defaultBaseURL)
	}
	if cfg.TMDB.Language != defaultLanguage {
		t.Fatalf("Language = %q, want %q", cfg.TMDB.Language, defaultLanguage)
	}
	if cfg.Storage.Backend != defaultBackend {
		t.Fatalf("Backend = %q, want %q", cfg.Storage.Backend, defaultBackend)
	}
	if cfg.Storage.Key != defaultStorageKey {
		t.Fatalf("Key = %q, want %q", cfg.Storage.Key, defaultStorageKey)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`[tmdb`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Config{
		TMDB:    TMDBConfig{Timeout: 0},
		Storage: StorageConfig{Backend: "floppy", RedisDB: -1},
		Log:     LogConfig{Level: "loud"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("Validate returned nil error")
	}
	for _, want := range []string{"storage.backend", "storage.redis_db", "tmdb.timeout", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("Validate error = %q, want it to mention %s", err.Error(), want)
		}
	}
}

func TestValidate_RedisNeedsAddress(t *testing.T) {
	cfg := Config{
		TMDB:    TMDBConfig{Timeout: time.Second},
		Storage: StorageConfig{Backend: "redis"},
		Log:     LogConfig{Level: "info"},
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "redis_addr") {
		t.Fatalf("Validate error = %v, want redis_addr complaint", err)
	}
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MARQUEE_DOTENV_NEW=fresh\nMARQUEE_DOTENV_SET=file\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("MARQUEE_DOTENV_SET", "shell")
	t.Cleanup(func() { _ = os.Unsetenv("MARQUEE_DOTENV_NEW") })

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv returned error: %v", err)
	}
	if got := os.Getenv("MARQUEE_DOTENV_NEW"); got != "fresh" {
		t.Fatalf("MARQUEE_DOTENV_NEW = %q, want fresh", got)
	}
	if got := os.Getenv("MARQUEE_DOTENV_SET"); got != "shell" {
		t.Fatalf("MARQUEE_DOTENV_SET = %q, want shell", got)
	}
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("loadDotEnv returned error: %v", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

// clearKeyEnv blanks the API key variables; viper ignores empty values.
func clearKeyEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("MARQUEE_TMDB_API_KEY", "")
}
