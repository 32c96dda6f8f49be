package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config is marquee's runtime configuration.
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

type TMDBConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Backend       string `mapstructure:"backend"` // file | sqlite | redis | memory
	Path          string `mapstructure:"path"`
	Key           string `mapstructure:"key"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

const (
	envPrefix = "MARQUEE"

	defaultConfigPath  = "~/.config/marquee/config.toml"
	defaultBaseURL     = "https://api.themoviedb.org/3"
	defaultLanguage    = "en-US"
	defaultTimeout     = 10 * time.Second
	defaultBackend     = "file"
	defaultStoragePath = "~/.local/share/marquee"
	defaultStorageKey  = "movieRandomizer"
	defaultRedisAddr   = "127.0.0.1:6379"
	defaultRedisPrefix = "marquee"
	defaultLogPath     = "~/.local/state/marquee/marquee.log"
	defaultLogLevel    = "info"
	dotEnvFile         = ".env"
)

var storageBackends = []string{"file", "sqlite", "redis", "memory"}

// Load reads the TOML config at path (or the default location), overlays
// MARQUEE_* environment variables and returns the result. A missing file is
// not an error. A .env file in the working directory is loaded first and
// never overrides variables that are already set.
func Load(path string) (Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return Config{}, err
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(resolved)
	v.SetConfigType("toml")

	// MARQUEE_TMDB_API_KEY -> tmdb.api_key
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("tmdb.api_key", envPrefix+"_TMDB_API_KEY", "TMDB_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if _, err := os.Stat(resolved); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Validate reports settings marquee cannot run with. A missing API key is
// not one of them; see SearchEnabled.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(storageBackends, c.Storage.Backend) {
		errs = append(errs, fmt.Errorf("storage.backend %q: want one of %s", c.Storage.Backend, strings.Join(storageBackends, ", ")))
	}
	if c.Storage.Backend == "redis" && c.Storage.RedisAddr == "" {
		errs = append(errs, errors.New("storage.redis_addr is required for the redis backend"))
	}
	if c.Storage.RedisDB < 0 {
		errs = append(errs, fmt.Errorf("storage.redis_db %d: must not be negative", c.Storage.RedisDB))
	}
	if c.TMDB.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("tmdb.timeout %s: must be positive", c.TMDB.Timeout))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// SearchEnabled reports whether an API key is configured.
func (c Config) SearchEnabled() bool {
	return c.TMDB.APIKey != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tmdb.base_url", defaultBaseURL)
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.language", defaultLanguage)
	v.SetDefault("tmdb.timeout", defaultTimeout)
	v.SetDefault("storage.backend", defaultBackend)
	v.SetDefault("storage.path", defaultStoragePath)
	v.SetDefault("storage.key", defaultStorageKey)
	v.SetDefault("storage.redis_addr", defaultRedisAddr)
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.redis_prefix", defaultRedisPrefix)
	v.SetDefault("log.path", defaultLogPath)
	v.SetDefault("log.level", defaultLogLevel)
}

// normalize trims values, restores defaults for blanks and expands paths.
func (c *Config) normalize() {
	c.TMDB.BaseURL = orDefault(c.TMDB.BaseURL, defaultBaseURL)
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.Language = orDefault(c.TMDB.Language, defaultLanguage)

	c.Storage.Backend = strings.ToLower(orDefault(c.Storage.Backend, defaultBackend))
	c.Storage.Path = mustExpand(orDefault(c.Storage.Path, defaultStoragePath))
	c.Storage.Key = orDefault(c.Storage.Key, defaultStorageKey)
	c.Storage.RedisAddr = strings.TrimSpace(c.Storage.RedisAddr)
	c.Storage.RedisPrefix = strings.TrimSpace(c.Storage.RedisPrefix)

	c.Log.Path = mustExpand(orDefault(c.Log.Path, defaultLogPath))
	c.Log.Level = strings.ToLower(orDefault(c.Log.Level, defaultLogLevel))
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
