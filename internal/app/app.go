package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/kv"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/spin"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/tmdb"
	"github.com/five82/marquee/internal/ui"
)

// Options configure the marquee application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/marquee/prefs.toml
	Reset      bool   // clear saved state and exit
	Ephemeral  bool   // keep state in memory only
}

// Run boots the marquee TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Ephemeral {
		cfg.Storage.Backend = kv.BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("using default prefs", zap.Error(err))
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if opts.Reset {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("reset state: %w", err)
		}
		logger.Info("saved state cleared", zap.String("backend", cfg.Storage.Backend))
		return nil
	}

	if err := restore(ctx, store, logger); err != nil {
		return err
	}

	logger.Info("marquee started",
		zap.String("backend", cfg.Storage.Backend),
		zap.Bool("search_enabled", cfg.SearchEnabled()))

	return ui.Run(ui.Options{
		Context:       ctx,
		Store:         store,
		Wheel:         spin.NewWheel(nil),
		Logger:        logger,
		ThemeName:     userPrefs.Theme,
		SpinDuration:  userPrefs.Spin(),
		PrefsPath:     opts.PrefsPath,
		LogPath:       cfg.Log.Path,
		SearchEnabled: cfg.SearchEnabled(),
	})
}

// openStore wires the kv backend and catalog client into a selection store.
// The returned func closes the backend.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (*state.Store, func(), error) {
	backend, err := kv.Open(ctx, kv.Config{
		Backend: cfg.Storage.Backend,
		Path:    cfg.Storage.Path,
		Redis: kv.RedisConfig{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
			Prefix:   cfg.Storage.RedisPrefix,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	closeFn := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("close storage failed", zap.Error(err))
		}
	}

	var catalog tmdb.Searcher
	if cfg.SearchEnabled() {
		client, err := tmdb.NewClient(tmdb.Options{
			BaseURL:  cfg.TMDB.BaseURL,
			APIKey:   cfg.TMDB.APIKey,
			Language: cfg.TMDB.Language,
			Timeout:  cfg.TMDB.Timeout,
		})
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("init tmdb client: %w", err)
		}
		catalog = client
	} else {
		logger.Warn("no tmdb api key configured; search disabled")
	}

	store := state.New(state.Options{
		Catalog: catalog,
		KV:      backend,
		Key:     cfg.Storage.Key,
		Logger:  logger,
	})
	return store, closeFn, nil
}

// restore loads the saved shortlist. A corrupt entry is discarded so the
// app starts from defaults; storage errors abort.
func restore(ctx context.Context, store *state.Store, logger *zap.Logger) error {
	err := store.Load(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, state.ErrCorruptSnapshot) {
		return err
	}
	logger.Warn("discarding unreadable saved state", zap.Error(err))
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("discard corrupt state: %w", err)
	}
	return nil
}
