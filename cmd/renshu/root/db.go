package root

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"renshu/internal/config"
	"renshu/internal/datekey"
	"renshu/internal/progress"
	"renshu/internal/storage"
)

type app struct {
	Store  *progress.Store
	Bridge *progress.Bridge
	Log    *zap.Logger
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	db, err := storage.Open(ctx, cfg.DB.Path)
	if err != nil {
		return nil, nil, err
	}

	docs := storage.NewDocStore(db, logger)
	store := progress.NewStore(docs, cfg.User, logger)
	bridge := progress.NewBridge(store, storage.NewSignalRepo(docs), logger)

	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}
	return &app{Store: store, Bridge: bridge, Log: logger}, cleanup, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// selectDate applies the shared --date flag, defaulting to today.
func selectDate(store *progress.Store, flag string) error {
	if flag == "" {
		store.SetSelectedDate(datekey.Today())
		return nil
	}
	d, err := datekey.Parse(flag)
	if err != nil {
		return err
	}
	store.SetSelectedDate(d)
	return nil
}
