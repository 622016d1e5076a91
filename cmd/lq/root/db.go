package root

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lifequest/internal/config"
	"lifequest/internal/engine"
	"lifequest/internal/session"
	"lifequest/internal/storage"
)

func loadConfig() (*config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func openDB(ctx context.Context) (*sql.DB, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cfg, cleanup, nil
}

// openService resolves the session, opens the player store and runs the lazy
// day-boundary tick so every command starts from a settled record.
func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cfg, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}

	sess := session.NewManager(db)
	username, err := sess.Current(ctx)
	if err != nil {
		cleanup()
		if errors.Is(err, session.ErrNoSession) {
			return nil, nil, engine.ErrNoSession
		}
		return nil, nil, err
	}

	store, err := engine.OpenStore(ctx, storage.NewRecordRepo(db), username)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	svc := engine.NewService(store, engine.RealClock())
	svc.SetDailyQuests(cfg.DailyQuestsEnabled())
	if err := svc.Tick(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("daily rollover: %w", err)
	}
	return svc, cleanup, nil
}

func openSession(ctx context.Context) (*session.Manager, func(), error) {
	db, _, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return session.NewManager(db), cleanup, nil
}
