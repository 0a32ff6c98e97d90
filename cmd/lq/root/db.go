package root

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"lifequest/internal/config"
	"lifequest/internal/engine"
	"lifequest/internal/ledger"
	"lifequest/internal/notify"
	"lifequest/internal/storage"
	"lifequest/internal/ui"
)

func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// stderrNotifier renders engine and ledger notices without polluting stdout.
func stderrNotifier() notify.Notifier {
	return notify.Func(func(level notify.Level, message string) {
		switch level {
		case notify.Warn:
			fmt.Fprintln(os.Stderr, ui.Warn.Render(ui.IconWarn+" "+message))
		default:
			fmt.Fprintln(os.Stderr, ui.Muted.Render(ui.IconSparkle+" "+message))
		}
	})
}

func openDB(ctx context.Context) (*sql.DB, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	explicit := flagDBPath
	if explicit == "" {
		explicit = cfg.DBPath
	}
	path, err := storage.ResolveDBPath(explicit)
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

func openServices(ctx context.Context) (*engine.Service, *ledger.Service, *config.Config, func(), error) {
	db, cfg, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	n := stderrNotifier()
	svc := engine.NewService(db, engine.WithNotifier(n))
	led := ledger.NewService(db, ledger.WithRewarder(svc), ledger.WithNotifier(n))
	if err := svc.EnsureDefaults(ctx); err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}
	return svc, led, cfg, cleanup, nil
}
