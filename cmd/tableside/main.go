package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"tableside/internal/auth"
	"tableside/internal/common/logger"
	"tableside/internal/config"
	"tableside/internal/storage"
	"tableside/internal/store"
)

func main() {
	cfgPath := flag.String("config", "", "path to TOML config (discovered when empty)")
	flag.Parse()

	lg := logger.New("tableside")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *cfgPath == "" {
		p, err := config.Find()
		if err != nil {
			lg.Error("config_discovery_failed", err, nil)
			os.Exit(1)
		}
		*cfgPath = p
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": *cfgPath})
		os.Exit(1)
	}

	gw, err := openGateway(ctx, cfg)
	if err != nil {
		lg.Error("storage_open_failed", err, map[string]any{"driver": cfg.Storage.Driver})
		os.Exit(1)
	}
	defer gw.Close()
	lg.Info("storage_ready", map[string]any{"driver": cfg.Storage.Driver})

	gate := auth.New(gw, logger.New("auth"))
	if err := gate.Hydrate(ctx); err != nil {
		lg.Error("auth_hydrate_failed", err, nil)
		os.Exit(1)
	}

	st := store.New(gw, logger.New("store"))
	if err := st.Hydrate(ctx); err != nil {
		lg.Error("store_hydrate_failed", err, nil)
		os.Exit(1)
	}

	agg := st.Aggregate()
	lg.Info("ready", map[string]any{
		"menu_items":    len(agg.MenuItems),
		"tables":        len(agg.Tables),
		"orders":        len(agg.Orders),
		"authenticated": gate.Authenticated(),
	})

	<-ctx.Done()
	lg.Info("shutdown", nil)
}

func openGateway(ctx context.Context, cfg config.Config) (storage.Gateway, error) {
	if cfg.Storage.Driver == config.DriverPostgres {
		return storage.ConnectPostgres(ctx, cfg.Postgres)
	}
	return storage.OpenSQLite(cfg.Storage.Path)
}
