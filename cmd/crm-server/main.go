package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/vinayk98/mini-crm/internal/logging"
	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/seed"
	"github.com/vinayk98/mini-crm/internal/server"
	"github.com/vinayk98/mini-crm/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		addr       string
		dbPath     string
		doSeed     bool
		seedCount  int
		logLevel   string
	)

	pflag.StringVar(&configPath, "config", model.DefaultConfigPath(), "path to the YAML config file")
	pflag.StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	pflag.StringVar(&dbPath, "db", "", "SQLite database path (overrides server.db_path)")
	pflag.BoolVar(&doSeed, "seed", false, "load demo users and leads into an empty database")
	pflag.IntVar(&seedCount, "seed-count", seed.DefaultLeadCount, "number of demo leads created by --seed")
	pflag.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides log.level)")
	pflag.Parse()

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dbPath != "" {
		cfg.Server.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, true)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Server.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	st, err := store.NewSQLiteStore(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Info("database ready", "path", cfg.Server.DBPath)

	if doSeed {
		if err := seed.Run(ctx, st, seedCount, logger); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	return server.New(st, logger).ListenAndServe(ctx, cfg.Server.Addr)
}
