package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/vinayk98/mini-crm/internal/app"
	"github.com/vinayk98/mini-crm/internal/credential"
	"github.com/vinayk98/mini-crm/internal/logging"
	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/remote"
	"github.com/vinayk98/mini-crm/internal/session"
	"github.com/vinayk98/mini-crm/internal/theme"
	"github.com/vinayk98/mini-crm/internal/viewmodel"
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
		apiURL     string
		noRemember bool
	)

	pflag.StringVar(&configPath, "config", model.DefaultConfigPath(), "path to the YAML config file")
	pflag.StringVar(&apiURL, "api", "", "backend base URL (overrides api.base_url)")
	pflag.BoolVar(&noRemember, "no-keyring", false, "do not remember the session between runs")
	pflag.Parse()

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	// The terminal belongs to Bubble Tea, so logs go to a file.
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logFile, cfg.Log.Level, false)
	slog.SetDefault(logger)

	theme.Apply(cfg.Display.Theme)

	client := remote.NewClient(cfg.API.BaseURL, cfg.API.Timeout())
	opts := []viewmodel.Option{
		viewmodel.WithLogger(logger),
		viewmodel.WithTimeout(cfg.API.Timeout()),
		viewmodel.WithPageSize(cfg.Display.PageSize),
	}

	var persist session.Persister
	if !noRemember {
		creds, err := credential.Open(model.ConfigDir())
		if err != nil {
			logger.Warn("keyring unavailable, sessions will not be remembered", "error", err)
		} else {
			persist = creds
		}
	}

	root := app.New(app.Deps{
		Leads:      viewmodel.NewLeads(client, opts...),
		Detail:     viewmodel.NewDetail(client, client, client, opts...),
		Auth:       client,
		Session:    session.NewManager(persist),
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
	})

	logger.Info("starting", "api", cfg.API.BaseURL)
	if _, err := tea.NewProgram(root, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
