package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/focusd/internal/capture"
	"github.com/alexanderramin/focusd/internal/cli"
	"github.com/alexanderramin/focusd/internal/config"
	"github.com/alexanderramin/focusd/internal/db"
	"github.com/alexanderramin/focusd/internal/repository"
	"github.com/alexanderramin/focusd/internal/service"
	"github.com/alexanderramin/focusd/internal/store"
	"github.com/alexanderramin/focusd/internal/vision"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine config path: env var or default ~/.focusd/focusd.toml
	cfgPath := os.Getenv("FOCUSD_CONFIG")
	if cfgPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		cfgPath = filepath.Join(home, ".focusd", "focusd.toml")
	}

	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open the history index database
	database, err := db.OpenDB(cfg.HistoryDBPath())
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer database.Close()

	historyRepo := repository.NewSQLiteHistoryRepo(database)

	// Wire the vision classifier
	var observer vision.Observer = vision.NoopObserver{}
	if cfg.Vision.LogCalls {
		observer = vision.NewLogObserver(os.Stderr)
	}
	classifier := vision.NewOpenAIClient(vision.Config{
		Endpoint:   cfg.Vision.Endpoint,
		APIKey:     cfg.APIKey,
		Model:      cfg.Vision.Model,
		TimeoutMs:  cfg.Vision.TimeoutMs,
		MaxRetries: cfg.Vision.MaxRetries,
		MaxTokens:  vision.DefaultConfig().MaxTokens,
	}, observer)

	app := &cli.App{
		Config:     cfg,
		Store:      store.NewFileStore(cfg.SessionsDir()),
		History:    service.NewHistoryService(historyRepo),
		Classifier: classifier,
		NewProvider: func(dir string) capture.Provider {
			return capture.NewCommandProvider(dir, cfg.CaptureInterval(), cfg.Capture.Command, nil)
		},
	}

	// Detect interactive terminal for the check-in form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
