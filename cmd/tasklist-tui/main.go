package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"git.sr.ht/~jakintosh/tasklist/internal/config"
	"git.sr.ht/~jakintosh/tasklist/internal/logging"
	"git.sr.ht/~jakintosh/tasklist/internal/store"
	"git.sr.ht/~jakintosh/tasklist/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tasklist-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; logs only go to a file when asked.
	logger := logging.Discard()
	if cfg.LogFile != "" {
		fileLogger, f, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = fileLogger
	}

	s, closeStore, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer closeStore()

	if cfg.Seed {
		if err := store.Seed(s); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Starting terminal shell", "store", cfg.Store)
	return tui.Run(ctx, s, logger)
}
