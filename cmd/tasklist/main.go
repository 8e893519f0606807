package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.sr.ht/~jakintosh/tasklist/internal/config"
	"git.sr.ht/~jakintosh/tasklist/internal/logging"
	"git.sr.ht/~jakintosh/tasklist/internal/store"
	"git.sr.ht/~jakintosh/tasklist/internal/web"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		logging.New(os.Stderr, "info").Fatal("Failed to load config", "err", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	if cfg.LogFile != "" {
		fileLogger, f, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			logger.Fatal("Failed to open log file", "path", cfg.LogFile, "err", err)
		}
		defer f.Close()
		logger = fileLogger
	}
	if cfg.ConfigFile != "" {
		logger.Info("Loaded config", "path", cfg.ConfigFile)
	}

	// Initialize Store
	s, closeStore, err := store.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize store", "err", err)
	}
	defer closeStore()

	if cfg.Seed {
		if err := store.Seed(s); err != nil {
			logger.Fatal("Failed to seed store", "err", err)
		}
	}

	// Initialize Web Server
	srv, err := web.NewServer(s, web.ServerOptions{Logger: logger})
	if err != nil {
		logger.Fatal("Failed to initialize server", "err", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", "err", err)
		}
	}()

	// Start Server
	logger.Info("Starting server", "addr", cfg.Addr, "store", cfg.Store, "ids", cfg.IDScheme)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", "err", err)
		return
	}
	logger.Info("Server stopped")
}
