package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/taltos-portal/config"
	_ "github.com/daniilsolovey/taltos-portal/docs"
	"github.com/daniilsolovey/taltos-portal/internal/app"
	"github.com/daniilsolovey/taltos-portal/internal/db"
)

var (
	flConfig = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug  = flag.Bool("debug", false, "enable debug mode")
	lg       *slog.Logger
)

// @title Táltos Lovasudvar API
// @version 1.0
// @description Public content API of the Táltos Lovasudvar riding school
// @host localhost:8000
// @BasePath /

func main() {
	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

	flag.Parse()

	lg = newLogger(*flDebug)

	cfg, err := config.Load(*flConfig, os.Getenv)
	exitOnError(err)

	if cfg.App.Debug && !*flDebug {
		lg = newLogger(true)
	}

	ctx := context.Background()

	openCtx, cancelOpen := context.WithTimeout(ctx, 15*time.Second)
	store, err := db.Open(openCtx, cfg.StoreOptions(), lg)
	cancelOpen()
	// An unreachable mongo still yields a store; a nil store means data routes answer 503.
	if err != nil {
		if !errors.Is(err, db.ErrUnavailable) {
			exitOnError(err)
		}
		lg.Warn("storage unavailable, serving without it", "error", err, "backend", cfg.Store.Backend)
	}

	service := app.New(cfg, store, lg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
