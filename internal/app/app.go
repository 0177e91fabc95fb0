package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/taltos-portal/config"
	"github.com/daniilsolovey/taltos-portal/internal/content"
	"github.com/daniilsolovey/taltos-portal/internal/db"
	"github.com/daniilsolovey/taltos-portal/internal/rest"
	"github.com/daniilsolovey/taltos-portal/internal/rpc"
)

type App struct {
	Store  db.Store
	Logger *slog.Logger
	Echo   *echo.Echo
	Config config.Config
}

// New wires the HTTP surface over store. A nil store is allowed: the server
// still starts and reports the missing storage on every data route.
func New(cfg config.Config, store db.Store, logger *slog.Logger) *App {
	manager := content.NewManager(store, cfg.App.MaxLimit, logger)
	handler := rest.NewContentHandler(manager, logger).
		WithRPC(rpc.New(logger, manager))

	return &App{
		Store:  store,
		Logger: logger,
		Echo:   handler.RegisterRoutes(),
		Config: cfg,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.Logger.Info("starting server", "addr", a.Config.Addr(), "backend", a.Config.Store.Backend)

	err := a.Echo.Start(a.Config.Addr())
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	if a.Store != nil {
		if cerr := a.Store.Close(); cerr != nil {
			a.Logger.Error("failed to close store", "error", cerr)
		}
	}

	return err
}
