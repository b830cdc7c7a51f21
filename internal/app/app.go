package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/journal"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/session"
)

type App struct {
	logger   *slog.Logger
	router   *http.ServeMux
	cfg      *config.Config
	registry *session.Registry
	ws       *config.WebSocket
}

func New(logger *slog.Logger, cfg *config.Config, j *journal.Journal) (*App, error) {
	ws, err := config.NewWebSocket()
	if err != nil {
		return nil, err
	}

	app := &App{
		logger: logger,
		router: http.NewServeMux(),
		cfg:    cfg,
		registry: session.NewRegistry(logger, session.Options{
			TTL:           cfg.Session.TTL,
			SweepInterval: cfg.Session.SweepInterval,
			Cell:          cfg.CellSize,
			Journal:       j,
		}),
		ws: ws,
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.logger),
		middleware.Cors(),
	)
}

// Start serves until ctx is done, then shuts the server down. The session
// sweeper runs alongside the server.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening",
			slog.String("addr", a.cfg.Addr),
			slog.String("base path", a.cfg.BasePath),
		)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := a.registry.Run(gCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
