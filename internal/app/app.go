package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/session"
)

type App struct {
	logger   *slog.Logger
	router   *http.ServeMux
	registry *session.Registry
	server   *config.Server
	game     *config.Game
	jwt      *config.JWT
	ws       *config.WebSocket
}

func New(logger *slog.Logger, v *viper.Viper) (*App, error) {
	server, err := config.NewServer(v)
	if err != nil {
		return nil, err
	}
	game, err := config.NewGame(v)
	if err != nil {
		return nil, err
	}
	jwt, err := config.NewJWT(v)
	if err != nil {
		return nil, err
	}
	ws, err := config.NewWebSocket(v)
	if err != nil {
		return nil, err
	}

	app := &App{
		logger:   logger,
		router:   http.NewServeMux(),
		registry: session.NewRegistry(),
		server:   server,
		game:     game,
		jwt:      jwt,
		ws:       ws,
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.logger),
		middleware.Cors(a.ws.AllowOrigins),
		middleware.Auth(a.logger, a.jwt),
	)
}

func (a *App) httpServer(ctx context.Context) *http.Server {
	return &http.Server{
		Addr:              a.server.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: a.server.ReadHeaderTimeout,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
}

// expireSessions drops sessions whose tokens can no longer be valid.
func (a *App) expireSessions(now time.Time) int {
	n := a.registry.Expire(now.Add(-a.jwt.Lifetime()))
	if n > 0 {
		a.logger.Debug("expired sessions",
			slog.Int("expired", n),
			slog.Int("live", a.registry.Len()),
		)
	}
	return n
}

// Start serves until ctx is done, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := a.httpServer(ctx)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening",
			slog.String("addr", a.server.Addr),
			slog.String("base path", a.server.BasePath),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(a.server.SessionSweep)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case now := <-ticker.C:
				a.expireSessions(now)
			}
		}
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
