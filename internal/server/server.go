package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/hogwarts/internal/bootstrap"
	"github.com/yigit/hogwarts/internal/config"
)

const idleTimeout = 120 * time.Second

// Server owns the HTTP listener and the persistence it serves from
type Server struct {
	config      *config.Config
	router      *gin.Engine
	persistence *bootstrap.Persistence
	logger      zerolog.Logger
	http        *http.Server
}

// NewServer loads configuration, opens persistence and wires the router.
func NewServer(ctx context.Context) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	persistence, err := bootstrap.SetupPersistence(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup persistence: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, persistence, lgr)
	if err != nil {
		persistence.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config:      cfg,
		router:      router,
		persistence: persistence,
		logger:      lgr,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  idleTimeout,
		},
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// closes persistence. A listener failure also ends Run.
func (s *Server) Run(ctx context.Context) error {
	defer s.persistence.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		s.logger.Info().Msg("HTTP server gracefully stopped")
		return nil
	})

	return g.Wait()
}
