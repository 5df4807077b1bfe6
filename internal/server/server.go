// Package server holds the application container: config, loggers, the
// record store handle and the HTTP server, with start and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/emp-records/internal/config"
	"github.com/deppfellow/emp-records/internal/metrics"
	"github.com/deppfellow/emp-records/internal/store"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/emp-records/internal/logger"
)

// Server is the application container shared by every layer.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// Store is the one long-lived handle to the record store. It is nil in
	// the UI server, which reaches records through the API.
	Store store.Store

	Metrics *metrics.Metrics

	httpServer *http.Server
}

// New opens the configured store. A store that cannot be reached is an
// error; the caller decides whether that is fatal.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	s, err := store.Open(ctx, cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize record store: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Store:         s,
		Metrics:       metrics.New(),
	}, nil
}

// SetupHTTPServer configures the HTTP server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start serves until Shutdown is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	event := s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env)
	if s.Store != nil {
		event = event.Str("store", s.Config.Store.Driver)
	}
	event.Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the store if there is one.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Store == nil {
		return nil
	}
	if err := s.Store.Close(ctx); err != nil {
		return fmt.Errorf("failed to close record store: %w", err)
	}

	return nil
}
