// Command web serves the employee records UI in front of the records API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/emp-records/internal/client"
	"github.com/deppfellow/emp-records/internal/config"
	"github.com/deppfellow/emp-records/internal/logger"
	"github.com/deppfellow/emp-records/internal/server"
	"github.com/deppfellow/emp-records/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadWebConfig()
	if err != nil {
		bootstrap := logger.NewLogger(config.DefaultObservabilityConfig())
		bootstrap.Fatal().Err(err).Msg("failed to load config")
	}

	// The UI listens on its own port but keeps the API server's timeouts.
	cfg.Server.Port = cfg.Web.Port

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv := &server.Server{
		Config:        cfg,
		Logger:        &log,
		LoggerService: loggerService,
	}

	records := client.New(cfg.Web.APIURL, nil)

	r, err := web.NewRouter(srv, web.NewUI(records))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build UI router")
	}

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start UI server")
		}
	}()

	log.Info().Str("api_url", cfg.Web.APIURL).Msg("UI ready")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("UI server forced to shutdown")
	}
}
