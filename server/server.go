// Package server boots the HTTP admin API and its background workers.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// import http profiling when the server profiling configuration is set
	_ "net/http/pprof"

	"github.com/rs/zerolog/log"

	"gitlab.com/minerex-platform/admin_api/actions"
	"gitlab.com/minerex-platform/admin_api/config"
	"gitlab.com/minerex-platform/admin_api/crons"
	"gitlab.com/minerex-platform/admin_api/featureflags"
	"gitlab.com/minerex-platform/admin_api/monitor"
	"gitlab.com/minerex-platform/admin_api/net/kafka"
	"gitlab.com/minerex-platform/admin_api/queries"
	"gitlab.com/minerex-platform/admin_api/service"
)

// Server interface
type Server interface {
	Listen()
}

type server struct {
	config  config.Config
	actions *actions.Actions
	service *service.Service
	audit   *kafka.Writer
	crons   *crons.Crons
	ctx     context.Context
	close   context.CancelFunc
	HTTP    *http.Server
}

// NewServer constructor
func NewServer(cfg config.Config) Server {
	ctx, close := context.WithCancel(context.Background())

	if err := queries.RunMigrations(cfg.DatabaseCluster.Writer); err != nil {
		log.Fatal().Str("section", "server").Err(err).Msg("Unable to run migrations")
	}
	repo := queries.NewRepo(cfg.DatabaseCluster)

	if err := featureflags.Initialize(cfg.Unleash); err != nil {
		log.Error().Str("section", "server").Err(err).Msg("Unable to init feature flags")
	}

	audit := kafka.NewWriter(cfg.Kafka)
	dataServices := service.NewService(cfg, repo, audit)
	adminActions := actions.NewActions(cfg, dataServices)

	return &server{
		config:  cfg,
		service: dataServices,
		actions: adminActions,
		audit:   audit,
		crons:   crons.NewCrons(cfg.Crons, dataServices),
		ctx:     ctx,
		close:   close,
	}
}

// Listen starts the HTTP server, the monitoring endpoint and the cron
// jobs, then blocks until a termination signal.
func (srv *server) Listen() {
	go srv.ListenToRequests()
	go monitor.LoopProfilingServer(srv.config.Server.Monitoring)
	srv.crons.Start()

	srv.stopOnSignal()
}

func (srv *server) stopOnSignal() {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc

	log.Info().Str("section", "server").Str("app_event", "terminate").Str("signal", sig.String()).Msg("Shutting down services")
	srv.closeApp(5 * time.Second)
}

func (srv *server) closeApp(timeout time.Duration) {
	// force the exit if the graceful shutdown does not finish in time
	timeoutFunc := time.AfterFunc(timeout, func() {
		log.Printf("timeout %d ms has been elapsed, force exit", timeout.Milliseconds())
		os.Exit(0)
	})
	defer timeoutFunc.Stop()

	if srv.HTTP != nil {
		if err := srv.HTTP.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Str("section", "server").Str("action", "terminate").Msg("Unable to shutdown HTTP server")
		}
	}

	srv.crons.Stop()
	if err := srv.audit.Close(); err != nil {
		log.Error().Err(err).Str("section", "server").Str("action", "terminate").Msg("Unable to close audit writer")
	}
	srv.close()

	log.Info().Str("section", "server").Str("app_event", "terminate").Str("state", "complete").Msg("All workers terminated")
}
