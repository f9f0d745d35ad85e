package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/canada-ca/tracker-sub010/api"
	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/internal/cron"
	"github.com/canada-ca/tracker-sub010/internal/listeners"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/metrics"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/services"
	"github.com/canada-ca/tracker-sub010/services/events"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	config       *config.Config
	log          logger.Logger
	httpServer   *http.Server
	router       *gin.Engine
	services     *services.Services
	repositories *repository.Repositories
	metrics      *metrics.Metrics
	cronManager  *cron.CronManager
	tracerCloser io.Closer
}

func NewServer(cfg *config.Config, trackerDB *gorm.DB) (*Server, error) {
	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)

	repos := repository.InitRepositories(trackerDB)

	svcs, err := services.InitServices(cfg, appLogger, repos)
	if err != nil {
		closer.Close()
		return nil, errors.Wrap(err, "init services")
	}

	m := metrics.New(nil)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	return &Server{
		config:       cfg,
		log:          appLogger,
		router:       router,
		services:     svcs,
		repositories: repos,
		metrics:      m,
		cronManager:  cron.NewCronManager(cfg.CronConfig, appLogger, kubernetesClient(appLogger), svcs.SummaryService, m),
		tracerCloser: closer,
		httpServer: &http.Server{
			Addr:              ":" + cfg.AppConfig.APIPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *Server) Initialize() error {
	subscriber := s.services.EventsService.Subscriber
	subscriber.RegisterListener(listeners.NewScanResultListener(s.log, s.services.ScanService))
	if err := subscriber.ListenQueue(events.QueueScanResults); err != nil {
		return errors.Wrap(err, "listen for scan results")
	}

	return api.RegisterRoutes(s.router, s.config, s.log, s.services, s.repositories, s.metrics)
}

// Run serves until SIGINT or SIGTERM, or until the HTTP server fails, then
// shuts everything down in reverse start order.
func (s *Server) Run() error {
	if err := s.Initialize(); err != nil {
		return err
	}

	if err := s.cronManager.Start(podName()); err != nil {
		s.log.Errorf("Unable to start cron manager: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		defer tracing.RecoverAndLogToJaeger(s.log)
		s.log.Infof("Tracker API listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-ctx.Done():
		s.log.Info("Shutting down")
	case runErr = <-serveErr:
		s.log.Errorf("HTTP server failed: %v", runErr)
	}

	s.shutdown()
	return runErr
}

func (s *Server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Errorf("HTTP server shutdown error: %v", err)
	}
	s.cronManager.Stop()
	if err := s.services.Close(); err != nil {
		s.log.Errorf("Unable to close services: %v", err)
	}
	if err := s.tracerCloser.Close(); err != nil {
		s.log.Warnf("Unable to flush traces: %v", err)
	}
	s.log.Info("Shutdown complete")
}

// kubernetesClient returns nil outside a cluster, which runs the crons without leader election.
func kubernetesClient(log logger.Logger) kubernetes.Interface {
	restConfig, err := rest.InClusterConfig()
	if err != nil {
		log.Info("Not running in kubernetes, leader election disabled")
		return nil
	}
	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		log.Warnf("Unable to create kubernetes client: %v", err)
		return nil
	}
	return client
}

func podName() string {
	if name := os.Getenv("POD_NAME"); name != "" {
		return name
	}
	hostname, _ := os.Hostname()
	return hostname
}
