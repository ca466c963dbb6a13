package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/tabrail/tabrail/internal/app/observability/metrics"
	"github.com/tabrail/tabrail/internal/bus"
	"github.com/tabrail/tabrail/internal/localstore"
	"github.com/tabrail/tabrail/internal/nav"
	"github.com/tabrail/tabrail/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     *localstore.Store
	events    *bus.Bus
	router    http.Handler
	stopWatch context.CancelFunc
}

// New creates a new Server instance with all dependencies
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		events: bus.New(logger),
	}

	store, err := s.setupStore()
	if err != nil {
		return nil, fmt.Errorf("failed to setup store: %w", err)
	}
	s.store = store

	if err := s.startStoreWatch(); err != nil {
		return nil, fmt.Errorf("failed to watch store: %w", err)
	}

	return s, nil
}

// setupStore opens the local key/value store the credential signals live in
func (s *Server) setupStore() (*localstore.Store, error) {
	s.logger.Info("Setting up local store", zap.String("path", s.cfg.Store.Path))

	store, err := localstore.New(s.cfg.Store, s.logger)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Local store ready", zap.String("path", store.BasePath()))
	return store, nil
}

// startStoreWatch bridges store file changes onto the event bus: a change to
// either credential key counts as an auth change, whoever made it.
func (s *Server) startStoreWatch() error {
	ctx, cancel := context.WithCancel(context.Background())

	events, err := s.store.Watch(ctx)
	if err != nil {
		cancel()
		return err
	}
	s.stopWatch = cancel

	go func() {
		for evt := range events {
			metrics.Get().StoreEventsTotal.Add(context.Background(), 1,
				metric.WithAttributes(attribute.String("key", evt.Key)))

			if evt.Key == localstore.KeyAuthToken || evt.Key == localstore.KeyUserName {
				s.logger.Debug("Credential key changed on disk", zap.String("key", evt.Key))
				s.events.PublishAuthChanged()
			}
		}
	}()

	return nil
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Store returns the local key/value store
func (s *Server) Store() *localstore.Store {
	return s.store
}

// Events returns the in-process event bus
func (s *Server) Events() *bus.Bus {
	return s.events
}

// GetLogger returns the logger instance
func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

// GetConfig returns the configuration
func (s *Server) GetConfig() *config.Config {
	return s.cfg
}

// Close closes all server resources, including the mounted nav bar so its
// poller and subscriptions do not outlive the process shutdown.
func (s *Server) Close() {
	if s.stopWatch != nil {
		s.stopWatch()
	}
	if bar, ok := nav.Current(); ok {
		bar.Destroy()
	}
}
