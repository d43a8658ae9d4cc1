package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gcbaptista/catalog-search/api"
	"github.com/gcbaptista/catalog-search/config"
	"github.com/gcbaptista/catalog-search/internal/analytics"
	"github.com/gcbaptista/catalog-search/internal/logger"
	"github.com/gcbaptista/catalog-search/internal/metrics"
	"github.com/gcbaptista/catalog-search/internal/search"
	"github.com/gcbaptista/catalog-search/internal/session"
	"github.com/gcbaptista/catalog-search/store"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int
	var dataDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.Storage.DataDir = dataDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			srv, err := newServer(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on (overrides the config file)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory for persisted catalogs (overrides the config file)")
	return cmd
}

// server wires the catalog store, search service, session manager and HTTP API.
type server struct {
	cfg        config.Config
	logger     *zap.Logger
	catalogs   *store.CatalogStore
	sessions   *session.Manager
	httpServer *http.Server
}

func newServer(cfg config.Config, log *zap.Logger) (*server, error) {
	metrics.RegisterSearchMetrics()

	catalogs := store.NewCatalogStore(cfg.Storage.DataDir, log.Named("store"))
	if err := catalogs.Load(); err != nil {
		return nil, err
	}

	analyticsService := analytics.NewService(catalogs, log.Named("analytics"))
	searcher, err := search.NewService(cfg.Search,
		search.WithLogger(log.Named("search")),
		search.WithRecorder(metrics.SearchRecorder{}),
		search.WithRecorder(analyticsService),
	)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(searcher, session.ManagerConfig{
		Debounce:        cfg.Search.Debounce(),
		IdleTimeout:     time.Duration(cfg.Sessions.IdleTimeoutSec) * time.Second,
		CleanupInterval: time.Duration(cfg.Sessions.CleanupIntervalSec) * time.Second,
	}, session.WithManagerLogger(log.Named("sessions")))

	if cfg.Logging.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Dependencies{
		Catalogs:  catalogs,
		Searcher:  searcher,
		Sessions:  sessions,
		Analytics: analyticsService,
		Logger:    log.Named("http"),
	}, api.RouterConfig{
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
	})

	return &server{
		cfg:      cfg,
		logger:   log,
		catalogs: catalogs,
		sessions: sessions,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		},
	}, nil
}

// run serves until ctx is cancelled, then shuts down gracefully.
func (s *server) run(ctx context.Context) error {
	s.sessions.Start()
	defer s.sessions.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Error during shutdown", zap.Error(err))
	}
	if err := s.catalogs.Save(); err != nil {
		s.logger.Error("Failed to save catalogs", zap.Error(err))
	}

	s.logger.Info("Server stopped gracefully")
	return nil
}
