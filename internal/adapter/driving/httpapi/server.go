package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/diillson/paidmedia-dashboard-go/internal/application/usecase"
	"github.com/diillson/paidmedia-dashboard-go/internal/domain/entity"
)

const metricsNamespace = "paidmedia"

// Config configures the API server.
type Config struct {
	Addr        string
	DataSource  string
	TargetsFile string
	CORSOrigins []string
	Thresholds  entity.Thresholds
}

// Server serves the dashboard over HTTP. The dataset is loaded once and
// swapped atomically on reload; handlers read it without copying.
type Server struct {
	cfg     Config
	uc      *usecase.DashboardUseCase
	log     *logrus.Logger
	metrics *Metrics

	mu sync.RWMutex
	ds *usecase.Dataset
}

func NewServer(cfg Config, uc *usecase.DashboardUseCase, log *logrus.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return &Server{
		cfg:     cfg,
		uc:      uc,
		log:     log,
		metrics: NewMetrics(metricsNamespace),
	}
}

// Reload reads the data source again and replaces the served dataset.
// On failure the previous dataset stays in place.
func (s *Server) Reload(ctx context.Context) error {
	ds, err := s.uc.LoadDataset(ctx, s.cfg.DataSource, s.cfg.TargetsFile)
	if err != nil {
		s.metrics.RecordLoad(0, 0, err)
		return err
	}
	s.metrics.RecordLoad(len(ds.Records), len(ds.Targets), nil)

	s.mu.Lock()
	s.ds = ds
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"source":  ds.Source,
		"records": len(ds.Records),
		"targets": len(ds.Targets),
	}).Info("dataset loaded")
	return nil
}

func (s *Server) dataset() *usecase.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestIDHeader)
	r.Use(instrument(s.log, s.metrics))

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/optimizations", s.listOptimizations)
		r.Post("/optimizations", s.createOptimization)
		r.Get("/snapshots", s.snapshots)
		r.Get("/groups", s.groups)
		r.Get("/trend", s.trend)
		r.Get("/drilldown", s.drilldown)
		r.Post("/reload", s.reload)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Addr).Info("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
