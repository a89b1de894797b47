// Package server exposes aggregate summaries over an HTTP JSON API.
package server

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/krkonrad/Calculation-data/internal/model"
)

// Summarizer supplies locations and per-location summaries. *dataset.Dataset satisfies it.
type Summarizer interface {
	Locations(ctx context.Context) ([]model.LocationKey, error)
	Summary(ctx context.Context, key model.LocationKey) (model.Summary, bool, error)
}

// Server serves the summary API.
type Server struct {
	data       Summarizer
	metrics    *Metrics
	logger     *slog.Logger
	accessLog  io.Writer
	tlsConfig  *tls.Config
	wholeLabel string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger used for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithAccessLog sets where Apache-style access log lines are written.
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.accessLog = w }
}

// WithWholeLabel sets the label reported for the whole-population summary.
func WithWholeLabel(label string) Option {
	return func(s *Server) { s.wholeLabel = label }
}

// WithTLS serves HTTPS using cfg's certificates.
func WithTLS(cfg *tls.Config) Option {
	return func(s *Server) { s.tlsConfig = cfg }
}

// New creates a server over data. metrics may be nil.
func New(data Summarizer, metrics *Metrics, opts ...Option) *Server {
	s := &Server{
		data:       data,
		metrics:    metrics,
		logger:     slog.Default(),
		accessLog:  os.Stderr,
		wholeLabel: model.DefaultWholePopulationLabel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/health", s.metrics.WrapHandler("/health", http.HandlerFunc(s.health))).Methods(http.MethodGet)
	r.Handle("/locations", s.metrics.WrapHandler("/locations", http.HandlerFunc(s.locations))).Methods(http.MethodGet)
	r.Handle("/summary", s.metrics.WrapHandler("/summary", http.HandlerFunc(s.wholeSummary))).Methods(http.MethodGet)
	r.Handle("/summary/{location}", s.metrics.WrapHandler("/summary/{location}", http.HandlerFunc(s.locationSummary))).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	return r
}

// Handler returns the router wrapped with access logging.
func (s *Server) Handler() http.Handler {
	return handlers.LoggingHandler(s.accessLog, s.Router())
}

// Warm loads the dataset before the first request and records its size.
func (s *Server) Warm(ctx context.Context) error {
	summary, ok, err := s.data.Summary(ctx, model.WholePopulation)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if ok {
		s.metrics.SetRecords(summary.Records)
	} else {
		s.metrics.SetRecords(0)
	}
	return nil
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig:         s.tlsConfig,
	}

	errCh := make(chan error, 1)
	go func() {
		if s.tlsConfig != nil {
			s.logger.Info("HTTPS API listening", "addr", addr)
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}
		s.logger.Info("HTTP API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info("HTTP API stopped")
	return nil
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "ts": time.Now().UTC()})
}

func (s *Server) locations(w http.ResponseWriter, r *http.Request) {
	keys, err := s.data.Locations(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}

	out := make([]locationResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, locationResponse{
			Name:            k.Name(),
			Label:           k.Label(s.wholeLabel),
			WholePopulation: k.IsWholePopulation(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": out})
}

func (s *Server) wholeSummary(w http.ResponseWriter, r *http.Request) {
	s.writeSummary(w, r, model.WholePopulation)
}

func (s *Server) locationSummary(w http.ResponseWriter, r *http.Request) {
	s.writeSummary(w, r, model.Location(mux.Vars(r)["location"]))
}

func (s *Server) writeSummary(w http.ResponseWriter, r *http.Request, key model.LocationKey) {
	summary, ok, err := s.data.Summary(r.Context(), key)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if !ok {
		s.metrics.observeEmpty()
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no data for location"})
		return
	}

	writeJSON(w, http.StatusOK, newSummaryResponse(summary, s.wholeLabel))
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "dataset unavailable"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
