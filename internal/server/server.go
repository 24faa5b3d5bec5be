// Package server exposes the watcher's serve mode: a polling loop plus a
// small HTTP surface for health, status, and classification previews.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmahoney/rosterwatch/internal/common/errors"
	commonHttp "github.com/cmahoney/rosterwatch/internal/common/http"
	"github.com/cmahoney/rosterwatch/internal/mlb"
	"github.com/cmahoney/rosterwatch/internal/notify"
	"github.com/cmahoney/rosterwatch/internal/pipeline"
)

// Status is a snapshot of the most recent polling pass.
type Status struct {
	RunID            string    `json:"run_id,omitempty"`
	LastRun          time.Time `json:"last_run"`
	Fetched          int       `json:"fetched"`
	Skipped          int       `json:"skipped"`
	Notified         int       `json:"notified"`
	DeliveryFailures int       `json:"delivery_failures"`
	LastError        string    `json:"last_error,omitempty"`
}

// Config contains configuration for the serve mode.
type Config struct {
	Addr     string
	Interval time.Duration
	Location *time.Location
	Logger   *slog.Logger
}

// Server runs the pipeline on an interval and serves status over HTTP.
type Server struct {
	httpServer *http.Server
	pipe       *pipeline.Pipeline
	notifier   notify.Notifier
	interval   time.Duration
	location   *time.Location
	logger     *slog.Logger

	mutex  sync.RWMutex
	status Status
}

// New creates a serve-mode server around a pipeline and a notifier.
func New(pipe *pipeline.Pipeline, notifier notify.Notifier, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		pipe:     pipe,
		notifier: notifier,
		interval: cfg.Interval,
		location: cfg.Location,
		logger:   cfg.Logger,
	}

	r := commonHttp.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/status", s.handleStatus)
	r.Get("/api/preview", s.handlePreview)

	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	return s
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.httpServer.Handler
}

// Run starts the polling loop and the HTTP listener, and blocks until
// ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP listener", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// First pass runs immediately rather than waiting a full interval.
	s.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return s.httpServer.Shutdown(shutdownCtx)
		case err := <-errChan:
			return errors.Wrap(err, "listener failed")
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

// poll runs one pipeline pass and delivers whatever it produced. Fetch
// failures leave dedup state untouched, so the next tick retries the
// same window.
func (s *Server) poll(ctx context.Context) {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	result, err := s.pipe.Run(ctx)
	if err != nil {
		logger.Error("Polling pass failed", "error", err)
		s.mutex.Lock()
		s.status.RunID = runID
		s.status.LastRun = time.Now().In(s.location)
		s.status.LastError = err.Error()
		s.mutex.Unlock()
		return
	}

	failed := notify.Fanout(ctx, s.notifier, result.Notifications, logger)

	logger.Info("Polling pass complete",
		"fetched", result.Fetched,
		"skipped", result.Skipped,
		"notified", len(result.Notifications),
		"delivery_failures", failed)

	s.mutex.Lock()
	s.status = Status{
		RunID:            runID,
		LastRun:          time.Now().In(s.location),
		Fetched:          result.Fetched,
		Skipped:          result.Skipped,
		Notified:         len(result.Notifications),
		DeliveryFailures: failed,
	}
	s.mutex.Unlock()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mutex.RLock()
	status := s.status
	s.mutex.RUnlock()

	commonHttp.Success(w, status)
}

// handlePreview classifies one date's transactions without touching
// dedup state.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	dateString := r.URL.Query().Get("date")
	date, err := time.ParseInLocation(mlb.DateFormat, dateString, s.location)
	if err != nil {
		commonHttp.HandleError(w, errors.Wrap(errors.ErrInvalidInput, "invalid date %q", dateString))
		return
	}

	notifications, err := s.pipe.Preview(r.Context(), date)
	if err != nil {
		commonHttp.HandleError(w, err)
		return
	}

	type previewItem struct {
		Header string `json:"header"`
		Body   string `json:"body"`
		Color  string `json:"color"`
		Date   string `json:"date"`
	}

	items := make([]previewItem, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, previewItem{
			Header: n.Header,
			Body:   n.Body,
			Color:  n.Color.String(),
			Date:   n.Date.Format(mlb.DateFormat),
		})
	}

	commonHttp.Success(w, items)
}
