package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rickgao/bazaar-data/internal/metrics"
	"github.com/rickgao/bazaar-data/internal/poller"
	"github.com/rickgao/bazaar-data/internal/version"
	"github.com/rickgao/bazaar-data/internal/writer"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type statusSource interface {
	Status() poller.Status
}

type statsSource interface {
	Stats() writer.WriterMetrics
}

type healthResponse struct {
	Status     string         `json:"status"`
	Version    string         `json:"version"`
	Components map[string]any `json:"components"`
}

type pollerHealth struct {
	LastSeen     *int64    `json:"last_seen,omitempty"`
	LastOutcome  string    `json:"last_outcome,omitempty"`
	LastStage    string    `json:"last_stage,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
	LastObserved time.Time `json:"last_observed_at,omitzero"`
	Written      int       `json:"last_written"`
}

// newHealthHandler serves /health and the Prometheus scrape endpoint.
func newHealthHandler(db pinger, p statusSource, w statsSource, g prometheus.Gatherer, metricsPath string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := healthResponse{
			Status:     "healthy",
			Version:    version.String(),
			Components: make(map[string]any),
		}

		// Check database
		if err := db.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["mongodb"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["mongodb"] = "connected"
		}

		// Check poller
		st := p.Status()
		ph := pollerHealth{
			LastSeen:     st.LastSeen,
			LastOutcome:  string(st.Last.Outcome),
			LastStage:    st.Last.Stage,
			LastObserved: st.Last.ObservedAt,
			Written:      st.Last.Written,
		}
		if st.Last.Err != nil {
			ph.LastError = st.Last.Err.Error()
		}
		health.Components["poller"] = ph
		if health.Status == "healthy" && (st.LastSeen == nil || st.Last.Outcome == poller.OutcomeFailed) {
			health.Status = "degraded"
		}

		health.Components["writer"] = w.Stats()

		rw.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			rw.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(rw).Encode(health); err != nil {
			logger.Debug("failed to write health response", "error", err)
		}
	})

	mux.Handle(metricsPath, metrics.Handler(g))

	return mux
}
