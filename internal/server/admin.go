// Package server hosts the admin HTTP surface: health, readiness, loaded
// packs and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/metrics"
	"github.com/KirkDiggler/mech-arsenal/internal/pack"
)

// ReadyFunc reports whether a dependency can serve traffic
type ReadyFunc func(ctx context.Context) error

// AdminConfig holds the dependencies of the admin server
type AdminConfig struct {
	Port     int
	Gatherer prometheus.Gatherer
	Packs    *pack.Registry
	// Optional
	Metrics *metrics.Metrics
	Ready   ReadyFunc
}

// Validate validates the config
func (c *AdminConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Gatherer == nil {
		vb.RequiredField("Gatherer")
	}
	if c.Packs == nil {
		vb.RequiredField("Packs")
	}
	if c.Port < 0 || c.Port > 65535 {
		vb.Fieldf("Port", "must be within [0, 65535], got %d", c.Port)
	}
	return vb.Build()
}

// Admin serves the admin routes
type Admin struct {
	httpServer *http.Server
	router     chi.Router
}

// HealthResponse is the body of /healthz and /readyz
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// PackSummary is one entry of /packs
type PackSummary struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Items int    `json:"items"`
}

// NewAdmin builds the router and the http.Server around it
func NewAdmin(cfg *AdminConfig) (*Admin, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid admin config")
	}

	r := chi.NewRouter()
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/healthz", handleHealthz)
	r.Get("/readyz", handleReadyz(cfg.Ready))
	r.Get("/packs", handlePacks(cfg.Packs))
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	return &Admin{
		router: r,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Handler exposes the router, mostly for tests
func (a *Admin) Handler() http.Handler {
	return a.router
}

// Serve blocks serving on lis until Shutdown is called
func (a *Admin) Serve(lis net.Listener) error {
	slog.Info("admin server listening", "addr", lis.Addr().String())
	if err := a.httpServer.Serve(lis); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "admin server failed")
	}
	return nil
}

// Shutdown drains in-flight requests
func (a *Admin) Shutdown(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}

// Addr is the configured listen address
func (a *Admin) Addr() string {
	return a.httpServer.Addr
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("failed to encode admin response", "error", err)
	}
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func handleReadyz(ready ReadyFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready == nil {
			writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := ready(ctx); err != nil {
			slog.Error("readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: errors.GetMessage(err),
			})
			return
		}
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

func handlePacks(registry *pack.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		keys := registry.Keys()
		out := make([]PackSummary, 0, len(keys))
		for _, key := range keys {
			p, err := registry.Get(key)
			if err != nil {
				continue
			}
			out = append(out, PackSummary{Key: p.Key(), Name: p.Name(), Items: p.Len()})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
