package controllers

import (
	"context"
	"net/http"

	"github.com/shoprate/shoprate-backend/api/responses"
	"github.com/shoprate/shoprate-backend/pkg/config"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

// Root answers load balancer liveness probes.
func Root(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("shoprate api"))
	}
}

// Health reports API and database readiness.
func Health(cfg *config.Config, db dbPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{
			"status":   "ok",
			"env":      cfg.App.Env,
			"database": "ok",
		}
		if db == nil {
			status["database"] = "unconfigured"
		} else if err := db.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
