// Package etl exposes the ETL controls of the dashboard: trigger a run, read
// its status and drop cached feeds.
package etl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"dwh-dashboard/http-server/apierr"
)

type Runner interface {
	Run(ctx context.Context) (map[string]any, error)
	Status(ctx context.Context) (map[string]any, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type RunResponse struct {
	Upstream         map[string]any `json:"upstream"`
	InvalidatesAfter string         `json:"invalidates_after"`
}

// Run starts an ETL run upstream and drops the cached feeds once delay has
// passed, so the next read picks up the fresh warehouse.
func Run(log *slog.Logger, etl Runner, feeds Invalidator, delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.etl.Run"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		upstream, err := etl.Run(ctx)
		if err != nil {
			apierr.Write(w, r, log, op, err)
			return
		}

		reqID := middleware.GetReqID(r.Context())
		time.AfterFunc(delay, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := feeds.Invalidate(ctx); err != nil {
				log.With(
					slog.String("op", op),
					slog.String("request_id", reqID),
					slog.String("error", err.Error()),
				).Error("failed to invalidate feeds after etl run")
			}
		})

		log.With(slog.String("op", op), slog.String("request_id", reqID)).Info("etl run triggered")

		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, RunResponse{Upstream: upstream, InvalidatesAfter: delay.String()})
	}
}

func Status(log *slog.Logger, etl Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.etl.Status"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status, err := etl.Status(ctx)
		if err != nil {
			apierr.Write(w, r, log, op, err)
			return
		}

		render.JSON(w, r, status)
	}
}

// Refresh drops every cached feed right away.
func Refresh(log *slog.Logger, feeds Invalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.etl.Refresh"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := feeds.Invalidate(ctx); err != nil {
			apierr.Write(w, r, log, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
