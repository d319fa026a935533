package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"dwh-dashboard/internal/service/dashboard"
)

type Overview interface {
	Overview(ctx context.Context) dashboard.Overview
}

// GetOverview serves the general dashboard. It always answers 200: a failed
// feed is reported inside its own block.
func GetOverview(log *slog.Logger, svc Overview) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.get.GetOverview"

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		overview := svc.Overview(ctx)
		if overview.Rendimiento.Error != "" || overview.Costos.Error != "" {
			log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			).Warn("dashboard served with missing feeds")
		}

		render.JSON(w, r, overview)
	}
}
