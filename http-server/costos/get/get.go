package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"dwh-dashboard/http-server/apierr"
	"dwh-dashboard/internal/service/dashboard"
)

type CostScreen interface {
	Costs(ctx context.Context) (dashboard.CostScreen, error)
}

func GetCostos(log *slog.Logger, svc CostScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.costos.get.GetCostos"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		screen, err := svc.Costs(ctx)
		if err != nil {
			apierr.Write(w, r, log, op, err)
			return
		}

		render.JSON(w, r, screen)
	}
}
