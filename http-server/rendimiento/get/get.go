package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"dwh-dashboard/http-server/apierr"
	"dwh-dashboard/http-server/tablequery"
	"dwh-dashboard/internal/service/dashboard"
)

type YieldScreen interface {
	Yield(ctx context.Context, top int) (dashboard.YieldScreen, error)
}

// GetRendimiento serves the yield screen; ?top= limits the chart to
// 5, 7, 10, 20 or all products.
func GetRendimiento(log *slog.Logger, svc YieldScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rendimiento.get.GetRendimiento"

		top, err := tablequery.ParseTop(r)
		if err != nil {
			apierr.BadRequest(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		screen, err := svc.Yield(ctx, top)
		if err != nil {
			apierr.Write(w, r, log, op, err)
			return
		}

		render.JSON(w, r, screen)
	}
}
