package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"dwh-dashboard/http-server/apierr"
	"dwh-dashboard/http-server/tablequery"
	"dwh-dashboard/internal/source"
	"dwh-dashboard/internal/table"
)

type Tables interface {
	Table(ctx context.Context, d source.Domain, state table.State, toggle string) (table.Snapshot, error)
}

// GetTable serves one page of the {domain} table. The response carries the
// resulting state, which the client sends back with its next request.
func GetTable(log *slog.Logger, svc Tables) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.table.get.GetTable"

		domain, err := source.ParseDomain(chi.URLParam(r, "domain"))
		if err != nil {
			apierr.Write(w, r, log, op, err)
			return
		}

		state, toggle, err := tablequery.Parse(r)
		if err != nil {
			apierr.BadRequest(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		snapshot, err := svc.Table(ctx, domain, state, toggle)
		if err != nil {
			apierr.Write(w, r, log, op, err)
			return
		}

		render.JSON(w, r, snapshot)
	}
}
