package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dwh-dashboard/http-server/apierr"
	"dwh-dashboard/http-server/tablequery"
	"dwh-dashboard/internal/source"
	"dwh-dashboard/internal/table"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Exporter interface {
	Excel(ctx context.Context, d source.Domain, state table.State) ([]byte, error)
	CSV(ctx context.Context, w io.Writer, d source.Domain, state table.State) error
	FileName(d source.Domain, ext string) string
}

// request reads the domain and the table state shared by both formats. The
// page parameter is accepted but ignored: exports cover every filtered row.
func request(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string) (source.Domain, table.State, bool) {
	domain, err := source.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		apierr.Write(w, r, log, op, err)
		return "", table.State{}, false
	}

	state, toggle, err := tablequery.Parse(r)
	if err != nil {
		apierr.BadRequest(w, r, err)
		return "", table.State{}, false
	}
	if toggle != "" {
		state = state.Toggled(toggle)
	}

	return domain, state, true
}

func Excel(log *slog.Logger, exp Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.export.Excel"

		domain, state, ok := request(w, r, log, op)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		data, err := exp.Excel(ctx, domain, state)
		if err != nil {
			apierr.Write(w, r, log, op, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", "attachment; filename="+exp.FileName(domain, "xlsx"))
		_, _ = w.Write(data)
	}
}

func CSV(log *slog.Logger, exp Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.export.CSV"

		domain, state, ok := request(w, r, log, op)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		// buffered so a failed export can still answer with an error status
		var buf bytes.Buffer
		if err := exp.CSV(ctx, &buf, domain, state); err != nil {
			apierr.Write(w, r, log, op, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+exp.FileName(domain, "csv"))
		_, _ = buf.WriteTo(w)
	}
}
