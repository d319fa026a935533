package export

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dwh-dashboard/internal/source"
	"dwh-dashboard/internal/table"
)

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Excel(ctx context.Context, d source.Domain, state table.State) ([]byte, error) {
	args := m.Called(ctx, d, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExporter) CSV(ctx context.Context, w io.Writer, d source.Domain, state table.State) error {
	args := m.Called(ctx, w, d, state)
	if args.Error(0) == nil {
		_, _ = io.WriteString(w, args.String(1))
	}
	return args.Error(0)
}

func (m *MockExporter) FileName(d source.Domain, ext string) string {
	return string(d) + "." + ext
}

func newRouter(exp Exporter) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/report/{domain}/excel", Excel(slog.Default(), exp))
	r.Get("/api/report/{domain}/csv", CSV(slog.Default(), exp))
	return r
}

func TestExcel(t *testing.T) {
	exp := new(MockExporter)
	state := table.State{Query: "jarabe", SortKey: "total_merma", Direction: table.Desc, Page: 1}
	exp.On("Excel", mock.Anything, source.Rendimiento, state).Return([]byte("PK"), nil)

	rr := httptest.NewRecorder()
	newRouter(exp).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/rendimiento/excel?q=jarabe&sort=total_merma&dir=desc", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, xlsxContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=rendimiento.xlsx", rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rr.Body.String())
	exp.AssertExpectations(t)
}

func TestCSV_AppliesToggle(t *testing.T) {
	exp := new(MockExporter)
	state := table.State{SortKey: "costo_total", Direction: table.Desc, Page: 1}
	exp.On("CSV", mock.Anything, mock.Anything, source.Costos, state).Return(nil, "Empleado\r\n")

	rr := httptest.NewRecorder()
	newRouter(exp).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/costos/csv?sort=costo_total&dir=asc&toggle=costo_total", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "Empleado\r\n", rr.Body.String())
	exp.AssertExpectations(t)
}

func TestCSV_Error(t *testing.T) {
	exp := new(MockExporter)
	exp.On("CSV", mock.Anything, mock.Anything, source.Costos, mock.Anything).Return(errors.New("feed down"), "")

	rr := httptest.NewRecorder()
	newRouter(exp).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/costos/csv", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Disposition"))
}

func TestExport_UnknownDomain(t *testing.T) {
	exp := new(MockExporter)

	rr := httptest.NewRecorder()
	newRouter(exp).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/ventas/excel", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	exp.AssertNotCalled(t, "Excel")
}
