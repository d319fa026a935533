package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dwh-dashboard/internal/report"
	"dwh-dashboard/internal/service/dashboard"
)

type MockYieldScreen struct {
	mock.Mock
}

func (m *MockYieldScreen) Yield(ctx context.Context, top int) (dashboard.YieldScreen, error) {
	args := m.Called(ctx, top)
	return args.Get(0).(dashboard.YieldScreen), args.Error(1)
}

func TestGetRendimiento(t *testing.T) {
	svc := new(MockYieldScreen)
	svc.On("Yield", mock.Anything, 20).Return(dashboard.YieldScreen{
		Screen: report.RendimientoScreen,
		Top:    20,
		Chart:  []report.YieldBar{{Name: "Crema", FullName: "Crema", Requerido: 500, Real: 550, Merma: 50}},
	}, nil)

	rr := httptest.NewRecorder()
	GetRendimiento(slog.Default(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/rendimiento?top=20", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp dashboard.YieldScreen
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "Rendimiento de Materiales", resp.Screen.Title)
	assert.Equal(t, 20, resp.Top)
	assert.Len(t, resp.Chart, 1)
	assert.Nil(t, resp.Summary)
	svc.AssertExpectations(t)
}

func TestGetRendimiento_DefaultTop(t *testing.T) {
	svc := new(MockYieldScreen)
	svc.On("Yield", mock.Anything, 10).Return(dashboard.YieldScreen{Top: 10}, nil)

	rr := httptest.NewRecorder()
	GetRendimiento(slog.Default(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/rendimiento", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestGetRendimiento_InvalidTop(t *testing.T) {
	svc := new(MockYieldScreen)

	rr := httptest.NewRecorder()
	GetRendimiento(slog.Default(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/rendimiento?top=3", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "top must be one of")
	svc.AssertNotCalled(t, "Yield")
}

func TestGetRendimiento_FeedError(t *testing.T) {
	svc := new(MockYieldScreen)
	svc.On("Yield", mock.Anything, 10).Return(dashboard.YieldScreen{}, errors.New("connection refused"))

	rr := httptest.NewRecorder()
	GetRendimiento(slog.Default(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/rendimiento", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
