package get

import (
	"context"
	"fmt"
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
	"dwh-dashboard/internal/source/etlapi"
)

type MockCostScreen struct {
	mock.Mock
}

func (m *MockCostScreen) Costs(ctx context.Context) (dashboard.CostScreen, error) {
	args := m.Called(ctx)
	return args.Get(0).(dashboard.CostScreen), args.Error(1)
}

func TestGetCostos(t *testing.T) {
	svc := new(MockCostScreen)
	svc.On("Costs", mock.Anything).Return(dashboard.CostScreen{
		Screen:  report.CostosScreen,
		Summary: &report.CostSummary{TotalCosto: 900, PctSobretiempo: "0.0", Count: 1},
		Pie:     []report.Slice{},
		Bars:    []report.CostBar{{Name: "E1", Normal: 900}},
	}, nil)

	rr := httptest.NewRecorder()
	GetCostos(slog.Default(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/costos", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp dashboard.CostScreen
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "Costos Laborales", resp.Screen.Title)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, "0.0", resp.Summary.PctSobretiempo)
	assert.Equal(t, []report.CostBar{{Name: "E1", Normal: 900}}, resp.Bars)
}

func TestGetCostos_UpstreamError(t *testing.T) {
	svc := new(MockCostScreen)
	svc.On("Costs", mock.Anything).Return(dashboard.CostScreen{}, fmt.Errorf("fetch: %w", &etlapi.StatusError{Code: 500, Status: "Internal Server Error"}))

	rr := httptest.NewRecorder()
	GetCostos(slog.Default(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/costos", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Bad Gateway")
}
