package get

import (
	"context"
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

type MockOverview struct {
	mock.Mock
}

func (m *MockOverview) Overview(ctx context.Context) dashboard.Overview {
	args := m.Called(ctx)
	return args.Get(0).(dashboard.Overview)
}

func TestGetOverview(t *testing.T) {
	svc := new(MockOverview)
	svc.On("Overview", mock.Anything).Return(dashboard.Overview{
		Screen: report.OverviewScreen,
		Cards:  []report.Card{{Label: "Total Merma Materiales", Value: "—"}},
		Rendimiento: dashboard.YieldBlock{
			Error: "HTTP 500: Internal Server Error",
		},
		Costos: dashboard.CostBlock{
			Summary: &report.CostSummary{TotalCosto: 1500, PctSobretiempo: "20.0", Count: 2},
			Chart:   []report.CostBar{{Name: "E1", Normal: 1200, Extras: 300}},
		},
	})

	rr := httptest.NewRecorder()
	GetOverview(slog.Default(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))

	assert.Equal(t, "Dashboard General", resp["screen"].(map[string]any)["title"])

	yield := resp["rendimiento"].(map[string]any)
	assert.Nil(t, yield["summary"])
	assert.Equal(t, "HTTP 500: Internal Server Error", yield["error"])

	cost := resp["costos"].(map[string]any)
	assert.Equal(t, 1500.0, cost["summary"].(map[string]any)["total_costo"])
	assert.NotContains(t, cost, "error")

	svc.AssertExpectations(t)
}
