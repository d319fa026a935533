package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwh-dashboard/internal/source"
)

func TestViewFor(t *testing.T) {
	tests := []struct {
		domain source.Domain
		query  string
	}{
		{source.Rendimiento, "SELECT * FROM dwh_rendimiento_materiales ORDER BY total_merma DESC"},
		{source.Costos, "SELECT * FROM dwh_costos_laborales ORDER BY costo_total DESC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.domain), func(t *testing.T) {
			v, err := ViewFor(tt.domain)
			require.NoError(t, err)
			assert.Equal(t, tt.query, v.Query())
		})
	}
}

func TestViewFor_Unknown(t *testing.T) {
	_, err := ViewFor("ventas")
	assert.ErrorIs(t, err, source.ErrUnknownDomain)
}
