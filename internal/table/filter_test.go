package table

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows() []Row {
	return []Row{
		{"nombre_producto": "Jarabe Pediátrico", "codigo": "A-01", "total_merma": 120.0},
		{"nombre_producto": "Crema Dental", "codigo": "B-07", "total_merma": 15.0},
		{"nombre_producto": "jarabe para la tos", "codigo": nil, "total_merma": 300.0},
		{"codigo": "C-11", "total_merma": 2.0},
	}
}

func TestFilter_EmptyQueryIsIdentity(t *testing.T) {
	rows := productRows()

	out := Filter(rows, "", []string{"nombre_producto"})

	require.Len(t, out, len(rows))
	// same backing array, not a copy
	assert.Same(t, &rows[0], &out[0])
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	out := Filter(productRows(), "JARABE", []string{"nombre_producto"})

	require.Len(t, out, 2)
	assert.Equal(t, "Jarabe Pediátrico", out[0]["nombre_producto"])
	assert.Equal(t, "jarabe para la tos", out[1]["nombre_producto"])
}

func TestFilter_AnyKeyMatches(t *testing.T) {
	out := Filter(productRows(), "b-0", []string{"nombre_producto", "codigo"})

	require.Len(t, out, 1)
	assert.Equal(t, "Crema Dental", out[0]["nombre_producto"])
}

func TestFilter_MissingAndNilFieldsNeverMatch(t *testing.T) {
	out := Filter(productRows(), "c-11", []string{"nombre_producto"})
	assert.Empty(t, out)

	out = Filter(productRows(), "c-11", []string{"nombre_producto", "codigo"})
	require.Len(t, out, 1)
}

func TestFilter_NumericFieldsAreStringified(t *testing.T) {
	out := Filter(productRows(), "300", []string{"total_merma"})

	require.Len(t, out, 1)
	assert.Equal(t, "jarabe para la tos", out[0]["nombre_producto"])
}

func TestFilter_IsExactAndDoesNotMutate(t *testing.T) {
	rows := productRows()
	before := fmt.Sprint(rows)
	keys := []string{"nombre_producto", "codigo"}

	for _, q := range []string{"a", "dental", "-", "zzz", "Á"} {
		out := Filter(rows, q, keys)

		kept := 0
		for _, row := range rows {
			match := false
			for _, k := range keys {
				if strings.Contains(strings.ToLower(row.String(k)), strings.ToLower(q)) {
					match = true
				}
			}
			if match {
				assert.Contains(t, out, row, "query %q", q)
				kept++
			}
		}
		assert.Len(t, out, kept, "query %q", q)
		assert.Equal(t, out, Filter(rows, q, keys), "deterministic for %q", q)
	}

	assert.Equal(t, before, fmt.Sprint(rows))
}
