package report

import "dwh-dashboard/internal/table"

// Yield feed fields.
const (
	FieldProducto  = "nombre_producto"
	FieldRequerido = "total_requerido"
	FieldReal      = "total_real"
	FieldMerma     = "total_merma"
	FieldPctMerma  = "pct_merma"
)

var yieldNumeric = []string{FieldRequerido, FieldReal, FieldMerma}

// NormalizeYield coerces the quantity fields and derives pct_merma as a
// one-decimal string.
func NormalizeYield(raw []table.Row) []table.Row {
	return normalize(raw, yieldNumeric, func(row table.Row) {
		row[FieldPctMerma] = percent(row.Float(FieldMerma), row.Float(FieldRequerido))
	})
}

// YieldSummary holds the KPIs of the yield screen.
type YieldSummary struct {
	TotalMerma     float64   `json:"total_merma"`
	TotalRequerido float64   `json:"total_requerido"`
	PctGlobal      string    `json:"pct_global"`
	Peor           table.Row `json:"peor"`
	Count          int       `json:"count"`
}

// SummarizeYield reduces the full normalized row set. ok is false when there
// are no rows. Peor is the first row: the feed is ordered by shrinkage.
func SummarizeYield(rows []table.Row) (YieldSummary, bool) {
	if len(rows) == 0 {
		return YieldSummary{}, false
	}
	totalMerma := sum(rows, FieldMerma)
	totalReq := sum(rows, FieldRequerido)

	return YieldSummary{
		TotalMerma:     totalMerma,
		TotalRequerido: totalReq,
		PctGlobal:      percent(totalMerma, totalReq),
		Peor:           rows[0],
		Count:          len(rows),
	}, true
}

// MermaBar is one bar of the dashboard's top shrinkage chart.
type MermaBar struct {
	Producto string  `json:"nombre_producto"`
	Merma    float64 `json:"total_merma"`
}

// TopMerma projects the first n rows for the dashboard chart.
func TopMerma(rows []table.Row, n int) []MermaBar {
	top := head(rows, n)
	out := make([]MermaBar, len(top))
	for i, r := range top {
		out[i] = MermaBar{Producto: r.String(FieldProducto), Merma: r.Float(FieldMerma)}
	}
	return out
}

// YieldBar is one group of the yield screen's required/actual/shrinkage chart.
type YieldBar struct {
	Name      string  `json:"name"`
	FullName  string  `json:"full_name"`
	Requerido float64 `json:"requerido"`
	Real      float64 `json:"real"`
	Merma     float64 `json:"merma"`
}

// YieldChart projects the first n rows (all when n <= 0), shortening
// product names to 20 characters.
func YieldChart(rows []table.Row, n int) []YieldBar {
	top := head(rows, n)
	out := make([]YieldBar, len(top))
	for i, r := range top {
		name := r.String(FieldProducto)
		out[i] = YieldBar{
			Name:      truncate(name, 20),
			FullName:  name,
			Requerido: r.Float(FieldRequerido),
			Real:      r.Float(FieldReal),
			Merma:     r.Float(FieldMerma),
		}
	}
	return out
}
