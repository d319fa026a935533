package report

import "dwh-dashboard/internal/table"

// Cost feed fields.
const (
	FieldEmpleado      = "codigo_empleado"
	FieldHorasNormales = "total_horas_normales"
	FieldHorasExtras   = "total_horas_extras"
	FieldSobretiempos  = "costo_sobretiempos"
	FieldCostoTotal    = "costo_total"
)

var costNumeric = []string{FieldHorasNormales, FieldHorasExtras, FieldSobretiempos, FieldCostoTotal}

// NormalizeCost coerces the hour and cost fields.
func NormalizeCost(raw []table.Row) []table.Row {
	return normalize(raw, costNumeric, nil)
}

// CostSummary holds the KPIs of the cost screen.
type CostSummary struct {
	TotalCosto       float64 `json:"total_costo"`
	TotalSobretiempo float64 `json:"total_sobretiempo"`
	TotalNormal      float64 `json:"total_normal"`
	TotalHorasExtras float64 `json:"total_horas_extras"`
	PctSobretiempo   string  `json:"pct_sobretiempo"`
	Count            int     `json:"count"`
}

// SummarizeCost reduces the full normalized row set. ok is false when there
// are no rows.
func SummarizeCost(rows []table.Row) (CostSummary, bool) {
	if len(rows) == 0 {
		return CostSummary{}, false
	}
	totalCosto := sum(rows, FieldCostoTotal)
	totalSobre := sum(rows, FieldSobretiempos)

	return CostSummary{
		TotalCosto:       totalCosto,
		TotalSobretiempo: totalSobre,
		TotalNormal:      totalCosto - totalSobre,
		TotalHorasExtras: sum(rows, FieldHorasExtras),
		PctSobretiempo:   percent(totalSobre, totalCosto),
		Count:            len(rows),
	}, true
}

// CostBar is one stacked bar: regular cost under overtime cost.
type CostBar struct {
	Name   string  `json:"name"`
	Normal float64 `json:"normal"`
	Extras float64 `json:"extras"`
}

// CostBreakdown splits costo_total of the first n rows into its regular and
// overtime parts.
func CostBreakdown(rows []table.Row, n int) []CostBar {
	top := head(rows, n)
	out := make([]CostBar, len(top))
	for i, r := range top {
		extras := r.Float(FieldSobretiempos)
		out[i] = CostBar{
			Name:   r.String(FieldEmpleado),
			Normal: r.Float(FieldCostoTotal) - extras,
			Extras: extras,
		}
	}
	return out
}

// RoundBars rounds both parts of every bar to decimals places.
func RoundBars(bars []CostBar, decimals int) []CostBar {
	out := make([]CostBar, len(bars))
	for i, b := range bars {
		out[i] = CostBar{Name: b.Name, Normal: round(b.Normal, decimals), Extras: round(b.Extras, decimals)}
	}
	return out
}

// Slice is one sector of a pie chart.
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// OvertimeShare lists the first n employees that have any overtime cost.
func OvertimeShare(rows []table.Row, n int) []Slice {
	out := make([]Slice, 0, max(n, 0))
	for _, r := range rows {
		if n > 0 && len(out) == n {
			break
		}
		v := r.Float(FieldSobretiempos)
		if v <= 0 {
			continue
		}
		out = append(out, Slice{Name: r.String(FieldEmpleado), Value: v})
	}
	return out
}
