// Package report turns raw feed rows into normalized records, KPI summaries
// and chart projections for the yield and cost screens.
//
// Feeds are assumed to be shaped as {"data": [...]} and already ordered by
// the ETL backend: yield rows by total_merma descending, cost rows by
// costo_total descending.
package report

import (
	"math"
	"strconv"

	"dwh-dashboard/internal/table"
)

// Number coerces a loosely typed field to a finite float64. Values that do
// not parse become 0.
func Number(v any) float64 {
	f, ok := table.AsNumber(v)
	if !ok {
		return 0
	}
	return f
}

// normalize copies every row, coercing the numeric fields, and applies
// derive to the copy.
func normalize(raw []table.Row, numeric []string, derive func(table.Row)) []table.Row {
	if raw == nil {
		return nil
	}
	out := make([]table.Row, len(raw))
	for i, r := range raw {
		row := r.Clone()
		for _, key := range numeric {
			row[key] = Number(r[key])
		}
		if derive != nil {
			derive(row)
		}
		out[i] = row
	}
	return out
}

func sum(rows []table.Row, key string) float64 {
	var total float64
	for _, r := range rows {
		total += r.Float(key)
	}
	return total
}

// percent formats part/whole*100 with one decimal, "0.0" when whole <= 0.
func percent(part, whole float64) string {
	if whole <= 0 {
		return "0.0"
	}
	return strconv.FormatFloat(part/whole*100, 'f', 1, 64)
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// head returns the first n rows, all of them when n <= 0.
func head(rows []table.Row, n int) []table.Row {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// truncate shortens s to n runes followed by an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
