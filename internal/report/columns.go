package report

import (
	"dwh-dashboard/internal/format"
	"dwh-dashboard/internal/table"
)

// Badge classes used by the table renderers.
const (
	BadgeSuccess = "success"
	BadgeWarning = "warning"
	BadgeDanger  = "danger"
)

// Search keys of each table.
var (
	YieldSearchKeys = []string{FieldProducto}
	CostSearchKeys  = []string{FieldEmpleado}
)

// badge classifies v against a danger and a warning threshold.
func badge(v, danger, warning float64) string {
	switch {
	case v > danger:
		return BadgeDanger
	case v > warning:
		return BadgeWarning
	default:
		return BadgeSuccess
	}
}

// YieldColumns describes the shrinkage table.
func YieldColumns(f *format.Formatter) []table.Column {
	quantity := func(v any, _ table.Row) table.Cell {
		return table.Cell{Text: f.Number(Number(v), 2)}
	}

	return []table.Column{
		{Key: FieldProducto, Label: "Producto", Mode: table.Lexicographic},
		{Key: FieldRequerido, Label: "Requerido", Mode: table.Numeric, Render: quantity},
		{Key: FieldReal, Label: "Real", Mode: table.Numeric, Render: quantity},
		{Key: FieldMerma, Label: "Merma", Mode: table.Numeric, Render: func(v any, _ table.Row) table.Cell {
			n := Number(v)
			return table.Cell{Text: f.Number(n, 2), Badge: badge(n, 1000, 100)}
		}},
		{Key: FieldPctMerma, Label: "% Merma", Mode: table.Numeric, Render: func(v any, _ table.Row) table.Cell {
			return table.Cell{Text: f.Percent(table.Stringify(v)), Badge: badge(Number(v), 10, 5)}
		}},
	}
}

// CostColumns describes the overtime table.
func CostColumns(f *format.Formatter) []table.Column {
	return []table.Column{
		{Key: FieldEmpleado, Label: "Empleado", Mode: table.Lexicographic},
		{Key: FieldHorasNormales, Label: "H. Normales", Mode: table.Numeric, Render: func(v any, _ table.Row) table.Cell {
			return table.Cell{Text: f.Number(Number(v), 1)}
		}},
		{Key: FieldHorasExtras, Label: "H. Extras", Mode: table.Numeric, Render: func(v any, _ table.Row) table.Cell {
			n := Number(v)
			return table.Cell{Text: f.Number(n, 1), Badge: badge(n, 40, 20)}
		}},
		{Key: FieldSobretiempos, Label: "Sobretiempos", Mode: table.Numeric, Render: func(v any, _ table.Row) table.Cell {
			n := Number(v)
			return table.Cell{Text: f.Money(n), Badge: badge(n, 500, 200)}
		}},
		{Key: FieldCostoTotal, Label: "Costo Total", Mode: table.Numeric, Render: func(v any, _ table.Row) table.Cell {
			return table.Cell{Text: f.Money(Number(v))}
		}},
	}
}
