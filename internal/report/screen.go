package report

import "dwh-dashboard/internal/format"

// Screen names a dashboard page.
type Screen struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

var (
	OverviewScreen    = Screen{Path: "/", Title: "Dashboard General", Subtitle: "Resumen ejecutivo · Laboratorios Bjarner"}
	RendimientoScreen = Screen{Path: "/rendimiento", Title: "Rendimiento de Materiales", Subtitle: "Análisis de mermas por producto"}
	CostosScreen      = Screen{Path: "/costos", Title: "Costos Laborales", Subtitle: "Sobretiempos y nómina por empleado"}
)

// Card is a formatted KPI card. Value is format.Placeholder when the KPI is
// unavailable.
type Card struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Footer string `json:"footer,omitempty"`
}

// OverviewCards builds the four cards of the general dashboard.
func OverviewCards(f *format.Formatter, y *YieldSummary, c *CostSummary) []Card {
	cards := []Card{
		{Label: "Total Merma Materiales", Value: format.Placeholder, Footer: "Acumulado de todos los productos"},
		{Label: "% Merma sobre Requerido", Value: format.Placeholder, Footer: "Relación merma / cantidad requerida"},
		{Label: "Costo Nómina Total", Value: format.Placeholder, Footer: "Suma de horas normales y extras"},
		{Label: "Costo Sobretiempos", Value: format.Placeholder},
	}
	if y != nil {
		cards[0].Value = f.Number(y.TotalMerma, 0)
		cards[1].Value = f.Percent(y.PctGlobal)
	}
	if c != nil {
		cards[2].Value = f.Money(c.TotalCosto)
		cards[3].Value = f.Money(c.TotalSobretiempo)
		cards[3].Footer = f.Number(c.TotalHorasExtras, 0) + " horas extras acumuladas"
	}
	return cards
}

// YieldCards builds the cards of the yield screen.
func YieldCards(f *format.Formatter, y *YieldSummary) []Card {
	cards := []Card{
		{Label: "Merma Total Acumulada", Value: format.Placeholder, Footer: "Suma de mermas de todos los productos"},
		{Label: "% Merma Global", Value: format.Placeholder, Footer: "Merma / Cantidad requerida total"},
		{Label: "Producto Más Afectado", Value: format.Placeholder},
	}
	if y == nil {
		return cards
	}
	cards[0].Value = f.Number(y.TotalMerma, 0)
	cards[1].Value = f.Percent(y.PctGlobal)
	if y.Peor != nil {
		cards[2].Value = f.Number(y.Peor.Float(FieldMerma), 0)
		cards[2].Footer = truncateNoEllipsis(y.Peor.String(FieldProducto), 30)
	}
	return cards
}

// CostCards builds the cards of the cost screen.
func CostCards(f *format.Formatter, c *CostSummary) []Card {
	cards := []Card{
		{Label: "Costo Total Nómina", Value: format.Placeholder, Footer: "Horas normales + sobretiempos"},
		{Label: "Costo Horas Normales", Value: format.Placeholder, Footer: "Jornada regular de trabajo"},
		{Label: "Costo Sobretiempos", Value: format.Placeholder},
		{Label: "Total Horas Extras", Value: format.Placeholder, Footer: "Suma 25% + 50% + 100%"},
	}
	if c == nil {
		return cards
	}
	cards[0].Value = f.Money(c.TotalCosto)
	cards[1].Value = f.Money(c.TotalNormal)
	cards[2].Value = f.Money(c.TotalSobretiempo)
	cards[2].Footer = c.PctSobretiempo + "% del costo total"
	cards[3].Value = f.Number(c.TotalHorasExtras, 0)
	return cards
}

func truncateNoEllipsis(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
