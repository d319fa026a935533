// Package storage describes the warehouse views the SQL row sources read.
package storage

import (
	"fmt"

	"dwh-dashboard/internal/report"
	"dwh-dashboard/internal/source"
)

// View is a warehouse view together with the column its rows are ranked by.
// Rows come back ranked descending, which is the order the summaries rely on.
type View struct {
	Name    string
	OrderBy string
}

var views = map[source.Domain]View{
	source.Rendimiento: {Name: "dwh_rendimiento_materiales", OrderBy: report.FieldMerma},
	source.Costos:      {Name: "dwh_costos_laborales", OrderBy: report.FieldCostoTotal},
}

// ViewFor returns the view backing a domain.
func ViewFor(d source.Domain) (View, error) {
	v, ok := views[d]
	if !ok {
		return View{}, fmt.Errorf("%w: %q", source.ErrUnknownDomain, d)
	}
	return v, nil
}

// Query is the SELECT shared by every SQL dialect we support.
func (v View) Query() string {
	return fmt.Sprintf("SELECT * FROM %s ORDER BY %s DESC", v.Name, v.OrderBy)
}
