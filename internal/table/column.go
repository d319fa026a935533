package table

// Cell is the display form of one field of a row.
type Cell struct {
	Value any    `json:"value"`
	Text  string `json:"text"`
	Badge string `json:"badge,omitempty"`
}

// RenderFunc maps a normalized value and its row to a cell.
type RenderFunc func(v any, row Row) Cell

// Column describes one table column. Key selects the field; Render is
// optional and falls back to the raw value.
type Column struct {
	Key    string
	Label  string
	Mode   SortMode
	Render RenderFunc
}

// Header is the client-facing description of a column.
type Header struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Cell renders the column's field of row.
func (c Column) Cell(row Row) Cell {
	v := row[c.Key]
	if c.Render == nil {
		return Cell{Value: v, Text: Stringify(v)}
	}
	cell := c.Render(v, row)
	cell.Value = v
	return cell
}

// Headers lists the headers of columns.
func Headers(columns []Column) []Header {
	out := make([]Header, len(columns))
	for i, c := range columns {
		out[i] = Header{Key: c.Key, Label: c.Label}
	}
	return out
}

// RenderRows renders every row through columns.
func RenderRows(columns []Column, rows []Row) [][]Cell {
	out := make([][]Cell, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(columns))
		for j, c := range columns {
			cells[j] = c.Cell(row)
		}
		out[i] = cells
	}
	return out
}
