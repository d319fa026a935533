// Package export writes a whole table view, filtered and sorted but not
// paginated, as a spreadsheet or CSV file.
package export

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"dwh-dashboard/internal/source"
	"dwh-dashboard/internal/table"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
	numberFormat  = "#,##0.00"
)

type Viewer interface {
	View(ctx context.Context, d source.Domain, state table.State) (*table.View, error)
}

type Service struct {
	viewer Viewer
	now    func() time.Time
}

func New(viewer Viewer) *Service {
	return &Service{viewer: viewer, now: time.Now}
}

// FileName is the download name of an export, e.g. costos_2026-10-19_081500.xlsx.
func (s *Service) FileName(d source.Domain, ext string) string {
	return fmt.Sprintf("%s_%s.%s", d, s.now().Format("2006-01-02_150405"), ext)
}

// Excel renders the view of d in state as an xlsx workbook.
func (s *Service) Excel(ctx context.Context, d source.Domain, state table.State) ([]byte, error) {
	const op = "service.export.Excel"

	view, err := s.viewer.View(ctx, d, state)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	headers, rows := view.Export()

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(d)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%s: sheet: %w", op, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}
	numberStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr(numberFormat)})
	if err != nil {
		return nil, fmt.Errorf("%s: number style: %w", op, err)
	}

	for i, h := range headers {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), h.Label); err != nil {
			return nil, fmt.Errorf("%s: header: %w", op, err)
		}
	}
	if len(headers) > 0 {
		if err := f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle); err != nil {
			return nil, fmt.Errorf("%s: header style: %w", op, err)
		}
	}

	for r, cells := range rows {
		rowNum := r + 2
		for c, cell := range cells {
			name := cellName(c+1, rowNum)
			if n, ok := cellNumber(cell); ok {
				if err := f.SetCellFloat(sheet, name, n, -1, 64); err != nil {
					return nil, fmt.Errorf("%s: cell %s: %w", op, name, err)
				}
				if err := f.SetCellStyle(sheet, name, name, numberStyle); err != nil {
					return nil, fmt.Errorf("%s: cell %s: %w", op, name, err)
				}
				continue
			}
			if err := f.SetCellStr(sheet, name, cell.Text); err != nil {
				return nil, fmt.Errorf("%s: cell %s: %w", op, name, err)
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("%s: panes: %w", op, err)
	}
	if len(headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(headers))
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return nil, fmt.Errorf("%s: col width: %w", op, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}

	return buf.Bytes(), nil
}

// CSV streams the view of d in state to w. Numeric cells are written raw so
// the file stays machine readable.
func (s *Service) CSV(ctx context.Context, w io.Writer, d source.Domain, state table.State) error {
	const op = "service.export.CSV"

	view, err := s.viewer.View(ctx, d, state)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	headers, rows := view.Export()

	buf := bufio.NewWriterSize(w, csvBufferSize)
	cw := csv.NewWriter(buf)
	cw.UseCRLF = true

	record := make([]string, len(headers))
	for i, h := range headers {
		record[i] = h.Label
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("%s: header: %w", op, err)
	}

	for i, cells := range rows {
		for j, cell := range cells {
			if _, ok := cellNumber(cell); ok {
				record[j] = table.Stringify(cell.Value)
			} else {
				record[j] = csvText(cell.Text)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%s: row %d: %w", op, i, err)
		}
		if (i+1)%csvFlushEvery == 0 {
			cw.Flush()
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s: flush: %w", op, err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("%s: flush: %w", op, err)
	}
	return nil
}

// csvText quotes text that a spreadsheet would otherwise read as a formula.
func csvText(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func cellNumber(c table.Cell) (float64, bool) {
	switch c.Value.(type) {
	case float64, float32, int, int64, int32:
		return table.AsNumber(c.Value)
	}
	return 0, false
}

func sheetName(d source.Domain) string {
	switch d {
	case source.Rendimiento:
		return "Rendimiento"
	case source.Costos:
		return "Costos"
	}
	return "Reporte"
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func ptr[T any](v T) *T {
	return &v
}
