// Package xlsxstore implements the GridStore against an xlsx workbook via
// excelize.
package xlsxstore

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gridact/gridact-go/pkg/gridact/addr"
	"github.com/gridact/gridact-go/pkg/gridact/formula"
	"github.com/gridact/gridact-go/pkg/gridact/models"
)

// Store adapts an excelize workbook to the GridStore interface. It is not
// safe for concurrent use; a dispatcher batch owns it exclusively.
type Store struct {
	f *excelize.File
	// last AutoFilter range per sheet, needed to clear a filter again.
	filters map[string]addr.Range
}

// Open loads a workbook from disk.
func Open(path string) (*Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return New(f), nil
}

// New wraps an already-open excelize file.
func New(f *excelize.File) *Store {
	return &Store{f: f, filters: make(map[string]addr.Range)}
}

// File exposes the underlying workbook.
func (s *Store) File() *excelize.File { return s.f }

// Save writes the workbook back to the path it was opened from.
func (s *Store) Save() error { return s.f.Save() }

// SaveAs writes the workbook to a new path.
func (s *Store) SaveAs(path string) error { return s.f.SaveAs(path) }

// Close releases the workbook.
func (s *Store) Close() error { return s.f.Close() }

// resolve binds an address to a sheet in the workbook. An empty sheet part
// means the first sheet.
func (s *Store) resolve(address string) (string, addr.Range, error) {
	rng, err := addr.ParseRange(address)
	if err != nil {
		return "", addr.Range{}, err
	}
	name := rng.Sheet
	if name == "" {
		name = s.f.GetSheetList()[0]
	}
	idx, err := s.f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return "", addr.Range{}, fmt.Errorf("sheet %q not found", name)
	}
	return name, rng, nil
}

// SheetExists reports whether the workbook has a sheet with the name.
func (s *Store) SheetExists(_ context.Context, name string) bool {
	idx, err := s.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

func (s *Store) sheetName(name string) (string, error) {
	if name == "" {
		return s.f.GetSheetList()[0], nil
	}
	idx, err := s.f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return "", fmt.Errorf("sheet %q not found", name)
	}
	return name, nil
}

// ReadRange reads a rectangle, coercing numeric-looking cell text to int64
// or float64. Empty cells read as nil. Formula cells are reported in
// Formulas with a leading "=".
func (s *Store) ReadRange(_ context.Context, address string) (*models.RangeData, error) {
	sheet, rng, err := s.resolve(address)
	if err != nil {
		return nil, err
	}

	values := make([][]interface{}, rng.RowCount)
	formulas := make([][]string, rng.RowCount)
	hasFormulas := false
	for r := 0; r < rng.RowCount; r++ {
		values[r] = make([]interface{}, rng.ColCount)
		formulas[r] = make([]string, rng.ColCount)
		for c := 0; c < rng.ColCount; c++ {
			cell, err := excelize.CoordinatesToCellName(rng.StartCol+c+1, rng.StartRow+r+1)
			if err != nil {
				return nil, err
			}
			raw, err := s.f.GetCellValue(sheet, cell)
			if err != nil {
				return nil, err
			}
			if raw != "" {
				values[r][c] = parseValue(raw)
			}
			if fx, err := s.f.GetCellFormula(sheet, cell); err == nil && fx != "" {
				if !strings.HasPrefix(fx, "=") {
					fx = "=" + fx
				}
				formulas[r][c] = fx
				hasFormulas = true
			}
		}
	}

	data := &models.RangeData{Values: values, RowCount: rng.RowCount, ColCount: rng.ColCount}
	if hasFormulas {
		data.Formulas = formulas
	}
	return data, nil
}

// WriteValues writes a block anchored at the address's top-left cell.
func (s *Store) WriteValues(_ context.Context, address string, values [][]interface{}) error {
	sheet, rng, err := s.resolve(address)
	if err != nil {
		return err
	}
	for r, row := range values {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(rng.StartCol+c+1, rng.StartRow+r+1)
			if err != nil {
				return err
			}
			if err := s.f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteFormulas writes a formula matrix over the addressed range.
func (s *Store) WriteFormulas(_ context.Context, address string, matrix formula.Matrix) error {
	sheet, rng, err := s.resolve(address)
	if err != nil {
		return err
	}
	for r, row := range matrix {
		for c, fx := range row {
			cell, err := excelize.CoordinatesToCellName(rng.StartCol+c+1, rng.StartRow+r+1)
			if err != nil {
				return err
			}
			if err := s.f.SetCellFormula(sheet, cell, fx); err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateRange reserves a rectangle, creating the sheet when needed.
func (s *Store) CreateRange(_ context.Context, sheet string, startRow, startCol, rowCount, colCount int) (string, error) {
	if startRow < 0 || startCol < 0 || rowCount < 1 || colCount < 1 {
		return "", fmt.Errorf("%w: %dx%d at (%d,%d)", addr.ErrInvalidAddress, rowCount, colCount, startRow, startCol)
	}
	if sheet == "" {
		sheet = s.f.GetSheetList()[0]
	}
	if idx, err := s.f.GetSheetIndex(sheet); err != nil || idx < 0 {
		if _, err := s.f.NewSheet(sheet); err != nil {
			return "", err
		}
	}
	rng := addr.Range{Sheet: sheet, StartRow: startRow, StartCol: startCol, RowCount: rowCount, ColCount: colCount}
	return rng.String(), nil
}

// CreateSheet adds a sheet; the name must be unused.
func (s *Store) CreateSheet(_ context.Context, name string) error {
	if idx, err := s.f.GetSheetIndex(name); err == nil && idx >= 0 {
		return fmt.Errorf("sheet %q already exists", name)
	}
	_, err := s.f.NewSheet(name)
	return err
}

// CreateChart renders a chart next to (or at spec.Anchor over) the source
// data block and returns "sheet!anchorCell" as its handle.
func (s *Store) CreateChart(_ context.Context, spec models.ChartSpec) (string, error) {
	sheet, rng, err := s.resolve(spec.Source)
	if err != nil {
		return "", err
	}

	var series []excelize.ChartSeries
	if spec.SeriesOrientation == "rows" {
		series = rowSeries(sheet, rng)
	} else {
		series = columnSeries(sheet, rng)
	}
	if len(series) == 0 {
		return "", fmt.Errorf("range %s is too small to chart", spec.Source)
	}

	chart := &excelize.Chart{
		Type:   chartType(spec.Type),
		Series: series,
	}
	if spec.Title != "" {
		chart.Title = []excelize.RichTextRun{{Text: spec.Title}}
	}

	anchor := spec.Anchor
	if anchor == "" {
		// place the chart one column to the right of the data block
		anchor, err = addr.CellName(rng.StartRow, rng.StartCol+rng.ColCount+1)
		if err != nil {
			return "", err
		}
	}
	if err := s.f.AddChart(sheet, anchor, chart); err != nil {
		return "", err
	}
	return sheet + "!" + anchor, nil
}

// columnSeries builds one series per data column: the first column holds
// category labels, the first row series names.
func columnSeries(sheet string, rng addr.Range) []excelize.ChartSeries {
	if rng.RowCount < 2 || rng.ColCount < 2 {
		return nil
	}
	categories := absRef(sheet, rng.StartRow+1, rng.StartCol, rng.StartRow+rng.RowCount-1, rng.StartCol)
	series := make([]excelize.ChartSeries, 0, rng.ColCount-1)
	for c := rng.StartCol + 1; c < rng.StartCol+rng.ColCount; c++ {
		series = append(series, excelize.ChartSeries{
			Name:       absRef(sheet, rng.StartRow, c, rng.StartRow, c),
			Categories: categories,
			Values:     absRef(sheet, rng.StartRow+1, c, rng.StartRow+rng.RowCount-1, c),
		})
	}
	return series
}

// rowSeries builds one series per data row: the first row holds category
// labels, the first column series names.
func rowSeries(sheet string, rng addr.Range) []excelize.ChartSeries {
	if rng.RowCount < 2 || rng.ColCount < 2 {
		return nil
	}
	categories := absRef(sheet, rng.StartRow, rng.StartCol+1, rng.StartRow, rng.StartCol+rng.ColCount-1)
	series := make([]excelize.ChartSeries, 0, rng.RowCount-1)
	for r := rng.StartRow + 1; r < rng.StartRow+rng.RowCount; r++ {
		series = append(series, excelize.ChartSeries{
			Name:       absRef(sheet, r, rng.StartCol, r, rng.StartCol),
			Categories: categories,
			Values:     absRef(sheet, r, rng.StartCol+1, r, rng.StartCol+rng.ColCount-1),
		})
	}
	return series
}

// absRef renders a zero-based rectangle as an absolute sheet-qualified
// reference, e.g. "Sheet1!$A$2:$A$13".
func absRef(sheet string, r1, c1, r2, c2 int) string {
	start, _ := excelize.CoordinatesToCellName(c1+1, r1+1, true)
	end, _ := excelize.CoordinatesToCellName(c2+1, r2+1, true)
	if start == end {
		return sheet + "!" + start
	}
	return sheet + "!" + start + ":" + end
}

func chartType(name string) excelize.ChartType {
	switch strings.ToLower(name) {
	case "bar":
		return excelize.Bar
	case "line":
		return excelize.Line
	case "pie":
		return excelize.Pie
	case "scatter":
		return excelize.Scatter
	case "area":
		return excelize.Area
	case "doughnut":
		return excelize.Doughnut
	default:
		return excelize.Col
	}
}

// ApplySort stably reorders the addressed rows in place. Excelize has no
// range-sort primitive, so the block is read, sorted, and written back.
// Formula cells in the range are not preserved, and values round-trip
// through display text: padded numerals like "007" write back as the
// number 7, and date-formatted cells write back as their display text.
func (s *Store) ApplySort(ctx context.Context, address string, spec models.SortSpec) error {
	data, err := s.ReadRange(ctx, address)
	if err != nil {
		return err
	}

	rows := data.Values
	start := 0
	if spec.HasHeaders && len(rows) > 0 {
		start = 1
	}
	body := rows[start:]

	sort.SliceStable(body, func(i, j int) bool {
		a, b := cellAt(body[i], spec.Column), cellAt(body[j], spec.Column)
		if spec.Ascending {
			return cellLess(a, b)
		}
		return cellLess(b, a)
	})

	// nil cells must still overwrite their old position after reordering
	for _, row := range rows {
		for i, v := range row {
			if v == nil {
				row[i] = ""
			}
		}
	}
	return s.WriteValues(ctx, address, rows)
}

// ApplyFilter applies an AutoFilter over the range, allowing only the
// spec's values in its column. Excelize records filter criteria without
// hiding anything, and its expression grammar takes at most two
// space-free conditions, so criteria are stored only when they fit and
// the non-matching rows are hidden explicitly either way.
func (s *Store) ApplyFilter(_ context.Context, sheet, address string, spec models.FilterSpec) error {
	sheet, err := s.sheetName(sheet)
	if err != nil {
		return err
	}
	rng, err := addr.ParseRange(address)
	if err != nil {
		return err
	}
	col, err := addr.IndexToLetter(rng.StartCol + spec.Column)
	if err != nil {
		return err
	}

	var opts []excelize.AutoFilterOptions
	if expr, ok := filterExpression(spec.Values); ok {
		opts = append(opts, excelize.AutoFilterOptions{Column: col, Expression: expr})
	}
	if err := s.f.AutoFilter(sheet, localRef(rng), opts); err != nil {
		return err
	}

	allowed := make(map[string]struct{}, len(spec.Values))
	for _, v := range spec.Values {
		allowed[v] = struct{}{}
	}
	for r := rng.StartRow + 1; r < rng.StartRow+rng.RowCount; r++ {
		cell, err := excelize.CoordinatesToCellName(rng.StartCol+spec.Column+1, r+1)
		if err != nil {
			return err
		}
		raw, err := s.f.GetCellValue(sheet, cell)
		if err != nil {
			return err
		}
		_, keep := allowed[raw]
		if err := s.f.SetRowVisible(sheet, r+1, keep); err != nil {
			return err
		}
	}

	s.filters[sheet] = rng
	return nil
}

// filterExpression renders allowed values as AutoFilter criteria. The
// grammar accepts one or two conditions with space-separated tokens, so
// longer value lists and values containing whitespace cannot be expressed.
func filterExpression(values []string) (string, bool) {
	if len(values) == 0 || len(values) > 2 {
		return "", false
	}
	terms := make([]string, len(values))
	for i, v := range values {
		if strings.ContainsAny(v, " \t") {
			return "", false
		}
		terms[i] = "x == " + v
	}
	return strings.Join(terms, " or "), true
}

// ClearFilter drops the filter criteria by re-applying the last filtered
// range with none, and unhides its data rows.
func (s *Store) ClearFilter(_ context.Context, sheet string) error {
	sheet, err := s.sheetName(sheet)
	if err != nil {
		return err
	}
	rng, ok := s.filters[sheet]
	if !ok {
		return nil
	}
	if err := s.f.AutoFilter(sheet, localRef(rng), nil); err != nil {
		return err
	}
	for r := rng.StartRow + 1; r < rng.StartRow+rng.RowCount; r++ {
		if err := s.f.SetRowVisible(sheet, r+1, true); err != nil {
			return err
		}
	}
	delete(s.filters, sheet)
	return nil
}

// localRef renders a range without its sheet qualifier, as excelize's
// sheet-scoped calls expect.
func localRef(rng addr.Range) string {
	rng.Sheet = ""
	return rng.String()
}

func cellAt(row []interface{}, col int) interface{} {
	if col < 0 || col >= len(row) {
		return nil
	}
	return row[col]
}

func cellLess(a, b interface{}) bool {
	fa, oka := toNumber(a)
	fb, okb := toNumber(b)
	if oka && okb {
		return fa < fb
	}
	return cellString(a) < cellString(b)
}

func toNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// parseValue coerces cell text to int64, float64, or leaves it a string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
