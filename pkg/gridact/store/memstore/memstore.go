// Package memstore provides an in-memory GridStore. It backs tests and dry
// runs: mutations land in maps, charts and filters are recorded rather than
// rendered.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gridact/gridact-go/pkg/gridact/addr"
	"github.com/gridact/gridact-go/pkg/gridact/formula"
	"github.com/gridact/gridact-go/pkg/gridact/models"
)

type cellKey struct{ row, col int }

type sheet struct {
	cells    map[cellKey]interface{}
	formulas map[cellKey]string
}

func newSheet() *sheet {
	return &sheet{
		cells:    make(map[cellKey]interface{}),
		formulas: make(map[cellKey]string),
	}
}

// Store is an in-memory grid. The zero value is not usable; call New.
type Store struct {
	sheets  map[string]*sheet
	order   []string
	charts  []models.ChartSpec
	filters map[string]models.FilterSpec
}

// New creates a Store with a single empty sheet named "Sheet1".
func New() *Store {
	s := &Store{
		sheets:  make(map[string]*sheet),
		filters: make(map[string]models.FilterSpec),
	}
	s.addSheet("Sheet1")
	return s
}

func (s *Store) addSheet(name string) *sheet {
	sh := newSheet()
	s.sheets[name] = sh
	s.order = append(s.order, name)
	return sh
}

// resolve parses an address and binds it to an existing sheet. An empty
// sheet part means the first sheet.
func (s *Store) resolve(address string) (string, addr.Range, *sheet, error) {
	rng, err := addr.ParseRange(address)
	if err != nil {
		return "", addr.Range{}, nil, err
	}
	name := rng.Sheet
	if name == "" {
		name = s.order[0]
	}
	sh, ok := s.sheets[name]
	if !ok {
		return "", addr.Range{}, nil, fmt.Errorf("sheet %q not found", name)
	}
	return name, rng, sh, nil
}

// ReadRange returns the values (and formulas, when any are set) of a
// rectangle. Empty cells read as nil.
func (s *Store) ReadRange(_ context.Context, address string) (*models.RangeData, error) {
	_, rng, sh, err := s.resolve(address)
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
			key := cellKey{rng.StartRow + r, rng.StartCol + c}
			values[r][c] = sh.cells[key]
			if f := sh.formulas[key]; f != "" {
				formulas[r][c] = f
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
	_, rng, sh, err := s.resolve(address)
	if err != nil {
		return err
	}
	for r, row := range values {
		for c, v := range row {
			sh.cells[cellKey{rng.StartRow + r, rng.StartCol + c}] = v
			delete(sh.formulas, cellKey{rng.StartRow + r, rng.StartCol + c})
		}
	}
	return nil
}

// WriteFormulas writes a formula matrix over the addressed range.
func (s *Store) WriteFormulas(_ context.Context, address string, matrix formula.Matrix) error {
	_, rng, sh, err := s.resolve(address)
	if err != nil {
		return err
	}
	for r, row := range matrix {
		for c, f := range row {
			sh.formulas[cellKey{rng.StartRow + r, rng.StartCol + c}] = f
		}
	}
	return nil
}

// CreateRange reserves a rectangle, creating the sheet when needed.
func (s *Store) CreateRange(_ context.Context, sheetName string, startRow, startCol, rowCount, colCount int) (string, error) {
	if startRow < 0 || startCol < 0 || rowCount < 1 || colCount < 1 {
		return "", fmt.Errorf("%w: %dx%d at (%d,%d)", addr.ErrInvalidAddress, rowCount, colCount, startRow, startCol)
	}
	if sheetName == "" {
		sheetName = s.order[0]
	}
	if _, ok := s.sheets[sheetName]; !ok {
		s.addSheet(sheetName)
	}
	rng := addr.Range{Sheet: sheetName, StartRow: startRow, StartCol: startCol, RowCount: rowCount, ColCount: colCount}
	return rng.String(), nil
}

// CreateSheet adds a sheet; the name must be unused.
func (s *Store) CreateSheet(_ context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("empty sheet name")
	}
	if _, ok := s.sheets[name]; ok {
		return fmt.Errorf("sheet %q already exists", name)
	}
	s.addSheet(name)
	return nil
}

// SheetExists reports whether a sheet with the name exists.
func (s *Store) SheetExists(_ context.Context, name string) bool {
	_, ok := s.sheets[name]
	return ok
}

// CreateChart records the chart spec and returns a handle.
func (s *Store) CreateChart(_ context.Context, spec models.ChartSpec) (string, error) {
	if _, _, _, err := s.resolve(spec.Source); err != nil {
		return "", err
	}
	s.charts = append(s.charts, spec)
	return fmt.Sprintf("chart-%d", len(s.charts)), nil
}

// ApplySort stably reorders the addressed rows by the spec's column.
// Cells that parse as numbers compare numerically, everything else as text.
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

	return s.WriteValues(ctx, address, rows)
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
	case int:
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

// ApplyFilter records the filter for the sheet.
func (s *Store) ApplyFilter(_ context.Context, sheetName, address string, spec models.FilterSpec) error {
	if sheetName == "" {
		sheetName = s.order[0]
	}
	if _, ok := s.sheets[sheetName]; !ok {
		return fmt.Errorf("sheet %q not found", sheetName)
	}
	if _, err := addr.ParseRange(address); err != nil {
		return err
	}
	s.filters[sheetName] = spec
	return nil
}

// ClearFilter removes the sheet's recorded filter.
func (s *Store) ClearFilter(_ context.Context, sheetName string) error {
	if sheetName == "" {
		sheetName = s.order[0]
	}
	if _, ok := s.sheets[sheetName]; !ok {
		return fmt.Errorf("sheet %q not found", sheetName)
	}
	delete(s.filters, sheetName)
	return nil
}

// Cell returns the value at zero-based (row, col); sheet "" means the first
// sheet.
func (s *Store) Cell(sheetName string, row, col int) interface{} {
	if sheetName == "" {
		sheetName = s.order[0]
	}
	sh, ok := s.sheets[sheetName]
	if !ok {
		return nil
	}
	return sh.cells[cellKey{row, col}]
}

// Formula returns the formula at zero-based (row, col), or "".
func (s *Store) Formula(sheetName string, row, col int) string {
	if sheetName == "" {
		sheetName = s.order[0]
	}
	sh, ok := s.sheets[sheetName]
	if !ok {
		return ""
	}
	return sh.formulas[cellKey{row, col}]
}

// Charts returns the recorded chart specs in creation order.
func (s *Store) Charts() []models.ChartSpec { return s.charts }

// Filter returns the recorded filter for a sheet, if any.
func (s *Store) Filter(sheetName string) (models.FilterSpec, bool) {
	if sheetName == "" {
		sheetName = s.order[0]
	}
	spec, ok := s.filters[sheetName]
	return spec, ok
}

// HasSheet reports whether a sheet exists.
func (s *Store) HasSheet(name string) bool {
	_, ok := s.sheets[name]
	return ok
}
