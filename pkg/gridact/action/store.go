package action

import (
	"context"

	"github.com/gridact/gridact-go/pkg/gridact/formula"
	"github.com/gridact/gridact-go/pkg/gridact/models"
)

// GridStore is the external collaborator that owns the actual grid. All
// methods take a context because store calls are the engine's only
// suspension points; within one action's mutating phase the store is
// treated as exclusively owned, and each write is a single atomic round
// trip.
type GridStore interface {
	// ReadRange resolves an address and returns its values (and formulas,
	// when the store tracks them).
	ReadRange(ctx context.Context, address string) (*models.RangeData, error)

	// WriteValues writes a 2D block of values anchored at the address's
	// top-left cell.
	WriteValues(ctx context.Context, address string, values [][]interface{}) error

	// WriteFormulas writes a formula matrix over the addressed range. The
	// matrix dimensions equal the range dimensions.
	WriteFormulas(ctx context.Context, address string, formulas formula.Matrix) error

	// CreateRange reserves a rectangle on a sheet (creating the sheet when
	// needed) and returns its address. Coordinates are zero-based.
	CreateRange(ctx context.Context, sheet string, startRow, startCol, rowCount, colCount int) (string, error)

	// CreateSheet adds a new sheet with the given name.
	CreateSheet(ctx context.Context, name string) error

	// SheetExists reports whether a sheet with the name exists. Dispatch
	// uses it to tell a plain sheet name apart from a range address.
	SheetExists(ctx context.Context, name string) bool

	// CreateChart creates a chart over an already-written data block and
	// returns a handle identifying it.
	CreateChart(ctx context.Context, spec models.ChartSpec) (string, error)

	// ApplySort sorts the addressed range in place.
	ApplySort(ctx context.Context, address string, spec models.SortSpec) error

	// ApplyFilter filters the addressed range on a sheet.
	ApplyFilter(ctx context.Context, sheet, address string, spec models.FilterSpec) error

	// ClearFilter removes any filter on the sheet.
	ClearFilter(ctx context.Context, sheet string) error
}

// Autofiller is an optional GridStore capability: replicate the formula of
// the anchor cell across the fill range the way a host autofill primitive
// would. Dispatch probes for it before falling back to matrix expansion;
// both paths must produce identical formulas.
type Autofiller interface {
	Autofill(ctx context.Context, anchorAddress, fillAddress string) error
}
