package action

import (
	"context"
	"fmt"

	"github.com/gridact/gridact-go/pkg/gridact/addr"
	"github.com/gridact/gridact-go/pkg/gridact/formula"
	"github.com/gridact/gridact-go/pkg/gridact/models"
	"github.com/gridact/gridact-go/pkg/gridact/tabular"
)

// Dispatcher routes action records to the engine components and the grid
// store. It is not safe for concurrent use; a batch owns the store for its
// duration.
type Dispatcher struct {
	store GridStore
	log   Logger

	chartDataSeq int
	sheetSeq     int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDispatcher creates a Dispatcher over a grid store.
func NewDispatcher(store GridStore, opts ...Option) *Dispatcher {
	d := &Dispatcher{store: store, log: nopLogger{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute runs a batch of actions strictly in submission order. Each action
// transitions Pending → Resolving → Mutating → Committed | Failed; a failed
// action is recorded and the batch advances to the next one. Execute checks
// the context between actions only — no action is rolled back mid-flight —
// and stops early when the context is done, returning the results gathered
// so far.
func (d *Dispatcher) Execute(ctx context.Context, actions []models.ActionRecord) []models.ActionResult {
	results := make([]models.ActionResult, 0, len(actions))
	for i, act := range actions {
		if err := ctx.Err(); err != nil {
			d.log.Printf("batch aborted before action %d: %v", i, err)
			return results
		}
		d.log.Printf("action %d: type=%s target=%q source=%q", i, act.Type, act.Target, act.Source)
		res := d.dispatch(ctx, i, act)
		if res.Failed() {
			d.log.Printf("action %d (%s) failed: %v", i, act.Type, res.Err)
		}
		results = append(results, res)
	}
	return results
}

func (d *Dispatcher) dispatch(ctx context.Context, index int, act models.ActionRecord) models.ActionResult {
	res := models.ActionResult{Index: index, Type: act.Type, State: models.StatePending}

	var err error
	switch act.Type {
	case "values":
		err = d.writeValues(ctx, act, &res)
	case "formula":
		err = d.writeFormula(ctx, act, &res)
	case "chart":
		err = d.createChart(ctx, act, &res)
	case "sort":
		err = d.applySort(ctx, act, &res)
	case "filter":
		err = d.applyFilter(ctx, act, &res)
	case "clearFilter":
		err = d.clearFilter(ctx, act, &res)
	case "removeDuplicates":
		err = d.removeDuplicates(ctx, act, &res)
	case "createSheet":
		err = d.createSheet(ctx, act, &res)
	default:
		// Unknown types fall back to writing the payload verbatim.
		d.log.Printf("action %d: %v %q, writing payload as values", index, ErrUnsupportedAction, act.Type)
		err = d.writeValues(ctx, act, &res)
	}

	if err != nil {
		res.State = models.StateFailed
		res.Err = &ActionError{Index: index, Type: act.Type, Err: err}
		return res
	}
	res.State = models.StateCommitted
	return res
}

// resolveTarget validates and parses the action's target address.
func resolveTarget(target string) (addr.Range, error) {
	if target == "" {
		return addr.Range{}, ErrMissingTarget
	}
	return addr.ParseRange(target)
}

func (d *Dispatcher) writeValues(ctx context.Context, act models.ActionRecord, res *models.ActionResult) error {
	res.State = models.StateResolving
	target, err := resolveTarget(act.Target)
	if err != nil {
		return err
	}
	values := ParseValues(act.Data)

	// The payload shape wins over the target shape: the block is anchored
	// at the target's top-left cell.
	block := target.Resize(len(values), len(values[0]))

	res.State = models.StateMutating
	return d.store.WriteValues(ctx, block.String(), values)
}

func (d *Dispatcher) writeFormula(ctx context.Context, act models.ActionRecord, res *models.ActionResult) error {
	res.State = models.StateResolving
	target, err := resolveTarget(act.Target)
	if err != nil {
		return err
	}

	res.State = models.StateMutating
	if af, ok := d.store.(Autofiller); ok && target.RowCount*target.ColCount > 1 {
		anchor := target.Resize(1, 1)
		if err := d.store.WriteFormulas(ctx, anchor.String(), formula.Matrix{{act.Data}}); err == nil {
			if err := af.Autofill(ctx, anchor.String(), target.String()); err == nil {
				return nil
			}
		}
		d.log.Printf("autofill unavailable for %s, expanding formula matrix", target.String())
	}

	return d.store.WriteFormulas(ctx, target.String(), formula.Apply(act.Data, target.RowCount, target.ColCount))
}

func (d *Dispatcher) createChart(ctx context.Context, act models.ActionRecord, res *models.ActionResult) error {
	res.State = models.StateResolving
	source := act.Source
	if source == "" {
		source = act.Target
	}
	if source == "" {
		return ErrMissingTarget
	}
	if _, err := addr.ParseRange(source); err != nil {
		return err
	}

	res.State = models.StateMutating
	data, err := d.store.ReadRange(ctx, source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}

	chartType := act.ChartType
	if chartType == "" {
		chartType = "col"
	}
	chartSource := source
	orientation := "columns"
	if data.ColCount > data.RowCount {
		orientation = "rows"
	}

	// Large category-bearing blocks are aggregated into a two-column block
	// first; small or unclassifiable blocks chart as-is.
	if cls, ok := tabular.Classify(data.Values); ok {
		entries := tabular.Aggregate(data.Values, cls.CategoryColumn, cls.MeasureColumn)
		if len(entries) > 0 {
			valueLabel := "Count"
			if cls.MeasureColumn >= 0 {
				valueLabel = cellText(data.Values[0][cls.MeasureColumn])
			}
			block := tabular.Block(entries, cellText(data.Values[0][cls.CategoryColumn]), valueLabel)

			d.chartDataSeq++
			dataSheet := fmt.Sprintf("ChartData%d", d.chartDataSeq)
			blockAddr, err := d.store.CreateRange(ctx, dataSheet, 0, 0, len(block), 2)
			if err != nil {
				return err
			}
			if err := d.store.WriteValues(ctx, blockAddr, block); err != nil {
				return err
			}
			d.log.Printf("aggregated %d rows into %d categories at %s", data.RowCount, len(entries), blockAddr)
			chartSource = blockAddr
			orientation = "columns"
		}
	}

	ref, err := d.store.CreateChart(ctx, models.ChartSpec{
		Type:              chartType,
		Source:            chartSource,
		SeriesOrientation: orientation,
		Title:             act.Title,
		Anchor:            act.Position,
	})
	if err != nil {
		return err
	}
	res.ChartRef = ref
	return nil
}

func (d *Dispatcher) applySort(ctx context.Context, act models.ActionRecord, res *models.ActionResult) error {
	res.State = models.StateResolving
	target, err := resolveTarget(act.Target)
	if err != nil {
		return err
	}
	spec := NormalizeSortSpec(act.Data)

	res.State = models.StateMutating
	return d.store.ApplySort(ctx, target.String(), spec)
}

func (d *Dispatcher) applyFilter(ctx context.Context, act models.ActionRecord, res *models.ActionResult) error {
	res.State = models.StateResolving
	target, err := resolveTarget(act.Target)
	if err != nil {
		return err
	}
	spec, err := NormalizeFilterSpec(act.Data)
	if err != nil {
		return err
	}

	res.State = models.StateMutating
	return d.store.ApplyFilter(ctx, target.Sheet, target.String(), spec)
}

func (d *Dispatcher) clearFilter(ctx context.Context, act models.ActionRecord, res *models.ActionResult) error {
	res.State = models.StateResolving
	// Target may be a plain sheet name, a sheet-qualified range, or a bare
	// range; the store resolves "" to its default sheet. An existing sheet
	// name wins even when it lexes like a cell reference ("Data2").
	sheet := act.Target
	if sheet != "" && !d.store.SheetExists(ctx, sheet) {
		if rng, err := addr.ParseRange(sheet); err == nil {
			sheet = rng.Sheet
		}
	}

	res.State = models.StateMutating
	return d.store.ClearFilter(ctx, sheet)
}

func (d *Dispatcher) removeDuplicates(ctx context.Context, act models.ActionRecord, res *models.ActionResult) error {
	res.State = models.StateResolving
	target, err := resolveTarget(act.Target)
	if err != nil {
		return err
	}
	keyColumns := ParseDedupColumns(act.Data)

	res.State = models.StateMutating
	data, err := d.store.ReadRange(ctx, target.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTargetNotFound, err)
	}

	unique, removed := tabular.Dedupe(data.Values, keyColumns)
	res.RemovedCount = removed
	if removed == 0 {
		return nil
	}

	if err := d.store.WriteValues(ctx, target.Resize(len(unique), target.ColCount).String(), unique); err != nil {
		return err
	}

	// Blank the freed tail rows so dropped data does not linger.
	blank := make([][]interface{}, removed)
	for i := range blank {
		blank[i] = make([]interface{}, target.ColCount)
		for j := range blank[i] {
			blank[i][j] = ""
		}
	}
	tail := target.Offset(len(unique), 0).Resize(removed, target.ColCount)
	return d.store.WriteValues(ctx, tail.String(), blank)
}

func (d *Dispatcher) createSheet(ctx context.Context, act models.ActionRecord, res *models.ActionResult) error {
	res.State = models.StateResolving
	name := act.Title
	if name == "" {
		d.sheetSeq++
		name = fmt.Sprintf("NewSheet%d", d.sheetSeq)
	}

	res.State = models.StateMutating
	return d.store.CreateSheet(ctx, name)
}

func cellText(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
