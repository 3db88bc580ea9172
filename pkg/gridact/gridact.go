// Package gridact applies declarative action batches to spreadsheet grids.
package gridact

import (
	"context"

	"github.com/gridact/gridact-go/pkg/gridact/action"
	"github.com/gridact/gridact-go/pkg/gridact/models"
	"github.com/gridact/gridact-go/pkg/gridact/store/xlsxstore"
)

// Apply runs a batch of actions against a grid store, strictly in
// submission order. It returns one result per dispatched action; failed
// actions are recorded and do not abort the batch.
func Apply(ctx context.Context, store action.GridStore, actions []models.ActionRecord, opts Options) []models.ActionResult {
	var dopts []action.Option
	if opts.Logger != nil {
		dopts = append(dopts, action.WithLogger(opts.Logger))
	}
	return action.NewDispatcher(store, dopts...).Execute(ctx, actions)
}

// ApplyFile opens an xlsx workbook, runs the batch against it, and saves
// the result — in place, or to opts.OutputPath when set. With opts.DryRun
// the batch still executes but nothing is saved.
func ApplyFile(ctx context.Context, path string, actions []models.ActionRecord, opts Options) ([]models.ActionResult, error) {
	store, err := xlsxstore.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	results := Apply(ctx, store, actions, opts)

	if opts.DryRun {
		return results, nil
	}
	if opts.OutputPath != "" {
		return results, store.SaveAs(opts.OutputPath)
	}
	return results, store.Save()
}
