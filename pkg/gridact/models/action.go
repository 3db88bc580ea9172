// Package models defines the data structures exchanged between the action
// engine, the grid store, and callers.
package models

// ActionRecord is the wire shape of a single grid action. It is immutable
// once dispatched; one record expresses one atomic intent.
//
// Data is frequently a JSON-encoded payload whose schema depends on Type,
// e.g. for "removeDuplicates": {"columns": [0, 2]} and for "sort":
// {"column": 1, "ascending": false, "hasHeaders": true}.
type ActionRecord struct {
	Type      string `json:"type" yaml:"type"`
	Target    string `json:"target,omitempty" yaml:"target,omitempty"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
	ChartType string `json:"chartType,omitempty" yaml:"chartType,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Position  string `json:"position,omitempty" yaml:"position,omitempty"`
	Data      string `json:"data,omitempty" yaml:"data,omitempty"`
}

// State is the dispatch state of one action.
// An action moves Pending → Resolving → Mutating → Committed | Failed.
type State string

const (
	StatePending   State = "pending"
	StateResolving State = "resolving"
	StateMutating  State = "mutating"
	StateCommitted State = "committed"
	StateFailed    State = "failed"
)

// ActionResult reports the outcome of one dispatched action.
// Err is non-nil only when State is StateFailed.
type ActionResult struct {
	Index        int    `json:"index"`
	Type         string `json:"type"`
	State        State  `json:"state"`
	RemovedCount int    `json:"removedCount,omitempty"`
	ChartRef     string `json:"chartRef,omitempty"`
	Err          error  `json:"-"`
}

// Failed reports whether the action ended in StateFailed.
func (r ActionResult) Failed() bool { return r.State == StateFailed }
