package gridact

import "github.com/gridact/gridact-go/pkg/gridact/action"

// Options configures batch execution.
type Options struct {
	// Logger receives dispatcher diagnostics. The standard library
	// *log.Logger satisfies it; nil discards everything.
	Logger action.Logger

	// OutputPath saves the workbook to a new path instead of in place.
	OutputPath string

	// DryRun executes the batch but skips saving the workbook.
	DryRun bool
}

// DefaultOptions returns default execution options: no logging, save in
// place.
func DefaultOptions() Options {
	return Options{}
}
