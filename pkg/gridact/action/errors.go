// Package action parses action payloads, normalizes sort/filter specs, and
// dispatches action records against a grid store.
package action

import (
	"errors"
	"fmt"
)

// ErrMissingTarget indicates the action requires a target address and none
// was given.
var ErrMissingTarget = errors.New("missing target address")

// ErrInvalidPayload indicates the action payload failed to parse as the
// shape its type expects. Payload parsing recovers locally where a
// documented fallback exists; this error surfaces only where no fallback
// applies.
var ErrInvalidPayload = errors.New("invalid action payload")

// ErrInvalidFilterSpec indicates a filter action without a column or with
// no allowed values.
var ErrInvalidFilterSpec = errors.New("invalid filter spec")

// ErrSourceNotFound indicates the grid store could not resolve the source
// address.
var ErrSourceNotFound = errors.New("source range not found")

// ErrTargetNotFound indicates the grid store could not resolve the target
// address.
var ErrTargetNotFound = errors.New("target range not found")

// ErrUnsupportedAction marks an action type the dispatcher has no handler
// for. Dispatch recovers by writing the payload verbatim, so this error is
// logged rather than returned.
var ErrUnsupportedAction = errors.New("unsupported action type")

// ActionError wraps a failure with the position and type of the action that
// produced it.
type ActionError struct {
	Index int
	Type  string
	Err   error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
