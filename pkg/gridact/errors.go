package gridact

import (
	"github.com/gridact/gridact-go/pkg/gridact/action"
	"github.com/gridact/gridact-go/pkg/gridact/addr"
)

// Error kinds, re-exported so callers can errors.Is against results without
// importing the subpackages. Every error is per-action; nothing the engine
// returns is fatal to the process.
var (
	ErrInvalidAddress    = addr.ErrInvalidAddress
	ErrMissingTarget     = action.ErrMissingTarget
	ErrInvalidPayload    = action.ErrInvalidPayload
	ErrInvalidFilterSpec = action.ErrInvalidFilterSpec
	ErrSourceNotFound    = action.ErrSourceNotFound
	ErrTargetNotFound    = action.ErrTargetNotFound
	ErrUnsupportedAction = action.ErrUnsupportedAction
)

// ActionError wraps a failure with the index and type of the action that
// produced it.
type ActionError = action.ActionError
