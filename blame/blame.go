// Package blame provides the closed failure taxonomy of the pre-compute
// stage. Every failure the stage can report is a Blame carrying a replicate
// status cause code and the context (dataset identifier, URL or index) that
// makes it independently actionable.
package blame

import (
	"github.com/abhissng/precompute/utils/types"
)

// Blame represents a contextualized pre-compute failure that provides
// additional information and functionality over a standard error.
type Blame interface {
	// error is embedded to ensure Blame implements the error interface.
	error

	// FetchErrCode returns the cause code associated with the failure.
	FetchErrCode() types.ErrorCode

	// FetchContext returns the identifying context of the failure, such as
	// a dataset identifier, an input file URL or a variable index.
	FetchContext() string

	// FetchMessage returns the human-readable failure message.
	FetchMessage() string

	// FetchCauses returns a slice of underlying errors that caused this failure.
	FetchCauses() []error

	// WithCause adds a new underlying error and returns the updated Blame instance.
	WithCause(err error) *Error

	// ExitCause returns the wire representation consumed by the worker API.
	ExitCause() ExitCause
}

// NewBlame creates a new Blame with the provided cause code and context.
// The message is rendered from the code's fixed message format.
func NewBlame(errCode types.ErrorCode, context string) Blame {
	return NewError(errCode, context)
}

// NewBasicBlame creates a new Blame with the provided cause code and no context.
func NewBasicBlame(errCode types.ErrorCode) Blame {
	return NewError(errCode, "")
}
