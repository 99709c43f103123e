package types

import (
	"go.uber.org/zap"
)

// ErrorCode represents an error code. For this module every error code is
// also the wire-level cause tag reported to the worker API.
type ErrorCode string

// String returns the string representation of the ErrorCode.
func (e ErrorCode) String() string {
	return string(e)
}

// Field is the structured logging field type used across the module.
type Field = zap.Field
