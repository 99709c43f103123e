// Package result provides a generic success-or-failure value used by every
// fallible stage of the pre-compute pipeline.
package result

import (
	"github.com/abhissng/precompute/blame"
)

// Result is a generic interface that can represent either a success or an error.
type Result[T any] interface {
	// IsSuccess returns true if the result is a success, false otherwise.
	IsSuccess() bool
	// IsError returns true if the result is an error, false otherwise.
	IsError() bool
	// Value returns the success value and the failure if there is any.
	Value() (*T, blame.Blame)
	// Error returns the failure value.
	Error() blame.Blame
	// ToValue returns the success value if the result is a success, nil otherwise.
	ToValue() *T
}

// Success represents a successful result.
type Success[T any] struct {
	Val *T
}

// NewSuccess creates a new success result.
func NewSuccess[T any](value *T) Result[T] {
	return &Success[T]{Val: value}
}

// IsSuccess implements Result.
func (s Success[T]) IsSuccess() bool {
	return true
}

// IsError implements Result.
func (s Success[T]) IsError() bool {
	return false
}

// Value implements Result.
func (s Success[T]) Value() (*T, blame.Blame) {
	return s.Val, nil
}

// Error implements Result.
func (s Success[T]) Error() blame.Blame {
	return blame.NewBasicBlame("success-cannot-be-error")
}

// ToValue returns the success value if the result is a success, nil otherwise.
func (s Success[T]) ToValue() *T {
	return s.Val
}

// Failure represents an error result.
type Failure[T any] struct {
	Val *T
	Err blame.Blame
}

// NewFailure creates a new Failure result.
func NewFailure[T any](err blame.Blame) Result[T] {
	return &Failure[T]{Err: err}
}

// IsSuccess implements Result.
func (f Failure[T]) IsSuccess() bool {
	return false
}

// IsError implements Result.
func (f Failure[T]) IsError() bool {
	return true
}

// Value implements Result.
func (f Failure[T]) Value() (*T, blame.Blame) {
	return f.Val, f.Err
}

// Error implements Result.
func (f Failure[T]) Error() blame.Blame {
	return f.Err
}

// ToValue implements Result.
func (f Failure[T]) ToValue() *T {
	return nil
}

// ToResult casts the value or failure to a Result.
func ToResult[T any](value *T, err blame.Blame) Result[T] {
	if err != nil {
		return NewFailure[T](err)
	}
	return NewSuccess[T](value)
}
