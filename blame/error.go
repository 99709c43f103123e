package blame

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/abhissng/precompute/utils/types"
)

// Error struct holds the failure information
type Error struct {
	errCode types.ErrorCode
	context string
	message string
	causes  []error
	source  string
}

// NewError creates a new Error instance with the message rendered from the
// cause code's fixed format.
func NewError(errCode types.ErrorCode, context string) *Error {
	return &Error{
		errCode: errCode,
		context: context,
		message: renderMessage(errCode, context),
		causes:  make([]error, 0),
		source:  findSource(),
	}
}

// FetchErrCode returns the cause code of the failure as an ErrorCode
func (e *Error) FetchErrCode() types.ErrorCode {
	return e.errCode
}

// FetchContext returns the identifying context of the failure as a string
func (e *Error) FetchContext() string {
	return e.context
}

// FetchMessage returns the message of the failure as a string
func (e *Error) FetchMessage() string {
	return e.message
}

// FetchCauses returns the causes of the failure as a slice of errors
func (e *Error) FetchCauses() []error {
	return e.causes
}

// FetchSource returns the source of the failure as a string
func (e *Error) FetchSource() string {
	return e.source
}

// WithCause adds a cause to the failure and returns the updated Error instance.
func (e *Error) WithCause(err error) *Error {
	if e.causes == nil {
		e.causes = make([]error, 0)
	}
	e.causes = append(e.causes, err)
	return e
}

// ExitCause returns the wire representation of the failure.
func (e *Error) ExitCause() ExitCause {
	return ExitCause{
		Cause:   e.errCode.String(),
		Message: e.message,
	}
}

// Error returns the failure message with the causes as a string
func (e *Error) Error() string {
	if len(e.causes) == 0 {
		return e.message
	}
	return fmt.Sprintf("%s (causes: %v)", e.message, e.causes)
}

// findSource captures the file and line of the instantiation point.
func findSource() string {
	for skip := 2; skip < 8; skip++ {
		_, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		if strings.Contains(file, "/blame/") {
			continue
		}
		return fmt.Sprintf("%s:%d", file, line)
	}
	return "unknown"
}
