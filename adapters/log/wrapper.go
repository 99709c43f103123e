package log

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhissng/precompute/blame"
	"github.com/abhissng/precompute/utils/types"
)

// Helper functions to create fields without directly using zap

// String creates a single types.Field (string) for a given key-value pair.
func String(key string, value string) types.Field {
	return zap.String(key, value)
}

// Int creates a single types.Field (int) for a given key-value pair.
func Int(key string, value int) types.Field {
	return zap.Int(key, value)
}

// Bool creates a single types.Field (bool) for a given key-value pair.
func Bool(key string, value bool) types.Field {
	return zap.Bool(key, value)
}

// Duration creates a single types.Field (time.Duration) for a given key-value pair.
func Duration(key string, value time.Duration) types.Field {
	return zap.Duration(key, value)
}

// Any creates a single types.Field (any) for a given key-value pair.
func Any(key string, value any) types.Field {
	return zap.Any(key, value)
}

// Err creates a single types.Field (error) for a given error.
func Err(err error) types.Field {
	return zap.Error(err)
}

type errorArray []error

func (a errorArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, e := range a {
		if e == nil {
			enc.AppendString("<nil>")
		} else {
			enc.AppendString(e.Error())
		}
	}
	return nil
}

// Blame creates a field carrying the underlying causes of a failure.
func Blame(b blame.Blame) types.Field {
	cs := b.FetchCauses()
	switch len(cs) {
	case 0:
		return zap.Skip()
	case 1:
		return zap.Error(cs[0])
	default:
		return zap.Array("causes", errorArray(cs))
	}
}
