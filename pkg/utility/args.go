package utility

import (
	"fmt"
	"strconv"

	"github.com/emapp/emapp/pkg/apperr"
)

// Arg returns args[i] as T.
// A missing or mistyped argument produces a Parameter error.
func Arg[T any](args []any, i int) (T, error) {
	var zero T
	if i >= len(args) {
		return zero, apperr.Parameter("args", fmt.Sprintf("missing argument %d", i))
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, apperr.Parameter("args", fmt.Sprintf("argument %d has type %T, want %T", i, args[i], zero))
	}
	return v, nil
}

// IntArg returns args[i] as an int, accepting any integer kind,
// a whole float64 (as decoded from JSON) or a numeric string.
func IntArg(args []any, i int) (int, error) {
	if i >= len(args) {
		return 0, apperr.Parameter("args", fmt.Sprintf("missing argument %d", i))
	}
	if n, ok := ToInt(args[i]); ok {
		return n, nil
	}
	return 0, apperr.Parameter("args", fmt.Sprintf("argument %d is not an integer", i))
}

// ToInt converts common integer representations to int.
func ToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case float32:
		if n == float32(int(n)) {
			return int(n), true
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}
