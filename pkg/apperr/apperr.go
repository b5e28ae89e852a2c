package apperr

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Kind classifies an application error.
// The set is closed; consumers map kinds to transport responses.
type Kind uint8

const (
	KindNotFound Kind = iota + 1
	KindNotAuthorized
	KindParameter
	KindValidation
	KindAppPlugin
	KindMethodNotAllowed
	KindUserNotFound
	KindUnexpected
	KindSchema
	KindNotSupported
	KindParameterNotAllowed
	KindBadRequest
	KindInternalServerError
)

var kindNames = map[Kind]string{
	KindNotFound:            "NotFoundError",
	KindNotAuthorized:       "NotAuthorized",
	KindParameter:           "ParameterError",
	KindValidation:          "ValidationError",
	KindAppPlugin:           "AppPluginError",
	KindMethodNotAllowed:    "MethodNotAllowed",
	KindUserNotFound:        "UserNotFound",
	KindUnexpected:          "UnexpectedError",
	KindSchema:              "SchemaError",
	KindNotSupported:        "NotSupported",
	KindParameterNotAllowed: "ParameterNotAllowed",
	KindBadRequest:          "BadRequest",
	KindInternalServerError: "InternalServerError",
}

// String returns the error type name exposed to API clients.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	kinds := slices.Collect(maps.Keys(kindNames))
	slices.Sort(kinds)
	return kinds
}

// Error is an application error carrying a structured payload,
// typically a single field name mapped to a human-readable message.
type Error struct {
	// Err is the underlying cause (for logging, not exposed to users).
	Err error

	// Payload is the user-facing detail.
	Payload map[string]any

	Kind Kind
}

// New creates an error of the given kind. A nil payload is allowed.
func New(kind Kind, payload map[string]any) *Error {
	return &Error{Kind: kind, Payload: payload}
}

// Field creates an error whose payload maps a single field to a message.
func Field(kind Kind, field, message string) *Error {
	return New(kind, map[string]any{field: message})
}

// Wrap creates an error of the given kind that keeps err as its cause.
func Wrap(kind Kind, err error, payload map[string]any) *Error {
	return &Error{Kind: kind, Payload: payload, Err: err}
}

func (e *Error) Error() string {
	if len(e.Payload) == 0 {
		if e.Err != nil {
			return e.Kind.String() + ": " + e.Err.Error()
		}
		return e.Kind.String()
	}

	keys := slices.Sorted(maps.Keys(e.Payload))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, e.Payload[k]))
	}
	return e.Kind.String() + ": " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
// This makes errors.Is(err, apperr.ErrValidation) work for any payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Payload == nil && t.Err == nil
}

// Message returns the payload value for key, or an empty string.
func (e *Error) Message(key string) string {
	if v, ok := e.Payload[key]; ok {
		return fmt.Sprint(v)
	}
	return ""
}

// Sentinels for errors.Is checks against a kind.
var (
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrNotAuthorized       = &Error{Kind: KindNotAuthorized}
	ErrParameter           = &Error{Kind: KindParameter}
	ErrValidation          = &Error{Kind: KindValidation}
	ErrAppPlugin           = &Error{Kind: KindAppPlugin}
	ErrMethodNotAllowed    = &Error{Kind: KindMethodNotAllowed}
	ErrUserNotFound        = &Error{Kind: KindUserNotFound}
	ErrUnexpected          = &Error{Kind: KindUnexpected}
	ErrSchema              = &Error{Kind: KindSchema}
	ErrNotSupported        = &Error{Kind: KindNotSupported}
	ErrParameterNotAllowed = &Error{Kind: KindParameterNotAllowed}
	ErrBadRequest          = &Error{Kind: KindBadRequest}
	ErrInternalServerError = &Error{Kind: KindInternalServerError}
)

// As extracts the *Error from err if present.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	if e, ok := As(err); ok {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
