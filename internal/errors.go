package internal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/logger"
)

// Response statuses used in API envelopes.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Status    string `json:"status"`
	ErrorType string `json:"error_type"`
	Msg       any    `json:"msg"`
}

// HTTPError is a transport-level error with a fixed status code.
// Application errors should use apperr instead.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// AsHTTPError extracts the HTTPError from an error chain if present.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// StatusForKind maps an application error kind to its HTTP status.
func StatusForKind(k apperr.Kind) int {
	switch k {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindNotFound, apperr.KindUserNotFound:
		return http.StatusNotFound
	case apperr.KindValidation, apperr.KindParameter, apperr.KindParameterNotAllowed, apperr.KindMethodNotAllowed:
		return http.StatusConflict
	case apperr.KindNotAuthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse builds the status code and envelope for err.
// Errors outside the taxonomy are reported as InternalServerError with an
// "unknown" message so internals never leak to clients.
func ErrorResponse(err error) (int, ErrorBody) {
	if e, ok := apperr.As(err); ok {
		var msg any = "unknown"
		if len(e.Payload) > 0 {
			msg = e.Payload
		}
		return StatusForKind(e.Kind), ErrorBody{Status: StatusError, ErrorType: e.Kind.String(), Msg: msg}
	}
	if httpErr := AsHTTPError(err); httpErr != nil {
		var msg any = "unknown"
		if httpErr.Message != "" {
			msg = httpErr.Message
		}
		return httpErr.Code, ErrorBody{Status: StatusError, ErrorType: httpErr.StatusText(), Msg: msg}
	}
	return http.StatusInternalServerError, ErrorBody{
		Status:    StatusError,
		ErrorType: apperr.KindInternalServerError.String(),
		Msg:       "unknown",
	}
}

// DefaultErrorHandler logs err and writes the JSON error envelope.
func DefaultErrorHandler(c Context, err error) error {
	code, body := ErrorResponse(err)
	if code >= http.StatusInternalServerError {
		c.Log(slog.LevelError, "request failed", logger.Error(err), slog.String("error_type", body.ErrorType))
	} else {
		c.Log(slog.LevelInfo, "request rejected", logger.Error(err), slog.String("error_type", body.ErrorType))
	}
	return c.JSON(code, body)
}
