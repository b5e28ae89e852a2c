package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/internal"
	"github.com/emapp/emapp/pkg/apperr"
)

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct", func(t *testing.T) {
		t.Parallel()
		err := internal.NewHTTPError(http.StatusNotFound, "not found")
		require.NotNil(t, internal.AsHTTPError(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusBadRequest, "bad request")
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", httpErr))
		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		require.Equal(t, http.StatusBadRequest, got.StatusCode())
	})

	t.Run("unrelated", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(errors.New("boom")))
		require.Nil(t, internal.AsHTTPError(nil))
	})
}

func TestStatusForKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindBadRequest, http.StatusBadRequest},
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindUserNotFound, http.StatusNotFound},
		{apperr.KindValidation, http.StatusConflict},
		{apperr.KindParameter, http.StatusConflict},
		{apperr.KindParameterNotAllowed, http.StatusConflict},
		{apperr.KindMethodNotAllowed, http.StatusConflict},
		{apperr.KindNotAuthorized, http.StatusUnauthorized},
		{apperr.KindSchema, http.StatusInternalServerError},
		{apperr.KindAppPlugin, http.StatusInternalServerError},
		{apperr.KindUnexpected, http.StatusInternalServerError},
		{apperr.KindNotSupported, http.StatusInternalServerError},
		{apperr.KindInternalServerError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, internal.StatusForKind(tt.kind))
		})
	}
}

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("application error carries payload", func(t *testing.T) {
		t.Parallel()

		code, body := internal.ErrorResponse(apperr.Validation("id", "id parameter is required."))
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, internal.StatusError, body.Status)
		assert.Equal(t, "ValidationError", body.ErrorType)
		assert.Equal(t, map[string]any{"id": "id parameter is required."}, body.Msg)
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("extension hrmgmt: %w", apperr.UserNotFound("email", "user not found for a given user email."))
		code, body := internal.ErrorResponse(err)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "UserNotFound", body.ErrorType)
	})

	t.Run("empty payload becomes unknown", func(t *testing.T) {
		t.Parallel()

		_, body := internal.ErrorResponse(apperr.New(apperr.KindUnexpected, nil))
		assert.Equal(t, "unknown", body.Msg)
	})

	t.Run("http error", func(t *testing.T) {
		t.Parallel()

		code, body := internal.ErrorResponse(internal.NewHTTPError(http.StatusNotFound, "Page not found"))
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Not Found", body.ErrorType)
		assert.Equal(t, "Page not found", body.Msg)
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		t.Parallel()

		code, body := internal.ErrorResponse(errors.New("database password is hunter2"))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "InternalServerError", body.ErrorType)
		assert.Equal(t, "unknown", body.Msg)
	})
}
