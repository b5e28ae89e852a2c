package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/validator"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("builtins", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry(nil)
		require.NoError(t, r.RegisterBuiltins())
		require.Equal(t, []string{
			"ignore_missing", "email_validator", "date_validator", "not_empty",
			"number_validator", "country_code_validator", "url_validator",
		}, r.Names())
	})

	t.Run("overwrite wins", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry(nil)
		require.NoError(t, r.RegisterBuiltins())
		require.NoError(t, r.Register(validator.Email, func(key string, _ any) error {
			return apperr.Validation(key, "always fails")
		}))

		err := r.Run(validator.Email, "email", "x@y.com")
		require.ErrorIs(t, err, apperr.ErrValidation)
		require.Len(t, r.Names(), 7)
	})

	t.Run("invalid registrations", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry(nil)
		require.ErrorIs(t, r.Register("", validator.ValidateEmail), apperr.ErrAppPlugin)
		require.ErrorIs(t, r.Register("x", nil), apperr.ErrAppPlugin)
		require.Empty(t, r.Names())
	})

	t.Run("unknown validator", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry(nil)
		err := r.Run("nope", "field", "v")
		require.ErrorIs(t, err, apperr.ErrSchema)
	})
}

func TestBuiltins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fn    validator.Func
		value any
		ok    bool
	}{
		{"email valid", validator.ValidateEmail, "jane@example.com", true},
		{"email with display name", validator.ValidateEmail, "Jane <jane@example.com>", false},
		{"email no domain dot", validator.ValidateEmail, "jane@localhost", false},
		{"email garbage", validator.ValidateEmail, "not-an-email", false},
		{"email nil", validator.ValidateEmail, nil, false},

		{"date valid", validator.ValidateDate, "2021-03-15", true},
		{"date with time", validator.ValidateDate, "2021-03-15T10:00:00", false},
		{"date impossible", validator.ValidateDate, "2021-02-30", false},
		{"date number", validator.ValidateDate, 20210315, false},

		{"not empty string", validator.ValidateNotEmpty, "Alice", true},
		{"not empty blank", validator.ValidateNotEmpty, "   ", false},
		{"not empty empty", validator.ValidateNotEmpty, "", false},
		{"not empty nil", validator.ValidateNotEmpty, nil, false},
		{"not empty empty list", validator.ValidateNotEmpty, []any{}, false},
		{"not empty zero", validator.ValidateNotEmpty, float64(0), false},

		{"number int", validator.ValidateNumber, 42, true},
		{"number json float", validator.ValidateNumber, float64(42), true},
		{"number string", validator.ValidateNumber, " 42 ", true},
		{"number decimal string", validator.ValidateNumber, "4.2", false},
		{"number word", validator.ValidateNumber, "forty", false},
		{"number nil", validator.ValidateNumber, nil, false},

		{"country valid", validator.ValidateCountryCode, "DE", true},
		{"country unknown", validator.ValidateCountryCode, "XX", false},
		{"country wrong type", validator.ValidateCountryCode, 49, false},

		{"url valid", validator.ValidateURL, "https://example.com/path?q=1", true},
		{"url relative", validator.ValidateURL, "/path", false},
		{"url no scheme", validator.ValidateURL, "example.com", false},
		{"url mailto", validator.ValidateURL, "mailto:jane@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.fn("field", tt.value)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperr.ErrValidation)

			var appErr *apperr.Error
			require.True(t, errors.As(err, &appErr))
			assert.Contains(t, appErr.Payload, "field")
		})
	}
}

func TestMessages(t *testing.T) {
	t.Parallel()

	err := validator.ValidateNotEmpty("name", "")
	e, ok := apperr.As(err)
	require.True(t, ok)
	require.Equal(t, "Value cannot be empty", e.Message("name"))

	e, _ = apperr.As(validator.ValidateNumber("age", "x"))
	require.Equal(t, "Value must be integer", e.Message("age"))

	e, _ = apperr.As(validator.ValidateURL("site", "x"))
	require.Equal(t, "Not a valid url - use full url", e.Message("site"))
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	for _, v := range []any{nil, "", false, 0, float64(0), int64(0), []any{}, []string{}, map[string]any{}} {
		assert.True(t, validator.IsEmpty(v), "%#v", v)
	}
	for _, v := range []any{"x", true, 1, float64(0.5), int64(3), []any{1}, map[string]any{"a": 1}} {
		assert.False(t, validator.IsEmpty(v), "%#v", v)
	}
}
