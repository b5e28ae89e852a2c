package validator

import (
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/country"
)

// Builtin validator names.
const (
	IgnoreMissing = "ignore_missing"
	Email         = "email_validator"
	Date          = "date_validator"
	NotEmpty      = "not_empty"
	Number        = "number_validator"
	CountryCode   = "country_code_validator"
	URL           = "url_validator"
)

// DateLayout is the accepted date format (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// Named pairs a validator with its registry name.
type Named struct {
	Func Func
	Name string
}

// Builtins returns the builtin validators in registration order.
func Builtins() []Named {
	return []Named{
		{Name: IgnoreMissing, Func: ignoreMissing},
		{Name: Email, Func: ValidateEmail},
		{Name: Date, Func: ValidateDate},
		{Name: NotEmpty, Func: ValidateNotEmpty},
		{Name: Number, Func: ValidateNumber},
		{Name: CountryCode, Func: ValidateCountryCode},
		{Name: URL, Func: ValidateURL},
	}
}

// ignoreMissing is a marker; the schema validator short-circuits on it.
func ignoreMissing(string, any) error { return nil }

// ValidateEmail requires a bare address such as user@example.com.
func ValidateEmail(key string, value any) error {
	fail := apperr.Validation(key, "Not a valid email. Please verify your email")

	s, ok := value.(string)
	if !ok || s == "" {
		return fail
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return fail
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fail
	}
	return nil
}

// ValidateDate requires a YYYY-MM-DD date string without a time part.
func ValidateDate(key string, value any) error {
	s, ok := value.(string)
	if ok {
		if _, err := time.Parse(DateLayout, s); err == nil {
			return nil
		}
	}
	return apperr.Validation(key, "Given date string does not match the format %Y-%m-%d. Should be ISO format")
}

// ValidateNotEmpty rejects empty values and whitespace-only strings.
func ValidateNotEmpty(key string, value any) error {
	if IsEmpty(value) {
		return apperr.Validation(key, "Value cannot be empty")
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return apperr.Validation(key, "Value cannot be empty")
	}
	return nil
}

// ValidateNumber requires a value convertible to an integer.
// Floats are accepted and truncated; strings must hold an integer literal.
func ValidateNumber(key string, value any) error {
	fail := apperr.Validation(key, "Value must be integer")

	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fail
		}
		return nil
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fail
		}
		return nil
	case string:
		if _, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return nil
		}
	}
	return fail
}

// ValidateCountryCode requires an ISO 3166-1 alpha-2 country code.
func ValidateCountryCode(key string, value any) error {
	s, ok := value.(string)
	if !ok {
		return apperr.Validation(key, "Something wrong with given country code - should follow ISO 3166 standard.")
	}
	if !country.Valid(s) {
		return apperr.Validation(key, "Not a valid country code - should follow ISO 3166 standard.")
	}
	return nil
}

// ValidateURL requires an absolute http, https or ftp URL with a host.
func ValidateURL(key string, value any) error {
	fail := apperr.Validation(key, "Not a valid url - use full url")

	s, ok := value.(string)
	if !ok || strings.ContainsAny(s, " \t\n") {
		return fail
	}
	u, err := url.ParseRequestURI(s)
	if err != nil || u.Host == "" || u.Hostname() == "" {
		return fail
	}
	switch u.Scheme {
	case "http", "https", "ftp":
		return nil
	}
	return fail
}

// IsEmpty reports whether v is a "missing" value: nil, false, zero numbers,
// empty strings, and empty slices or maps.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case float64:
		return t == 0
	case float32:
		return t == 0
	case int:
		return t == 0
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t) == "0"
	}
	return false
}
