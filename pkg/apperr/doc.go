// Package apperr defines the closed error taxonomy shared by every registry,
// the schema validator and the extensions.
//
// Every failure is an [*Error] with a [Kind] and a structured payload,
// usually a single field name mapped to a message:
//
//	return apperr.Validation("email", "Not a valid email. Please verify your email")
//
// Kinds are checked with the sentinels and errors.Is, regardless of payload:
//
//	if errors.Is(err, apperr.ErrValidation) {
//	    // routine per-request failure
//	}
//
// Transport code maps kinds to status codes; see the API dispatcher.
package apperr
