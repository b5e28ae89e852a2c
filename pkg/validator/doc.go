// Package validator implements the validator registry and the builtin
// field validators referenced by name from schema files.
//
// A schema property lists validators as a space separated string:
//
//	"email": {"type": "string", "validators": "ignore_missing email_validator"}
//
// Each validator receives the field name and its value and returns a
// Validation error keyed by that field on failure. The ignore_missing
// validator does nothing by itself; the schema validator uses it to skip the
// remaining chain when the value is empty (see [IsEmpty]).
package validator
