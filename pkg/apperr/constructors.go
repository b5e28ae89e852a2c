package apperr

// Convenience constructors, one per kind. Each builds a single-field payload.

func NotFound(field, message string) *Error {
	return Field(KindNotFound, field, message)
}

func NotAuthorized(field, message string) *Error {
	return Field(KindNotAuthorized, field, message)
}

func Parameter(field, message string) *Error {
	return Field(KindParameter, field, message)
}

func Validation(field, message string) *Error {
	return Field(KindValidation, field, message)
}

func AppPlugin(field, message string) *Error {
	return Field(KindAppPlugin, field, message)
}

func MethodNotAllowed(field, message string) *Error {
	return Field(KindMethodNotAllowed, field, message)
}

func UserNotFound(field, message string) *Error {
	return Field(KindUserNotFound, field, message)
}

func Unexpected(field, message string) *Error {
	return Field(KindUnexpected, field, message)
}

func Schema(field, message string) *Error {
	return Field(KindSchema, field, message)
}

func NotSupported(field, message string) *Error {
	return Field(KindNotSupported, field, message)
}

func ParameterNotAllowed(field, message string) *Error {
	return Field(KindParameterNotAllowed, field, message)
}

func BadRequest(field, message string) *Error {
	return Field(KindBadRequest, field, message)
}

func InternalServerError(field, message string) *Error {
	return Field(KindInternalServerError, field, message)
}
