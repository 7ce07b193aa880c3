package service

import "net/http"

// Stable machine-readable error codes returned in the response envelope.
// Clients branch on these, so the strings never change.
const (
	CodeInvalidUsernameOrPassword = "INVALID_USERNAME_OR_PASSWORD"
	CodeUserIsNotActive           = "USER_IS_NOT_ACTIVE"
	CodeInvalidRole               = "INVALID_ROLE"
	CodeUserCreationFailed        = "USER_CREATION_FAILED"
	CodeUserNotFound              = "USER_NOT_FOUND"
	CodeEmailAlreadyExists        = "EMAIL_ALREADY_EXISTS"
	CodeUsernameAlreadyExists     = "USERNAME_ALREADY_EXISTS"

	CodeIncorrectCurrentPassword = "INCORRECT_CURRENT_PASSWORD"
	CodePasswordSameAsOld        = "PASSWORD_SAME_AS_OLD"
	CodeWeakPassword             = "WEAK_PASSWORD"
	CodePasswordUsedInLast5      = "PASSWORD_USED_IN_LAST_5_PASSWORDS"

	CodeMissingOrInvalidToken  = "MISSING_OR_INVALID_TOKEN"
	CodeInvalidOrExpiredToken  = "INVALID_OR_EXPIRED_TOKEN"
	CodeInvalidUser            = "INVALID_USER"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeTokenInvalidOrExpired  = "TOKEN_INVALID_OR_EXPIRED"
	CodeTokenCreationFailed    = "TOKEN_CREATION_FAILED"
	CodeTokenNotFound          = "TOKEN_NOT_FOUND"
	CodeTokenUpdateFailed      = "TOKEN_UPDATE_FAILED"

	CodeCountryNotFound = "COUNTRY_NOT_FOUND"

	CodeFileUploadError = "FILE_UPLOAD_ERROR"

	CodeValidationError     = "VALIDATION_ERROR"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// Error is the failure contract between services and the HTTP layer: an HTTP
// status, a stable code for clients, a human-readable message and optional
// per-field detail.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(status int, code string, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// WithFields attaches per-field validation detail to the error.
func (e *Error) WithFields(fields map[string]string) *Error {
	e.Fields = fields
	return e
}

func badRequest(code, message string) *Error {
	return NewError(http.StatusBadRequest, code, message)
}

func unauthorized(code, message string) *Error {
	return NewError(http.StatusUnauthorized, code, message)
}

func notFound(code, message string) *Error {
	return NewError(http.StatusNotFound, code, message)
}

func conflict(code, message string) *Error {
	return NewError(http.StatusConflict, code, message)
}

func internal(code, message string) *Error {
	return NewError(http.StatusInternalServerError, code, message)
}
