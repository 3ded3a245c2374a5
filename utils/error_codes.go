package utils

// Application error codes attached to error responses alongside the http
// status, so clients can branch without string matching the message.
const (
	ErrorTokenAuthFail      = 20001
	ErrorInvalidCredentials = 20002
	ErrorNotFound           = 20003
	ErrorValidation         = 20004
	ErrorDuplicateEmail     = 20005
	ErrorStoreFailure       = 20006
)
