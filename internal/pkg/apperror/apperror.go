package apperror

import "net/http"

// AppError is the error type crossing the engine boundary. It carries the HTTP
// status the transport layer should answer with, so handlers never translate
// domain errors by hand.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404, 409)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest is shorthand for New(400, message).
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// NotFound is shorthand for New(404, message).
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Conflict is shorthand for New(409, message).
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}
