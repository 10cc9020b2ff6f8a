package services

import (
	"errors"
	"net/http"
)

// Error is a failure the HTTP layer renders verbatim as {"error": Message}.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInvalidCredentials = &Error{Status: http.StatusUnauthorized, Message: "Wrong credentials"}
	ErrDuplicateUsername  = &Error{Status: http.StatusBadRequest, Message: "Username already taken"}
	ErrValidation         = &Error{Status: http.StatusBadRequest, Message: "Bad request sorry"}
	ErrUnauthorized       = &Error{Status: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrNotFound           = &Error{Status: http.StatusNotFound, Message: "Sorry, endpoint not found"}
	ErrUserNotFound       = &Error{Status: http.StatusNotFound, Message: "User not found"}
	ErrTooManyRequests    = &Error{Status: http.StatusTooManyRequests, Message: "Too many requests"}
	ErrInternal           = &Error{Status: http.StatusInternalServerError, Message: "Internal server error"}
)

// AsError unwraps err to a typed Error, mapping anything else to ErrInternal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal
}
