package service

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to the HTTP layer. Each maps onto exactly one
// status code there.
var (
	ErrNotFound           = errors.New("thought not found")
	ErrInvalidID          = errors.New("invalid thought id")
	ErrForbidden          = errors.New("thought belongs to another user")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownToken       = errors.New("unknown access token")
)

// ValidationError reports a field-level input failure.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func validationErr(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}
