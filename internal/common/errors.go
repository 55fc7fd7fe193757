// Package common defines the sentinel errors shared across listkeeper
// layers. Callers should use errors.Is to match these values; the HTTP
// layer maps them onto status codes.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal   = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive, talk with an admin")
	ErrForbidden          = errors.New("forbidden")
)

// ForbiddenError carries the role sets involved in a failed capability
// check so that diagnostics can name both sides. It matches ErrForbidden
// under errors.Is.
type ForbiddenError struct {
	Required []string
	Actual   []string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: requires one of [%s], has [%s]",
		strings.Join(e.Required, ", "), strings.Join(e.Actual, ", "))
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// ConflictError names the field whose unique constraint was violated,
// e.g. a duplicate email on signup. It matches ErrConflict under errors.Is.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
