package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrAccountNotFound = errors.New("account not found")

// ErrAccessDenied means the account exists but belongs to a different
// customer. Callers must not attach any account detail to it.
var ErrAccessDenied = errors.New("account does not belong to customer")

// ErrDuplicateAccountNumber is returned by repositories when an insert hits
// the account-number uniqueness constraint.
var ErrDuplicateAccountNumber = errors.New("account number already exists")

// ErrNumberGeneration means a unique account number could not be established
// within the configured retry bound.
var ErrNumberGeneration = errors.New("unable to generate a unique account number")

// ValidationError aggregates every violated field constraint of a request so
// a client sees all problems at once rather than the first one hit.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// ConflictError marks a state-transition precondition failure, such as closing
// an account that still holds funds.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Reason)
}
