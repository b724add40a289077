// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderRejected  = errors.New("order rejected")
	ErrInvalidStatus  = errors.New("invalid status transition")
	ErrDomain         = errors.New("value outside computable domain")
	ErrUninitialized  = errors.New("derived value accessed before computation")
	ErrConfigInvalid  = errors.New("invalid configuration")
)

// RequestError represents a rejected client request with the offending field.
type RequestError struct {
	Field  string
	Reason string
}

func (e *RequestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

func (e *RequestError) Unwrap() error {
	return ErrInvalidRequest
}

// NewRequestError creates a new RequestError.
func NewRequestError(field, reason string) *RequestError {
	return &RequestError{Field: field, Reason: reason}
}

// DomainError represents a computation that left its mathematical domain,
// such as a division by zero from a degenerate probability.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// NewDomainError creates a new DomainError.
func NewDomainError(op, reason string) *DomainError {
	return &DomainError{Op: op, Reason: reason}
}

// IsInvalidRequest reports whether err is a client-input error.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsNotFound reports whether err is an unknown-order error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// IsDomain reports whether err is a math-domain error.
func IsDomain(err error) bool {
	return errors.Is(err, ErrDomain)
}
