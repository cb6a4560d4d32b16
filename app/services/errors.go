package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/restopos/app/models"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned by Login for an unknown email or a
// wrong password; the two cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// NotFoundError names the missing entity.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(resource string, id uint) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError carries field-level messages keyed by JSON path.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return "validation failed: " + strings.Join(keys, ", ")
}

func invalid(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// TransitionError is an order status change the lifecycle does not allow.
type TransitionError struct {
	From    models.OrderStatus
	To      models.OrderStatus
	Message string
}

func (e *TransitionError) Error() string { return e.Message }

// ConflictError is a uniqueness or referential clash, e.g. a duplicate email.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// PersistenceError wraps a storage failure. Op names what was attempted;
// the cause is for logs only.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }

// persistence wraps err unless it already carries a domain meaning.
func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		nf *NotFoundError
		ve *ValidationError
		te *TransitionError
		ce *ConflictError
		pe *PersistenceError
	)
	if errors.As(err, &nf) || errors.As(err, &ve) || errors.As(err, &te) ||
		errors.As(err, &ce) || errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
