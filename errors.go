package crudkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for CrudKit operations.
var (
	// ErrUnknownRole is returned when a role name is not present in the role table.
	ErrUnknownRole = errors.New("crudkit: unknown role")

	// ErrUnknownRoleID is returned when a numeric role id cannot be resolved.
	ErrUnknownRoleID = errors.New("crudkit: unknown role id")

	// ErrUnauthorized is returned when an actor fails an access check.
	ErrUnauthorized = errors.New("crudkit: unauthorized")

	// ErrSchemaNotFound is returned when the schema registry has no entry for
	// the requested interface name. This is a recoverable condition: callers
	// are expected to render an empty state, not to crash.
	ErrSchemaNotFound = errors.New("crudkit: schema not found")

	// ErrNoActorRole is returned when an actor role is required but absent
	// from the request or context.
	ErrNoActorRole = errors.New("crudkit: no actor role")

	// ErrRouteNotFound is returned when no route entry matches a path.
	ErrRouteNotFound = errors.New("crudkit: route not found")

	// ErrDatabaseError is returned when a schema store operation fails.
	ErrDatabaseError = errors.New("crudkit: database error")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err     error  // Underlying sentinel error
	Message string // Additional context
	Entity  string // Entity/schema name involved
	Field   string // Field involved (if applicable)
	Role    string // Role involved (if applicable)
	Path    string // Route path involved (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithEntity adds entity/schema information to the error.
func (e *Error) WithEntity(entity string) *Error {
	e.Entity = entity
	return e
}

// WithField adds field information to the error.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithRole adds role information to the error.
func (e *Error) WithRole(role string) *Error {
	e.Role = role
	return e
}

// WithPath adds route path information to the error.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// IsUnauthorized checks if an error is an authorization error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsSchemaNotFound checks if an error is due to a missing schema.
func IsSchemaNotFound(err error) bool {
	return errors.Is(err, ErrSchemaNotFound)
}

// IsUnknownRole checks if an error is due to an unknown role or role id.
func IsUnknownRole(err error) bool {
	return errors.Is(err, ErrUnknownRole) || errors.Is(err, ErrUnknownRoleID)
}
