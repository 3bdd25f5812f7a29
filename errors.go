package riverkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for riverkit operations.
var (
	// ErrAccessDenied is returned when an actor's scope does not permit the
	// requested visibility or mutation. It is never silently downgraded.
	ErrAccessDenied = errors.New("riverkit: access denied")

	// ErrTokenInvalid is returned for a reset token that is unknown, expired
	// or already used. The cause is deliberately not distinguished.
	ErrTokenInvalid = errors.New("riverkit: invalid or expired token")

	// ErrInvalidRole is returned when a role is not one of the defined roles.
	ErrInvalidRole = errors.New("riverkit: invalid role")

	// ErrActorNotFound is returned when an actor ID does not resolve.
	ErrActorNotFound = errors.New("riverkit: actor not found")

	// ErrOccurrenceNotFound is returned when an occurrence ID does not resolve.
	ErrOccurrenceNotFound = errors.New("riverkit: occurrence not found")

	// ErrNotificationNotFound is returned when a notification ID does not resolve.
	ErrNotificationNotFound = errors.New("riverkit: notification not found")

	// ErrDuplicateName is returned when a zone or occurrence kind name is taken.
	ErrDuplicateName = errors.New("riverkit: name already exists")

	// ErrNoActor is returned when no actor is found in context.
	ErrNoActor = errors.New("riverkit: no actor in context")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("riverkit: database error")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err      error  // Underlying sentinel error
	Message  string // Additional context
	ActorID  string // Actor who triggered the error (if applicable)
	TargetID string // Actor or record the action was aimed at (if applicable)
	Role     Role   // Role involved (if applicable)
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

// WithActor adds the acting actor to the error.
func (e *Error) WithActor(actorID string) *Error {
	e.ActorID = actorID
	return e
}

// WithTarget adds the target actor or record to the error.
func (e *Error) WithTarget(targetID string) *Error {
	e.TargetID = targetID
	return e
}

// WithRole adds role information to the error.
func (e *Error) WithRole(role Role) *Error {
	e.Role = role
	return e
}

// IsAccessDenied checks if an error is an authorization error.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsTokenInvalid checks if an error is a reset-token validation error.
func IsTokenInvalid(err error) bool {
	return errors.Is(err, ErrTokenInvalid)
}

// IsNotFound checks if an error is any of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrActorNotFound) ||
		errors.Is(err, ErrOccurrenceNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}
