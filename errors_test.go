package riverkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestError tests the Error wrapper
func TestError(t *testing.T) {
	t.Run("Message formatting", func(t *testing.T) {
		err := NewError(ErrAccessDenied, "swimmers see only their own records")
		assert.Equal(t, "riverkit: access denied: swimmers see only their own records", err.Error())
	})

	t.Run("No message falls back to sentinel", func(t *testing.T) {
		err := NewError(ErrTokenInvalid, "")
		assert.Equal(t, ErrTokenInvalid.Error(), err.Error())
	})

	t.Run("Unwrap exposes the sentinel", func(t *testing.T) {
		err := NewError(ErrAccessDenied, "context")
		assert.True(t, errors.Is(err, ErrAccessDenied))
		assert.False(t, errors.Is(err, ErrTokenInvalid))
	})

	t.Run("Fluent context", func(t *testing.T) {
		err := NewError(ErrAccessDenied, "target is not a swimmer").
			WithActor("supervisor-1").
			WithTarget("president-1").
			WithRole(RolePresident)

		assert.Equal(t, "supervisor-1", err.ActorID)
		assert.Equal(t, "president-1", err.TargetID)
		assert.Equal(t, RolePresident, err.Role)
	})

	t.Run("errors.As extracts the wrapper", func(t *testing.T) {
		wrapped := fmt.Errorf("request failed: %w", NewError(ErrAccessDenied, "nope").WithActor("a1"))

		var e *Error
		assert.True(t, errors.As(wrapped, &e))
		assert.Equal(t, "a1", e.ActorID)
	})
}

// TestErrorPredicates tests the classification helpers
func TestErrorPredicates(t *testing.T) {
	t.Run("IsAccessDenied", func(t *testing.T) {
		assert.True(t, IsAccessDenied(ErrAccessDenied))
		assert.True(t, IsAccessDenied(NewError(ErrAccessDenied, "ctx")))
		assert.False(t, IsAccessDenied(ErrTokenInvalid))
		assert.False(t, IsAccessDenied(nil))
	})

	t.Run("IsTokenInvalid", func(t *testing.T) {
		assert.True(t, IsTokenInvalid(ErrTokenInvalid))
		assert.True(t, IsTokenInvalid(fmt.Errorf("redeem: %w", ErrTokenInvalid)))
		assert.False(t, IsTokenInvalid(ErrAccessDenied))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrActorNotFound))
		assert.True(t, IsNotFound(ErrOccurrenceNotFound))
		assert.True(t, IsNotFound(ErrNotificationNotFound))
		assert.False(t, IsNotFound(ErrAccessDenied))
	})
}
