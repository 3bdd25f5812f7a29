package riverkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAuditFilter tests the fluent filter builder
func TestAuditFilter(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		f := NewAuditFilter()
		assert.Equal(t, 50, f.Limit)
		assert.Zero(t, f.Offset)
		assert.Empty(t, f.ActorID)
		assert.Empty(t, string(f.Action))
		assert.True(t, f.Since.IsZero())
		assert.True(t, f.Until.IsZero())
	})

	t.Run("Fluent chaining", func(t *testing.T) {
		since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		until := since.Add(24 * time.Hour)

		f := NewAuditFilter().
			WithActor("actor-1").
			WithAction(ActionCreateOccurrence).
			WithTimeRange(since, until).
			WithPagination(10, 20)

		assert.Equal(t, "actor-1", f.ActorID)
		assert.Equal(t, ActionCreateOccurrence, f.Action)
		assert.Equal(t, since, f.Since)
		assert.Equal(t, until, f.Until)
		assert.Equal(t, 10, f.Limit)
		assert.Equal(t, 20, f.Offset)
	})

	t.Run("Chaining does not mutate the receiver", func(t *testing.T) {
		base := NewAuditFilter()
		derived := base.WithActor("actor-2").WithLimit(5)

		assert.Empty(t, base.ActorID)
		assert.Equal(t, 50, base.Limit)
		assert.Equal(t, "actor-2", derived.ActorID)
		assert.Equal(t, 5, derived.Limit)
	})

	t.Run("Since and Until set independently", func(t *testing.T) {
		since := time.Now().Add(-time.Hour)
		f := NewAuditFilter().WithSince(since)
		assert.Equal(t, since, f.Since)
		assert.True(t, f.Until.IsZero())

		until := time.Now()
		f = NewAuditFilter().WithUntil(until)
		assert.True(t, f.Since.IsZero())
		assert.Equal(t, until, f.Until)
	})
}
