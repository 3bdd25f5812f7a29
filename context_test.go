package riverkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestActorContext tests actor storage and retrieval from context
func TestActorContext(t *testing.T) {
	actor := Actor{ID: "actor-1", Name: "Ana", Role: RoleSupervisor, Active: true}

	t.Run("Round trip", func(t *testing.T) {
		ctx := WithActor(context.Background(), actor)
		got, ok := GetActor(ctx)
		assert.True(t, ok)
		assert.Equal(t, actor, got)
	})

	t.Run("Missing actor", func(t *testing.T) {
		got, ok := GetActor(context.Background())
		assert.False(t, ok)
		assert.Empty(t, got.ID)
	})

	t.Run("MustGetActor panics when unset", func(t *testing.T) {
		assert.Panics(t, func() {
			MustGetActor(context.Background())
		})
	})

	t.Run("MustGetActor returns when set", func(t *testing.T) {
		ctx := WithActor(context.Background(), actor)
		assert.NotPanics(t, func() {
			got := MustGetActor(ctx)
			assert.Equal(t, "actor-1", got.ID)
		})
	})
}

// TestSessionContext tests the session-lifecycle carrier
func TestSessionContext(t *testing.T) {
	actor := Actor{ID: "actor-2", Role: RoleSwimmer, Active: true}

	t.Run("Session carries the actor", func(t *testing.T) {
		ctx := WithSession(context.Background(), Session{Actor: actor, Reauthenticated: true})

		session, ok := GetSession(ctx)
		assert.True(t, ok)
		assert.True(t, session.Reauthenticated)
		assert.Equal(t, actor, session.Actor)

		// GetActor keeps working through the session.
		got, ok := GetActor(ctx)
		assert.True(t, ok)
		assert.Equal(t, actor, got)
	})

	t.Run("Missing session", func(t *testing.T) {
		_, ok := GetSession(context.Background())
		assert.False(t, ok)
	})
}

// TestAuditContext tests audit metadata plumbing
func TestAuditContext(t *testing.T) {
	t.Run("Individual values", func(t *testing.T) {
		ctx := context.Background()
		ctx = WithIPAddress(ctx, "192.168.1.1")
		ctx = WithUserAgent(ctx, "Mozilla/5.0")
		ctx = WithRequestID(ctx, "req-123")

		assert.Equal(t, "192.168.1.1", GetIPAddress(ctx))
		assert.Equal(t, "Mozilla/5.0", GetUserAgent(ctx))
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("Empty context yields empty values", func(t *testing.T) {
		ctx := context.Background()
		assert.Empty(t, GetIPAddress(ctx))
		assert.Empty(t, GetUserAgent(ctx))
		assert.Empty(t, GetRequestID(ctx))
	})

	t.Run("GetAuditContext collects everything", func(t *testing.T) {
		ctx := WithAuditContext(context.Background(), AuditContext{
			IPAddress: "10.0.0.1",
			UserAgent: "curl/8.0",
			RequestID: "req-456",
		})

		ac := GetAuditContext(ctx)
		assert.Equal(t, "10.0.0.1", ac.IPAddress)
		assert.Equal(t, "curl/8.0", ac.UserAgent)
		assert.Equal(t, "req-456", ac.RequestID)
	})

	t.Run("WithAuditContext skips empty fields", func(t *testing.T) {
		ctx := WithIPAddress(context.Background(), "10.0.0.2")
		ctx = WithAuditContext(ctx, AuditContext{UserAgent: "curl/8.0"})

		// Existing IP survives because the empty field was not written.
		assert.Equal(t, "10.0.0.2", GetIPAddress(ctx))
		assert.Equal(t, "curl/8.0", GetUserAgent(ctx))
	})
}
