package riverkit

import (
	"context"
	"testing"
	"time"
)

// TestDataHelper provides utilities for setting up test data
type TestDataHelper struct {
	service *Service
	ctx     context.Context
	t       *testing.T
}

// NewTestDataHelper creates a new test data helper with database setup
func NewTestDataHelper(t *testing.T, opts ...Option) *TestDataHelper {
	if !RequireDatabase(t) {
		return nil
	}

	ctx := context.Background()
	service, err := SetupTestDatabase(ctx, opts...)
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}

	return &TestDataHelper{
		service: service,
		ctx:     ctx,
		t:       t,
	}
}

// CreateActor inserts an actor row directly, bypassing the president-only
// registration path. Tests bootstrap their cast this way.
func (h *TestDataHelper) CreateActor(name string, role Role, active bool) Actor {
	actor := &Actor{
		Name:   name,
		Email:  uniqueEmail(name),
		Role:   role,
		Active: active,
	}
	if _, err := h.service.db.NewInsert().Model(actor).Exec(h.ctx); err != nil {
		h.t.Fatalf("Failed to create test actor %s: %v", name, err)
	}
	return *actor
}

// CreateSwimmer creates an active swimmer.
func (h *TestDataHelper) CreateSwimmer(name string) Actor {
	return h.CreateActor(name, RoleSwimmer, true)
}

// CreateSupervisor creates an active supervisor.
func (h *TestDataHelper) CreateSupervisor(name string) Actor {
	return h.CreateActor(name, RoleSupervisor, true)
}

// CreatePresident creates an active president.
func (h *TestDataHelper) CreatePresident(name string) Actor {
	return h.CreateActor(name, RolePresident, true)
}

// CreateOccurrenceFor inserts an occurrence owned by the given actor.
func (h *TestDataHelper) CreateOccurrenceFor(owner Actor, zone, kind string) Occurrence {
	occurrence := &Occurrence{
		Date:    time.Now(),
		Zone:    zone,
		Kind:    kind,
		ActorID: owner.ID,
	}
	if _, err := h.service.db.NewInsert().Model(occurrence).Exec(h.ctx); err != nil {
		h.t.Fatalf("Failed to create test occurrence: %v", err)
	}
	return *occurrence
}

// InsertResetToken inserts a token row with explicit validity fields, used to
// exercise expiry and reuse paths without waiting for the clock.
func (h *TestDataHelper) InsertResetToken(owner Actor, secret string, expiresAt time.Time, used bool) ResetToken {
	token := &ResetToken{
		ActorID:   owner.ID,
		Secret:    secret,
		ExpiresAt: expiresAt,
		Used:      used,
	}
	if used {
		token.UsedAt = time.Now()
	}
	if _, err := h.service.db.NewInsert().Model(token).Exec(h.ctx); err != nil {
		h.t.Fatalf("Failed to create test reset token: %v", err)
	}
	return *token
}

// NotificationsFor returns all notifications for a recipient.
func (h *TestDataHelper) NotificationsFor(recipient Actor) []Notification {
	notifications, err := h.service.Notifications(h.ctx, recipient.ID)
	if err != nil {
		h.t.Fatalf("Failed to list notifications: %v", err)
	}
	return notifications
}

// AuditEntriesFor returns audit entries recorded for the given actor, using
// a president-level read so tests can inspect any actor's trail.
func (h *TestDataHelper) AuditEntriesFor(actorID string) []AuditEntry {
	var entries []AuditEntry
	err := h.service.db.NewSelect().Model(&entries).
		Where("actor_id = ?", actorID).
		Order("created_at DESC").
		Scan(h.ctx)
	if err != nil {
		h.t.Fatalf("Failed to list audit entries: %v", err)
	}
	return entries
}

// GetService returns the service instance
func (h *TestDataHelper) GetService() *Service {
	return h.service
}

// GetContext returns the context instance
func (h *TestDataHelper) GetContext() context.Context {
	return h.ctx
}
