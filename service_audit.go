package riverkit

import (
	"context"
	"log"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// AUDIT RECORDING
// ============================================================================

// ActivityEntry describes a side-effecting action to be recorded.
type ActivityEntry struct {
	ActorID     string
	Action      Action
	Description string
	Details     map[string]any

	// Notify asks for supervisory fan-out. It only takes effect for
	// notifiable actions; login fans out regardless of this flag.
	Notify bool
}

// RecordActivity durably appends an audit entry for the action and, for
// notifiable actions, fans out notifications to the supervisory audience.
//
// It never fails the caller: every error on this path is logged and
// swallowed, so the primary operation's outcome is unaffected. The write
// goes through the handle captured at construction, outside any transaction
// the caller may hold, so a caller rollback cannot erase the entry either.
func (s *Service) RecordActivity(ctx context.Context, entry ActivityEntry) {
	audit := GetAuditContext(ctx)
	model := &AuditEntry{
		ActorID:     entry.ActorID,
		Action:      entry.Action,
		Description: entry.Description,
		Details:     entry.Details,
		IPAddress:   audit.IPAddress,
		UserAgent:   audit.UserAgent,
		RequestID:   audit.RequestID,
	}

	result, err := s.root.NewInsert().Model(model).Exec(ctx)
	err = dbkit.WithErr(result, err, "RecordActivity").Err()
	if err != nil {
		log.Printf("riverkit: audit write failed for action %s by %s: %v", entry.Action, entry.ActorID, err)
		return
	}

	if entry.Action == ActionLogin || (entry.Notify && entry.Action.Notifiable()) {
		s.fanOut(ctx, entry)
	}
}

// AuditLog retrieves audit entries visible to the given actor.
// The president reads the full trail (minus the hidden actor's entries,
// unless the president is the hidden actor); everyone else reads only their
// own entries. Asking for another actor's trail without the role yields
// ErrAccessDenied.
func (s *Service) AuditLog(ctx context.Context, actor Actor, filter AuditFilter) ([]AuditEntry, error) {
	if filter.ActorID != "" && filter.ActorID != actor.ID {
		if actor.Role != RolePresident {
			return nil, NewError(ErrAccessDenied, "cannot read another actor's activity").
				WithActor(actor.ID).
				WithTarget(filter.ActorID)
		}
		if s.isHiddenFor(filter.ActorID, actor.ID) {
			return nil, NewError(ErrAccessDenied, "target is not visible").
				WithActor(actor.ID).
				WithTarget(filter.ActorID)
		}
	}

	var entries []AuditEntry
	q := s.db.NewSelect().Model(&entries)

	switch {
	case filter.ActorID != "":
		q = q.Where("actor_id = ?", filter.ActorID)
	case actor.Role == RolePresident:
		if s.hiddenActorID != "" && actor.ID != s.hiddenActorID {
			q = q.Where("actor_id != ?", s.hiddenActorID)
		}
	default:
		q = q.Where("actor_id = ?", actor.ID)
	}

	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if !filter.Since.IsZero() {
		q = q.Where("created_at >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		q = q.Where("created_at <= ?", filter.Until)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 50 // Default limit
	}
	q = q.Limit(limit)

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	q = q.Order("created_at DESC")
	err := dbkit.WithErr1(q.Scan(ctx), "AuditLog").Err()
	if err != nil {
		return nil, err
	}

	return entries, nil
}
