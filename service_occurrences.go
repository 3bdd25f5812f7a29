package riverkit

import (
	"context"
	"fmt"
	"time"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// OCCURRENCE OPERATIONS
// ============================================================================

// OccurrenceInput carries the mutable fields of an occurrence.
type OccurrenceInput struct {
	Date        time.Time
	Zone        string
	Kind        string
	Description string
}

// CreateOccurrence registers a new occurrence owned by the acting actor,
// audits the creation and notifies the supervisory audience.
func (s *Service) CreateOccurrence(ctx context.Context, actor Actor, input OccurrenceInput) (*Occurrence, error) {
	if !actor.Active {
		return nil, NewError(ErrAccessDenied, "suspended actors cannot report occurrences").
			WithActor(actor.ID)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	occurrence := &Occurrence{
		Date:        date,
		Zone:        input.Zone,
		Kind:        input.Kind,
		Description: input.Description,
		ActorID:     actor.ID,
	}

	result, err := s.db.NewInsert().Model(occurrence).Exec(ctx)
	err = dbkit.WithErr(result, err, "CreateOccurrence").Err()
	if err != nil {
		return nil, NewError(ErrDatabaseError, "failed to create occurrence").
			WithActor(actor.ID)
	}

	s.RecordActivity(ctx, ActivityEntry{
		ActorID:     actor.ID,
		Action:      ActionCreateOccurrence,
		Description: fmt.Sprintf("Reported occurrence in zone %s", occurrence.Zone),
		Details:     OccurrenceDetails{OccurrenceID: occurrence.ID, Zone: occurrence.Zone, Kind: occurrence.Kind}.ToDetails(),
		Notify:      true,
	})

	return occurrence, nil
}

// GetOccurrence returns a single occurrence if it falls inside the actor's scope.
func (s *Service) GetOccurrence(ctx context.Context, actor Actor, occurrenceID string) (*Occurrence, error) {
	occurrence, err := s.getOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}

	scope, err := s.ScopeFor(ctx, actor, "")
	if err != nil {
		return nil, err
	}
	if !scope.Allows(occurrence.ActorID) {
		return nil, NewError(ErrAccessDenied, "occurrence outside actor scope").
			WithActor(actor.ID).
			WithTarget(occurrenceID)
	}

	return occurrence, nil
}

// UpdateOccurrence edits an occurrence inside the actor's scope, audits the
// edit and notifies the supervisory audience.
func (s *Service) UpdateOccurrence(ctx context.Context, actor Actor, occurrenceID string, input OccurrenceInput) (*Occurrence, error) {
	occurrence, err := s.GetOccurrence(ctx, actor, occurrenceID)
	if err != nil {
		return nil, err
	}

	if !input.Date.IsZero() {
		occurrence.Date = input.Date
	}
	if input.Zone != "" {
		occurrence.Zone = input.Zone
	}
	if input.Kind != "" {
		occurrence.Kind = input.Kind
	}
	occurrence.Description = input.Description
	occurrence.UpdatedAt = time.Now()

	result, err := s.db.NewUpdate().
		Model(occurrence).
		Column("date", "zone", "kind", "description", "updated_at").
		WherePK().
		Exec(ctx)
	err = dbkit.WithErr(result, err, "UpdateOccurrence").Err()
	if err != nil {
		return nil, NewError(ErrDatabaseError, "failed to update occurrence").
			WithActor(actor.ID).
			WithTarget(occurrenceID)
	}

	s.RecordActivity(ctx, ActivityEntry{
		ActorID:     actor.ID,
		Action:      ActionEditOccurrence,
		Description: fmt.Sprintf("Edited occurrence %s", occurrence.ID),
		Details:     OccurrenceDetails{OccurrenceID: occurrence.ID, Zone: occurrence.Zone, Kind: occurrence.Kind}.ToDetails(),
		Notify:      true,
	})

	return occurrence, nil
}

// DeleteOccurrence removes an occurrence inside the actor's scope, audits
// the removal and notifies the supervisory audience.
func (s *Service) DeleteOccurrence(ctx context.Context, actor Actor, occurrenceID string) error {
	occurrence, err := s.GetOccurrence(ctx, actor, occurrenceID)
	if err != nil {
		return err
	}

	result, err := s.db.NewDelete().
		Model((*Occurrence)(nil)).
		Where("id = ?", occurrenceID).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "DeleteOccurrence").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to delete occurrence").
			WithActor(actor.ID).
			WithTarget(occurrenceID)
	}

	s.RecordActivity(ctx, ActivityEntry{
		ActorID:     actor.ID,
		Action:      ActionDeleteOccurrence,
		Description: fmt.Sprintf("Removed occurrence %s", occurrence.ID),
		Details:     OccurrenceDetails{OccurrenceID: occurrence.ID, Zone: occurrence.Zone, Kind: occurrence.Kind}.ToDetails(),
		Notify:      true,
	})

	return nil
}

// Occurrences lists occurrences inside the actor's scope, optionally
// narrowed to an explicit target actor, newest first.
func (s *Service) Occurrences(ctx context.Context, actor Actor, targetID string) ([]Occurrence, error) {
	scope, err := s.ScopeFor(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	var occurrences []Occurrence
	q := s.db.NewSelect().Model(&occurrences)
	q = scope.ApplyTo(q, "actor_id")
	err = dbkit.WithErr1(q.Order("date DESC").Scan(ctx), "Occurrences").Err()
	if err != nil {
		return nil, err
	}
	return occurrences, nil
}

// ============================================================================
// LOOKUP TABLES
// ============================================================================

// CreateZone adds a zone to the lookup table. Supervisors and the president
// maintain the lookups.
func (s *Service) CreateZone(ctx context.Context, actor Actor, name string) (*Zone, error) {
	if !actor.Role.Supervisory() {
		return nil, NewError(ErrAccessDenied, "only supervisors and the president manage zones").
			WithActor(actor.ID).
			WithRole(actor.Role)
	}

	zone := &Zone{Name: name, CreatedBy: actor.ID}
	result, err := s.db.NewInsert().Model(zone).Exec(ctx)
	err = dbkit.WithErr(result, err, "CreateZone").Err()
	if err != nil {
		if dbkit.IsDuplicate(err) {
			return nil, NewError(ErrDuplicateName, "zone already exists").WithTarget(name)
		}
		return nil, NewError(ErrDatabaseError, "failed to create zone").WithActor(actor.ID)
	}
	return zone, nil
}

// CreateOccurrenceKind adds an occurrence category to the lookup table.
func (s *Service) CreateOccurrenceKind(ctx context.Context, actor Actor, name string) (*OccurrenceKind, error) {
	if !actor.Role.Supervisory() {
		return nil, NewError(ErrAccessDenied, "only supervisors and the president manage occurrence kinds").
			WithActor(actor.ID).
			WithRole(actor.Role)
	}

	kind := &OccurrenceKind{Name: name, CreatedBy: actor.ID}
	result, err := s.db.NewInsert().Model(kind).Exec(ctx)
	err = dbkit.WithErr(result, err, "CreateOccurrenceKind").Err()
	if err != nil {
		if dbkit.IsDuplicate(err) {
			return nil, NewError(ErrDuplicateName, "occurrence kind already exists").WithTarget(name)
		}
		return nil, NewError(ErrDatabaseError, "failed to create occurrence kind").WithActor(actor.ID)
	}
	return kind, nil
}
