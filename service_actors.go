package riverkit

import (
	"context"
	"fmt"
	"time"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// ACTOR OPERATIONS
// ============================================================================

// ActorInput carries the fields needed to register an actor.
type ActorInput struct {
	Name  string
	Email string
	Role  Role
}

// CreateActor registers a new actor. Only the president creates actors and
// decides their role.
func (s *Service) CreateActor(ctx context.Context, actor Actor, input ActorInput) (*Actor, error) {
	if actor.Role != RolePresident {
		return nil, NewError(ErrAccessDenied, "only the president registers actors").
			WithActor(actor.ID).
			WithRole(actor.Role)
	}
	if !input.Role.Valid() {
		return nil, NewError(ErrInvalidRole, "unknown role").WithRole(input.Role)
	}

	created := &Actor{
		Name:   input.Name,
		Email:  input.Email,
		Role:   input.Role,
		Active: true,
	}
	result, err := s.db.NewInsert().Model(created).Exec(ctx)
	err = dbkit.WithErr(result, err, "CreateActor").Err()
	if err != nil {
		if dbkit.IsDuplicate(err) {
			return nil, NewError(ErrDuplicateName, "email already registered").WithTarget(input.Email)
		}
		return nil, NewError(ErrDatabaseError, "failed to create actor").WithActor(actor.ID)
	}

	s.RecordActivity(ctx, ActivityEntry{
		ActorID:     actor.ID,
		Action:      ActionCreateActor,
		Description: fmt.Sprintf("Registered actor %s", created.Name),
		Details:     ActorDetails{ActorID: created.ID, Active: true}.ToDetails(),
		Notify:      true,
	})

	return created, nil
}

// SetActorRole changes an actor's role. Roles are immutable except through
// an explicit edit by the president.
func (s *Service) SetActorRole(ctx context.Context, actor Actor, targetID string, role Role) error {
	if actor.Role != RolePresident {
		return NewError(ErrAccessDenied, "only the president changes roles").
			WithActor(actor.ID).
			WithRole(actor.Role)
	}
	if !role.Valid() {
		return NewError(ErrInvalidRole, "unknown role").WithRole(role)
	}

	target, err := s.getActor(ctx, targetID)
	if err != nil {
		return err
	}

	result, err := s.db.NewUpdate().
		Model((*Actor)(nil)).
		Set("role = ?", role).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", targetID).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "SetActorRole").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to change role").
			WithActor(actor.ID).
			WithTarget(targetID)
	}

	s.RecordActivity(ctx, ActivityEntry{
		ActorID:     actor.ID,
		Action:      ActionEditActor,
		Description: fmt.Sprintf("Changed role of %s from %s to %s", target.Name, target.Role, role),
		Details:     ActorDetails{ActorID: targetID, Active: target.Active}.ToDetails(),
		Notify:      true,
	})

	return nil
}

// SuspendActor deactivates an actor. President only; self-suspension is
// rejected so the system cannot lock out its last administrator.
func (s *Service) SuspendActor(ctx context.Context, actor Actor, targetID, reason string) error {
	return s.setActorActive(ctx, actor, targetID, false, reason)
}

// ReactivateActor reverses a suspension. President only.
func (s *Service) ReactivateActor(ctx context.Context, actor Actor, targetID string) error {
	return s.setActorActive(ctx, actor, targetID, true, "")
}

func (s *Service) setActorActive(ctx context.Context, actor Actor, targetID string, active bool, reason string) error {
	if actor.Role != RolePresident {
		return NewError(ErrAccessDenied, "only the president suspends or reactivates actors").
			WithActor(actor.ID).
			WithRole(actor.Role)
	}
	if targetID == actor.ID {
		return NewError(ErrAccessDenied, "cannot change own active status").
			WithActor(actor.ID)
	}
	if s.isHiddenFor(targetID, actor.ID) {
		return NewError(ErrAccessDenied, "target is not visible").
			WithActor(actor.ID).
			WithTarget(targetID)
	}

	target, err := s.getActor(ctx, targetID)
	if err != nil {
		return err
	}

	result, err := s.db.NewUpdate().
		Model((*Actor)(nil)).
		Set("active = ?", active).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", targetID).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "SetActorActive").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to change active status").
			WithActor(actor.ID).
			WithTarget(targetID)
	}

	action := ActionSuspendActor
	description := fmt.Sprintf("Suspended actor %s", target.Name)
	if active {
		action = ActionReactivateActor
		description = fmt.Sprintf("Reactivated actor %s", target.Name)
	}

	s.RecordActivity(ctx, ActivityEntry{
		ActorID:     actor.ID,
		Action:      action,
		Description: description,
		Details:     ActorDetails{ActorID: targetID, Active: active, SuspensionReason: reason}.ToDetails(),
		Notify:      true,
	})

	return nil
}
