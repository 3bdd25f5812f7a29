package riverkit

import (
	"context"
	"slices"

	"github.com/uptrace/bun"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// ROLE VISIBILITY
// ============================================================================

// Scope is the set of actor IDs whose records the caller is authorized to
// see or modify. It is consumed by the web layer to build storage queries.
type Scope struct {
	// Unrestricted means every actor's records are visible, minus Exclude.
	Unrestricted bool

	// ActorIDs is the allow-list when the scope is restricted.
	ActorIDs []string

	// Exclude lists actor IDs removed even from an unrestricted scope.
	Exclude []string
}

// Allows reports whether records owned by the given actor fall inside the scope.
func (sc Scope) Allows(actorID string) bool {
	if slices.Contains(sc.Exclude, actorID) {
		return false
	}
	if sc.Unrestricted {
		return true
	}
	return slices.Contains(sc.ActorIDs, actorID)
}

// ApplyTo narrows a select query to the scope, matching the given owner
// column. An empty restricted scope matches nothing.
func (sc Scope) ApplyTo(q *bun.SelectQuery, column string) *bun.SelectQuery {
	if !sc.Unrestricted {
		if len(sc.ActorIDs) == 0 {
			return q.Where("1 = 0")
		}
		q = q.Where("? IN (?)", bun.Ident(column), bun.In(sc.ActorIDs))
	}
	if len(sc.Exclude) > 0 {
		q = q.Where("? NOT IN (?)", bun.Ident(column), bun.In(sc.Exclude))
	}
	return q
}

// ScopeFor computes the record scope for an actor, optionally narrowed to an
// explicit target actor. The result is deterministic for fixed data: no time
// or randomness enters the computation.
//
//   - Swimmers see their own records only; any other explicit target is denied.
//   - Supervisors see all swimmers plus records they authored themselves; an
//     explicit target must resolve to a swimmer.
//   - The president sees everything, except the hidden actor's records unless
//     the president is the hidden actor itself.
func (s *Service) ScopeFor(ctx context.Context, actor Actor, targetID string) (Scope, error) {
	switch actor.Role {
	case RoleSwimmer:
		if targetID != "" && targetID != actor.ID {
			return Scope{}, NewError(ErrAccessDenied, "swimmers see only their own records").
				WithActor(actor.ID).
				WithTarget(targetID)
		}
		return Scope{ActorIDs: []string{actor.ID}}, nil

	case RoleSupervisor:
		if targetID != "" {
			if targetID == actor.ID {
				return Scope{ActorIDs: []string{actor.ID}}, nil
			}
			if s.isHiddenFor(targetID, actor.ID) {
				return Scope{}, NewError(ErrAccessDenied, "target is not visible").
					WithActor(actor.ID).
					WithTarget(targetID)
			}
			target, err := s.getActor(ctx, targetID)
			if err != nil {
				if IsNotFound(err) {
					return Scope{}, NewError(ErrAccessDenied, "target is not a swimmer").
						WithActor(actor.ID).
						WithTarget(targetID)
				}
				return Scope{}, err
			}
			if target.Role != RoleSwimmer {
				return Scope{}, NewError(ErrAccessDenied, "target is not a swimmer").
					WithActor(actor.ID).
					WithTarget(targetID).
					WithRole(target.Role)
			}
			return Scope{ActorIDs: []string{target.ID}}, nil
		}

		ids, err := s.swimmerIDs(ctx, actor.ID)
		if err != nil {
			return Scope{}, err
		}
		// Supervisors also see records they authored themselves.
		if !slices.Contains(ids, actor.ID) {
			ids = append(ids, actor.ID)
		}
		slices.Sort(ids)
		return Scope{ActorIDs: ids}, nil

	case RolePresident:
		if targetID != "" {
			if s.isHiddenFor(targetID, actor.ID) {
				return Scope{}, NewError(ErrAccessDenied, "target is not visible").
					WithActor(actor.ID).
					WithTarget(targetID)
			}
			return Scope{ActorIDs: []string{targetID}}, nil
		}
		scope := Scope{Unrestricted: true}
		if s.hiddenActorID != "" && actor.ID != s.hiddenActorID {
			scope.Exclude = []string{s.hiddenActorID}
		}
		return scope, nil
	}

	return Scope{}, NewError(ErrInvalidRole, "unknown role").
		WithActor(actor.ID).
		WithRole(actor.Role)
}

// VisibleActors returns the actor listing the given actor may see.
// The hidden actor is excluded from every listing shown to anyone but itself,
// regardless of role.
func (s *Service) VisibleActors(ctx context.Context, actor Actor) ([]Actor, error) {
	var actors []Actor
	q := s.db.NewSelect().Model(&actors)

	switch actor.Role {
	case RoleSwimmer:
		q = q.Where("id = ?", actor.ID)
	case RoleSupervisor:
		q = q.Where("role = ? OR id = ?", RoleSwimmer, actor.ID)
	case RolePresident:
		// unrestricted
	default:
		return nil, NewError(ErrInvalidRole, "unknown role").
			WithActor(actor.ID).
			WithRole(actor.Role)
	}

	if s.hiddenActorID != "" && actor.ID != s.hiddenActorID {
		q = q.Where("id != ?", s.hiddenActorID)
	}

	err := dbkit.WithErr1(q.Order("name ASC").Scan(ctx), "VisibleActors").Err()
	if err != nil {
		return nil, err
	}
	return actors, nil
}

// isHiddenFor reports whether the given target is the hidden actor as seen
// by viewer. The hidden actor is never hidden from itself.
func (s *Service) isHiddenFor(targetID, viewerID string) bool {
	return s.hiddenActorID != "" && targetID == s.hiddenActorID && viewerID != s.hiddenActorID
}

// swimmerIDs returns the IDs of all swimmers visible to the given viewer.
func (s *Service) swimmerIDs(ctx context.Context, viewerID string) ([]string, error) {
	var ids []string
	q := s.db.NewSelect().Model((*Actor)(nil)).Column("id").Where("role = ?", RoleSwimmer)
	if s.hiddenActorID != "" && viewerID != s.hiddenActorID {
		q = q.Where("id != ?", s.hiddenActorID)
	}
	err := dbkit.WithErr1(q.Scan(ctx, &ids), "SwimmerIDs").Err()
	if err != nil {
		return nil, err
	}
	return ids, nil
}
