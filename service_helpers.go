package riverkit

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// INTERNAL HELPERS
// ============================================================================

func (s *Service) getActor(ctx context.Context, actorID string) (*Actor, error) {
	var actor Actor
	err := dbkit.WithErr1(s.db.NewSelect().Model(&actor).Where("id = ?", actorID).Limit(1).Scan(ctx), "GetActor").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrActorNotFound, "unknown actor").WithTarget(actorID)
		}
		return nil, err
	}
	return &actor, nil
}

func (s *Service) getOccurrence(ctx context.Context, occurrenceID string) (*Occurrence, error) {
	var occurrence Occurrence
	err := dbkit.WithErr1(s.db.NewSelect().Model(&occurrence).Where("id = ?", occurrenceID).Limit(1).Scan(ctx), "GetOccurrence").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrOccurrenceNotFound, "unknown occurrence").WithTarget(occurrenceID)
		}
		return nil, err
	}
	return &occurrence, nil
}

func (s *Service) actorExists(ctx context.Context, actorID string) bool {
	exists, err := dbkit.Exists[Actor](ctx, s.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", actorID)
	})
	if err != nil {
		return false
	}
	return exists
}

func (s *Service) occurrenceExists(ctx context.Context, occurrenceID string) bool {
	exists, err := dbkit.Exists[Occurrence](ctx, s.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", occurrenceID)
	})
	if err != nil {
		return false
	}
	return exists
}

// CountOccurrences returns the number of occurrences inside the actor's scope.
// Useful for dashboards and monitoring.
func (s *Service) CountOccurrences(ctx context.Context, actor Actor) (int, error) {
	scope, err := s.ScopeFor(ctx, actor, "")
	if err != nil {
		return 0, err
	}
	return dbkit.Count[Occurrence](ctx, s.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return scope.ApplyTo(q, "actor_id")
	})
}

// CountAuditEntries returns the total number of audit entries in the system.
// Useful for monitoring and retention checks.
func (s *Service) CountAuditEntries(ctx context.Context) (int, error) {
	return dbkit.Count[AuditEntry](ctx, s.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q
	})
}
