// Package riverkit is the access-scoping, audit and notification core of an
// incident-tracking system for a river-safety organization.
//
// The surrounding application (routing, templating, form handling, exports,
// email delivery) is an external consumer. riverkit owns the four concerns
// with real invariants:
//
//   - Role visibility: which records an actor may see or modify, computed
//     from the three-role hierarchy (swimmer, supervisor, president) plus the
//     hidden-actor exception.
//   - Audit trail: an append-only activity log written outside the caller's
//     transaction, so audit failures never break primary operations and
//     caller rollbacks never erase history.
//   - Notification fan-out: one best-effort notification per member of the
//     supervisory audience for audit-worthy actions.
//   - Password-reset tokens: single-use, time-boxed secrets with atomic
//     redemption under concurrent access.
//
// # Core Concepts
//
// Actor: any authenticated user. The web layer resolves the session and
// passes the actor explicitly; no component reads identity from shared state.
//
// Scope: the set of actor IDs whose records the caller may touch. Swimmers
// see themselves, supervisors see all swimmers plus their own records, the
// president sees everything. One designated hidden actor is excluded from
// every listing shown to anyone but itself.
//
// Action: a closed enumeration of auditable action kinds. A fixed subset is
// "audit-worthy" and fans out notifications; login always does.
//
// # Basic Usage
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := riverkit.NewService(db,
//	    riverkit.WithHiddenActorID(hiddenID),
//	    riverkit.WithBaseURL("https://riversafety.example.org"),
//	)
//
//	// Run migrations
//	db.Migrate(ctx, service.Migrations())
//
//	// Authorize, mutate, audit, notify - in one call
//	occ, err := service.CreateOccurrence(ctx, actor, riverkit.OccurrenceInput{
//	    Zone: "north bank",
//	    Kind: "near drowning",
//	})
//
//	// Build listing queries from the actor's scope
//	occurrences, err := service.Occurrences(ctx, actor, "")
//
// # Password Recovery
//
//	token, secret, err := service.IssueResetToken(ctx, ownerID, time.Hour)
//	link := service.ResetLink(secret) // handed to the delivery channel once
//
//	// Later, atomically consume it; double redemption fails uniformly
//	ownerID, err := service.RedeemResetToken(ctx, secret)
//
// # Error Policy
//
// Authorization failures (ErrAccessDenied) are the only errors this core
// surfaces to abort a primary action. Audit and notification failures are
// logged and absorbed: observability is best-effort and never becomes a
// liveness hazard for business operations.
package riverkit
