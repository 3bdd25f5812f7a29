package riverkit

import (
	"context"
	"fmt"
	"log"

	"github.com/uptrace/bun"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// NOTIFICATION FAN-OUT
// ============================================================================

// fanOut creates one notification per member of the supervisory audience for
// an audited action. Delivery is best-effort per recipient: a failed insert
// is logged and the loop moves on, and nothing on this path reaches the
// caller or touches the already-persisted audit entry.
func (s *Service) fanOut(ctx context.Context, entry ActivityEntry) {
	actor, err := s.getActor(ctx, entry.ActorID)
	if err != nil {
		log.Printf("riverkit: notification fan-out skipped, actor %s unresolved: %v", entry.ActorID, err)
		return
	}

	title, message := notificationContent(actor.Name, entry)
	link := s.deriveLink(ctx, entry.Action, entry.Details)

	recipients, err := s.audience(ctx, entry.ActorID)
	if err != nil {
		log.Printf("riverkit: notification fan-out skipped, audience query failed: %v", err)
		return
	}

	for _, recipient := range recipients {
		notification := &Notification{
			RecipientID: recipient.ID,
			Title:       title,
			Message:     message,
			Severity:    SeverityInfo,
			Link:        link,
		}
		if _, err := s.root.NewInsert().Model(notification).Exec(ctx); err != nil {
			log.Printf("riverkit: notification delivery failed for recipient %s: %v", recipient.ID, err)
			continue
		}
	}
}

// audience returns the active supervisors and president, minus the hidden
// actor and minus the acting actor unless self-notification is enabled.
func (s *Service) audience(ctx context.Context, actingActorID string) ([]Actor, error) {
	var actors []Actor
	q := s.db.NewSelect().Model(&actors).
		Where("role IN (?)", bun.In([]Role{RoleSupervisor, RolePresident})).
		Where("active = TRUE")
	if s.hiddenActorID != "" {
		q = q.Where("id != ?", s.hiddenActorID)
	}
	if !s.selfNotify {
		q = q.Where("id != ?", actingActorID)
	}
	err := dbkit.WithErr1(q.Scan(ctx), "NotificationAudience").Err()
	if err != nil {
		return nil, err
	}
	return actors, nil
}

// notificationContent builds the title and message shown to the audience.
func notificationContent(actorName string, entry ActivityEntry) (string, string) {
	switch entry.Action {
	case ActionLogin:
		return "New Login Detected", fmt.Sprintf("%s just signed in.", actorName)
	case ActionCreateOccurrence:
		return "New Occurrence Reported", fmt.Sprintf("%s reported a new occurrence.", actorName)
	case ActionEditOccurrence:
		return "Occurrence Edited", fmt.Sprintf("%s edited an occurrence.", actorName)
	case ActionDeleteOccurrence:
		return "Occurrence Removed", fmt.Sprintf("%s removed an occurrence.", actorName)
	case ActionCreateActor:
		return "Actor Created", fmt.Sprintf("%s registered a new actor.", actorName)
	case ActionEditActor:
		return "Actor Edited", fmt.Sprintf("%s edited an actor.", actorName)
	case ActionSuspendActor:
		details := ActorDetailsFrom(entry.Details)
		if details.SuspensionReason != "" {
			return "Actor Suspended", fmt.Sprintf("Actor suspended by %s. Reason: %s", actorName, details.SuspensionReason)
		}
		return "Actor Suspended", fmt.Sprintf("Actor was suspended by %s.", actorName)
	case ActionReactivateActor:
		return "Actor Reactivated", fmt.Sprintf("Actor was reactivated by %s.", actorName)
	}
	return "Activity Recorded", fmt.Sprintf("%s performed %s.", actorName, entry.Action)
}

// deriveLink maps an audited action to the view the notification should open.
// When the referenced entity no longer resolves (deleted concurrently), the
// link falls back to the generic activity feed instead of failing.
func (s *Service) deriveLink(ctx context.Context, action Action, details map[string]any) string {
	feed := s.baseURL + "/activities"

	switch action {
	case ActionCreateOccurrence, ActionEditOccurrence:
		d := OccurrenceDetailsFrom(details)
		if d.OccurrenceID == "" || !s.occurrenceExists(ctx, d.OccurrenceID) {
			return feed
		}
		return s.baseURL + "/occurrences/" + d.OccurrenceID
	case ActionDeleteOccurrence:
		return s.baseURL + "/occurrences"
	case ActionCreateActor, ActionEditActor, ActionSuspendActor, ActionReactivateActor:
		d := ActorDetailsFrom(details)
		if d.ActorID == "" || !s.actorExists(ctx, d.ActorID) {
			return feed
		}
		return s.baseURL + "/actors/" + d.ActorID
	}
	return feed
}

// ============================================================================
// NOTIFICATION ACCESS
// ============================================================================

// Notifications lists all notifications for a recipient, newest first.
func (s *Service) Notifications(ctx context.Context, recipientID string) ([]Notification, error) {
	var notifications []Notification
	err := dbkit.WithErr1(s.db.NewSelect().Model(&notifications).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Scan(ctx), "Notifications").Err()
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a recipient.
func (s *Service) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return dbkit.Count[Notification](ctx, s.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("recipient_id = ? AND read = FALSE", recipientID)
	})
}

// MarkNotificationRead flips a notification to read on behalf of its
// recipient. Only the recipient may mark it; anyone else gets
// ErrAccessDenied and the flag is left untouched. Marking an already-read
// notification succeeds with no change.
func (s *Service) MarkNotificationRead(ctx context.Context, notificationID, actorID string) error {
	var notification Notification
	err := dbkit.WithErr1(s.db.NewSelect().Model(&notification).
		Where("id = ?", notificationID).
		Limit(1).
		Scan(ctx), "GetNotification").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return NewError(ErrNotificationNotFound, "unknown notification").
				WithTarget(notificationID)
		}
		return err
	}

	if notification.RecipientID != actorID {
		return NewError(ErrAccessDenied, "not the notification recipient").
			WithActor(actorID).
			WithTarget(notificationID)
	}

	if notification.Read {
		return nil // idempotent
	}

	result, err := s.db.NewUpdate().
		Model((*Notification)(nil)).
		Set("read = TRUE").
		Where("id = ?", notificationID).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "MarkNotificationRead").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to mark notification read").
			WithTarget(notificationID)
	}

	s.RecordActivity(ctx, ActivityEntry{
		ActorID:     actorID,
		Action:      ActionMarkRead,
		Description: fmt.Sprintf("Marked notification %s as read", notificationID),
		Details:     map[string]any{"notification_id": notificationID},
	})

	return nil
}
