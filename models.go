package riverkit

import (
	"time"

	"github.com/uptrace/bun"
)

// Role is the closed set of operator roles.
// The visibility hierarchy is president > supervisor > swimmer: each wider
// role can see at least what the narrower one sees.
type Role string

const (
	RoleSwimmer    Role = "swimmer"
	RoleSupervisor Role = "supervisor"
	RolePresident  Role = "president"
)

// Valid reports whether the role is one of the three defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSwimmer, RoleSupervisor, RolePresident:
		return true
	}
	return false
}

// Supervisory reports whether actors with this role belong to the
// notification audience (supervisors and the president).
func (r Role) Supervisory() bool {
	return r == RoleSupervisor || r == RolePresident
}

// Action identifies an auditable action kind.
type Action string

const (
	ActionLogin            Action = "login"
	ActionLogout           Action = "logout"
	ActionCreateOccurrence Action = "create_occurrence"
	ActionEditOccurrence   Action = "edit_occurrence"
	ActionDeleteOccurrence Action = "delete_occurrence"
	ActionCreateActor      Action = "create_actor"
	ActionEditActor        Action = "edit_actor"
	ActionSuspendActor     Action = "suspend_actor"
	ActionReactivateActor  Action = "reactivate_actor"
	ActionPasswordReset    Action = "password_reset"
	ActionMarkRead         Action = "mark_notification_read"
)

// Notifiable reports whether the action fans out to the supervisory audience
// when the recorder is asked to notify. Login is handled separately: it
// always notifies, regardless of the caller's flag.
func (a Action) Notifiable() bool {
	switch a {
	case ActionCreateOccurrence, ActionEditOccurrence, ActionDeleteOccurrence,
		ActionCreateActor, ActionEditActor, ActionSuspendActor, ActionReactivateActor:
		return true
	}
	return false
}

// Severity classifies a notification for presentation purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Actor is an authenticated user of the system.
type Actor struct {
	bun.BaseModel `bun:"table:actors,alias:a"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email,notnull,unique"`
	Role      Role      `bun:"role,notnull"`
	Active    bool      `bun:"active,notnull,default:true"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Occurrence is an incident report. It is owned by exactly one actor and
// ownership never transfers.
type Occurrence struct {
	bun.BaseModel `bun:"table:occurrences,alias:o"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Date        time.Time `bun:"date,notnull"`
	Zone        string    `bun:"zone,notnull"`
	Kind        string    `bun:"kind,notnull"`
	Description string    `bun:"description"`
	ActorID     string    `bun:"actor_id,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Zone is a lookup entry for incident locations, maintained by supervisors
// and the president.
type Zone struct {
	bun.BaseModel `bun:"table:zones,alias:z"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name      string    `bun:"name,notnull,unique"`
	CreatedBy string    `bun:"created_by"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// OccurrenceKind is a lookup entry for incident categories.
type OccurrenceKind struct {
	bun.BaseModel `bun:"table:occurrence_kinds,alias:ok"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name      string    `bun:"name,notnull,unique"`
	CreatedBy string    `bun:"created_by"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// AuditEntry is an append-only record of a side-effecting action.
// Entries are never updated or deleted; no API for either exists.
type AuditEntry struct {
	bun.BaseModel `bun:"table:audit_log,alias:al"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	ActorID     string    `bun:"actor_id,notnull"`
	Action      Action    `bun:"action,notnull"`
	Description string    `bun:"description,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`

	// Request metadata for forensics
	IPAddress string `bun:"ip_address"`
	UserAgent string `bun:"user_agent"`
	RequestID string `bun:"request_id"`

	// Additional per-action context (JSON)
	Details map[string]any `bun:"details,type:jsonb"`
}

// Notification is a per-recipient message about an audited action.
// The read flag is monotonic: false to true, never back.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	RecipientID string    `bun:"recipient_id,notnull"`
	Title       string    `bun:"title,notnull"`
	Message     string    `bun:"message,notnull"`
	Severity    Severity  `bun:"severity,notnull"`
	Link        string    `bun:"link"`
	Read        bool      `bun:"read,notnull,default:false"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// ResetToken is a single-use, time-boxed password-reset token.
// The raw secret is exposed to the owner exactly once, at issuance.
type ResetToken struct {
	bun.BaseModel `bun:"table:password_reset_tokens,alias:rt"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	ActorID   string    `bun:"actor_id,notnull"`
	Secret    string    `bun:"secret,notnull,unique"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	Used      bool      `bun:"used,notnull,default:false"`
	UsedAt    time.Time `bun:"used_at,nullzero"`
}

// ValidAt reports whether the token is redeemable at the given instant.
func (t *ResetToken) ValidAt(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// OccurrenceDetails is the typed view over the audit details map for
// occurrence actions. Missing keys decode to zero values.
type OccurrenceDetails struct {
	OccurrenceID string
	Zone         string
	Kind         string
}

// ActorDetails is the typed view over the audit details map for actor
// lifecycle actions (create, edit, suspend, reactivate).
type ActorDetails struct {
	ActorID          string
	Active           bool
	SuspensionReason string
}

// ToDetails converts the typed view to the schema-less storage form.
func (d OccurrenceDetails) ToDetails() map[string]any {
	m := map[string]any{"occurrence_id": d.OccurrenceID}
	if d.Zone != "" {
		m["zone"] = d.Zone
	}
	if d.Kind != "" {
		m["kind"] = d.Kind
	}
	return m
}

// ToDetails converts the typed view to the schema-less storage form.
func (d ActorDetails) ToDetails() map[string]any {
	m := map[string]any{"actor_id": d.ActorID, "active": d.Active}
	if d.SuspensionReason != "" {
		m["suspension_reason"] = d.SuspensionReason
	}
	return m
}

// OccurrenceDetailsFrom decodes the typed occurrence view from a details map.
// Consumers tolerate missing keys, so absent entries stay zero.
func OccurrenceDetailsFrom(details map[string]any) OccurrenceDetails {
	var d OccurrenceDetails
	if details == nil {
		return d
	}
	if v, ok := details["occurrence_id"].(string); ok {
		d.OccurrenceID = v
	}
	if v, ok := details["zone"].(string); ok {
		d.Zone = v
	}
	if v, ok := details["kind"].(string); ok {
		d.Kind = v
	}
	return d
}

// ActorDetailsFrom decodes the typed actor view from a details map.
func ActorDetailsFrom(details map[string]any) ActorDetails {
	var d ActorDetails
	if details == nil {
		return d
	}
	if v, ok := details["actor_id"].(string); ok {
		d.ActorID = v
	}
	if v, ok := details["active"].(bool); ok {
		d.Active = v
	}
	if v, ok := details["suspension_reason"].(string); ok {
		d.SuspensionReason = v
	}
	return d
}
