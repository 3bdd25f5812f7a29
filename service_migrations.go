package riverkit

import (
	"github.com/fernandezvara/dbkit"
)

// Migrations returns all database migrations required for riverkit.
// Use db.Migrate(ctx, service.Migrations()) to run migrations.
func (s *Service) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "riverkit-001",
			Description: "Create actors table",
			SQL: `
                CREATE TABLE IF NOT EXISTS actors (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    name TEXT NOT NULL,
                    email TEXT NOT NULL UNIQUE,
                    role TEXT NOT NULL,
                    active BOOLEAN NOT NULL DEFAULT TRUE,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "riverkit-002",
			Description: "Create occurrences table",
			SQL: `
                CREATE TABLE IF NOT EXISTS occurrences (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    date TIMESTAMPTZ NOT NULL,
                    zone TEXT NOT NULL,
                    kind TEXT NOT NULL,
                    description TEXT,
                    actor_id UUID NOT NULL REFERENCES actors(id),
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "riverkit-003",
			Description: "Create audit_log table",
			SQL: `
                CREATE TABLE IF NOT EXISTS audit_log (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    actor_id UUID NOT NULL,
                    action TEXT NOT NULL,
                    description TEXT NOT NULL,
                    ip_address TEXT,
                    user_agent TEXT,
                    request_id TEXT,
                    details JSONB,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "riverkit-004",
			Description: "Create notifications table",
			SQL: `
                CREATE TABLE IF NOT EXISTS notifications (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    recipient_id UUID NOT NULL REFERENCES actors(id),
                    title TEXT NOT NULL,
                    message TEXT NOT NULL,
                    severity TEXT NOT NULL DEFAULT 'info',
                    link TEXT,
                    read BOOLEAN NOT NULL DEFAULT FALSE,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "riverkit-005",
			Description: "Create password_reset_tokens table",
			SQL: `
                CREATE TABLE IF NOT EXISTS password_reset_tokens (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    actor_id UUID NOT NULL REFERENCES actors(id),
                    secret TEXT NOT NULL UNIQUE,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    expires_at TIMESTAMPTZ NOT NULL,
                    used BOOLEAN NOT NULL DEFAULT FALSE,
                    used_at TIMESTAMPTZ
                )`,
		},
		{
			ID:          "riverkit-006",
			Description: "Create zone and occurrence kind lookup tables",
			SQL: `
                CREATE TABLE IF NOT EXISTS zones (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    name TEXT NOT NULL UNIQUE,
                    created_by UUID,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                );
                CREATE TABLE IF NOT EXISTS occurrence_kinds (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    name TEXT NOT NULL UNIQUE,
                    created_by UUID,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "riverkit-007",
			Description: "Index token secrets and notification recipients",
			SQL: `
                CREATE INDEX IF NOT EXISTS idx_reset_tokens_secret ON password_reset_tokens (secret);
                CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient_id, read);
                CREATE INDEX IF NOT EXISTS idx_audit_log_actor ON audit_log (actor_id, created_at)`,
		},
	}
}
