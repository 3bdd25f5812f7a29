package riverkit

import (
	"context"
	"time"

	"github.com/fernandezvara/dbkit"
)

// Database defines the database operations interface for dependency injection
type Database interface {
	dbkit.IDB
}

// VisibilityFilter maps an actor (and optional explicit target) to the
// record scope it is authorized for.
type VisibilityFilter interface {
	ScopeFor(ctx context.Context, actor Actor, targetID string) (Scope, error)
	VisibleActors(ctx context.Context, actor Actor) ([]Actor, error)
}

// AuditRecorder durably appends audit entries without ever failing the caller.
type AuditRecorder interface {
	RecordActivity(ctx context.Context, entry ActivityEntry)
	AuditLog(ctx context.Context, actor Actor, filter AuditFilter) ([]AuditEntry, error)
}

// NotificationReader exposes per-recipient notification access.
type NotificationReader interface {
	Notifications(ctx context.Context, recipientID string) ([]Notification, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkNotificationRead(ctx context.Context, notificationID, actorID string) error
}

// TokenManager issues, validates and atomically redeems reset tokens.
type TokenManager interface {
	IssueResetToken(ctx context.Context, ownerID string, ttl time.Duration) (*ResetToken, string, error)
	VerifyResetToken(ctx context.Context, secret string) (string, error)
	RedeemResetToken(ctx context.Context, secret string) (string, error)
}

// TransactionManager defines the transaction management interface
type TransactionManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	TransactionWithOptions(ctx context.Context, opts dbkit.TxOptions, fn func(ctx context.Context) error) error
	ReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// HealthMonitor defines the health monitoring interface
type HealthMonitor interface {
	Health(ctx context.Context) dbkit.HealthStatus
	IsHealthy(ctx context.Context) bool
	Ping(ctx context.Context) error
	GetPoolStats() dbkit.PoolStats
}

// TransactionMonitor defines the transaction monitoring interface
type TransactionMonitor interface {
	GetTransactionMetrics() TransactionMetrics
	ResetTransactionMetrics()
}
