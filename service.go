package riverkit

import (
	"github.com/fernandezvara/dbkit"
)

// Service provides access scoping, audit recording, notification fan-out and
// password-reset token management over the shared store.
// It integrates with the database through dbkit with enhanced error handling.
//
// Error Handling:
// All database operations use dbkit's chainable error wrapping to provide
// detailed context about failed operations. Authorization failures are the
// only error class that reaches callers and aborts the primary action;
// audit and notification failures are absorbed internally.
//
// Example error handling:
//
//	occ, err := service.CreateOccurrence(ctx, actor, input)
//	if err != nil {
//	    if riverkit.IsAccessDenied(err) {
//	        // Surface a 403 to the user
//	    }
//	    if dbkit.IsNotFound(err) {
//	        // Handle missing target
//	    }
//	}
type Service struct {
	db dbkit.IDB

	// root is the handle captured at construction. Audit writes always go
	// through it so they commit outside any caller transaction.
	root dbkit.IDB

	hiddenActorID string
	baseURL       string
	selfNotify    bool
	txMonitor     *transactionMonitor
}

// Option configures the Service.
type Option func(*Service)

// WithHiddenActorID designates the one actor that is excluded from every
// listing and notification audience shown to anyone but itself.
func WithHiddenActorID(id string) Option {
	return func(s *Service) {
		s.hiddenActorID = id
	}
}

// WithBaseURL sets the base URL used when deriving notification and
// password-reset links. Defaults to empty, producing relative paths.
func WithBaseURL(url string) Option {
	return func(s *Service) {
		s.baseURL = url
	}
}

// WithSelfNotify controls whether an acting supervisor or president also
// receives the notification about its own action. The exact suppression rule
// is a policy decision; it defaults to off.
func WithSelfNotify(enabled bool) Option {
	return func(s *Service) {
		s.selfNotify = enabled
	}
}

// NewService creates a new riverkit service.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := riverkit.NewService(db,
//	    riverkit.WithHiddenActorID(hiddenID),
//	    riverkit.WithBaseURL("https://riversafety.example.org"),
//	)
func NewService(db dbkit.IDB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		root:      db,
		txMonitor: newTransactionMonitor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTx returns a copy of the service whose primary operations run on the
// given transaction. The audit path keeps the root handle, so entries
// recorded inside the transaction survive a caller rollback and an audit
// failure cannot poison the transaction.
func (s *Service) WithTx(tx dbkit.IDB) *Service {
	clone := *s
	clone.db = tx
	return &clone
}

// HiddenActorID returns the configured hidden actor ID, or empty when none
// is designated.
func (s *Service) HiddenActorID() string {
	return s.hiddenActorID
}

// BaseURL returns the configured base URL for link derivation.
func (s *Service) BaseURL() string {
	return s.baseURL
}
