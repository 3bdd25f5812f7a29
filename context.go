package riverkit

import (
	"context"
)

// Context keys for riverkit values.
type contextKey string

const (
	contextKeyActor     contextKey = "riverkit:actor"
	contextKeyIPAddress contextKey = "riverkit:ip_address"
	contextKeyUserAgent contextKey = "riverkit:user_agent"
	contextKeyRequestID contextKey = "riverkit:request_id"
	contextKeySession   contextKey = "riverkit:session"
)

// WithActor adds the authenticated actor to the context.
// The core trusts this value as given; authentication happens upstream.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, contextKeyActor, actor)
}

// GetActor retrieves the actor from context.
// The second return value is false if no actor is set.
func GetActor(ctx context.Context) (Actor, bool) {
	if v := ctx.Value(contextKeyActor); v != nil {
		if a, ok := v.(Actor); ok {
			return a, true
		}
	}
	return Actor{}, false
}

// MustGetActor retrieves the actor from context.
// Panics if not set.
func MustGetActor(ctx context.Context) Actor {
	actor, ok := GetActor(ctx)
	if !ok {
		panic("riverkit: actor not in context")
	}
	return actor
}

// WithIPAddress adds the client IP address to the context (for audit).
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKeyIPAddress, ip)
}

// GetIPAddress retrieves the IP address from context.
func GetIPAddress(ctx context.Context) string {
	if v := ctx.Value(contextKeyIPAddress); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithUserAgent adds the user agent to the context (for audit).
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, contextKeyUserAgent, ua)
}

// GetUserAgent retrieves the user agent from context.
func GetUserAgent(ctx context.Context) string {
	if v := ctx.Value(contextKeyUserAgent); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context (for audit and correlation).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(contextKeyRequestID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Session describes the session-lifecycle facts the web layer resolved for
// this request. Reauthenticated is the "credentials re-entered this session"
// policy flag; the core only carries it, the web layer owns it.
type Session struct {
	Actor           Actor
	Reauthenticated bool
}

// WithSession adds the resolved session to the context. The actor is also
// stored separately so GetActor keeps working.
func WithSession(ctx context.Context, session Session) context.Context {
	ctx = WithActor(ctx, session.Actor)
	return context.WithValue(ctx, contextKeySession, session)
}

// GetSession retrieves the session from context.
func GetSession(ctx context.Context) (Session, bool) {
	if v := ctx.Value(contextKeySession); v != nil {
		if s, ok := v.(Session); ok {
			return s, true
		}
	}
	return Session{}, false
}

// AuditContext holds all audit-related request metadata from context.
type AuditContext struct {
	IPAddress string
	UserAgent string
	RequestID string
}

// GetAuditContext extracts all audit metadata from context.
func GetAuditContext(ctx context.Context) AuditContext {
	return AuditContext{
		IPAddress: GetIPAddress(ctx),
		UserAgent: GetUserAgent(ctx),
		RequestID: GetRequestID(ctx),
	}
}

// WithAuditContext adds all audit metadata to context at once.
func WithAuditContext(ctx context.Context, ac AuditContext) context.Context {
	if ac.IPAddress != "" {
		ctx = WithIPAddress(ctx, ac.IPAddress)
	}
	if ac.UserAgent != "" {
		ctx = WithUserAgent(ctx, ac.UserAgent)
	}
	if ac.RequestID != "" {
		ctx = WithRequestID(ctx, ac.RequestID)
	}
	return ctx
}
