package riverkit

import (
	"net/http"
	"slices"

	"github.com/google/uuid"
)

// Middleware provides HTTP glue for the excluded web layer: it resolves the
// authenticated actor into the request context, stamps request metadata for
// the audit trail, and gates handlers by role.
type Middleware struct {
	service      *Service
	resolveActor func(*http.Request) (Actor, error)
	errorHandler func(http.ResponseWriter, *http.Request, error)
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance.
//
// Example:
//
//	mw := riverkit.NewMiddleware(service,
//	    riverkit.WithActorResolver(func(r *http.Request) (riverkit.Actor, error) {
//	        return sessionStore.ActorFor(r)
//	    }),
//	)
func NewMiddleware(service *Service, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		service:      service,
		resolveActor: defaultResolveActor,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithActorResolver sets a custom function to resolve the authenticated
// actor from a request. The default reads the actor already placed in the
// request context.
func WithActorResolver(fn func(*http.Request) (Actor, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.resolveActor = fn
	}
}

// WithErrorHandler sets a custom error handler for middleware.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

func defaultResolveActor(r *http.Request) (Actor, error) {
	if actor, ok := GetActor(r.Context()); ok {
		return actor, nil
	}
	return Actor{}, ErrNoActor
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if IsAccessDenied(err) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err == ErrNoActor {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// ResolveActor resolves the actor and stamps audit metadata (client address,
// user agent, request ID) into the request context. A request ID is assigned
// when the client did not send one.
func (m *Middleware) ResolveActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := m.resolveActor(r)
		if err != nil {
			m.errorHandler(w, r, err)
			return
		}

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := WithActor(r.Context(), actor)
		ctx = WithAuditContext(ctx, AuditContext{
			IPAddress: r.RemoteAddr,
			UserAgent: r.UserAgent(),
			RequestID: requestID,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole creates middleware that requires one of the given roles.
// Suspended actors are rejected regardless of role.
//
// Example:
//
//	router.Handle("/actors/{id}/suspend",
//	    mw.RequireRole(riverkit.RolePresident)(suspendHandler))
func (m *Middleware) RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				m.errorHandler(w, r, ErrNoActor)
				return
			}

			if !actor.Active || !slices.Contains(roles, actor.Role) {
				m.errorHandler(w, r, NewError(ErrAccessDenied, "missing required role").
					WithActor(actor.ID).
					WithRole(actor.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSupervisory gates a handler to supervisors and the president.
func (m *Middleware) RequireSupervisory() func(http.Handler) http.Handler {
	return m.RequireRole(RoleSupervisor, RolePresident)
}
