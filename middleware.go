package crudkit

import (
	"errors"
	"net/http"
)

// Middleware provides HTTP middleware that guards routes with the engine's
// access rules, so the server enforces the same decisions the generated
// frontend renders.
type Middleware struct {
	gate         *Gate
	getActorRole func(*http.Request) string
	errorHandler func(http.ResponseWriter, *http.Request, error)
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance.
//
// Example:
//
//	mw := crudkit.NewMiddleware(gate,
//	    crudkit.WithActorRoleExtractor(func(r *http.Request) string {
//	        return r.Header.Get("X-Role")
//	    }),
//	)
func NewMiddleware(gate *Gate, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		gate:         gate,
		getActorRole: defaultGetActorRole,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithActorRoleExtractor sets a custom function to extract the actor's role
// from a request. The default reads it from the request context.
func WithActorRoleExtractor(fn func(*http.Request) string) MiddlewareOption {
	return func(m *Middleware) {
		m.getActorRole = fn
	}
}

// WithMiddlewareErrorHandler sets a custom error handler for middleware.
func WithMiddlewareErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

func defaultGetActorRole(r *http.Request) string {
	return GetActorRole(r.Context())
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if IsUnauthorized(err) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if IsUnknownRole(err) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if errors.Is(err, ErrRouteNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// RequireRole creates middleware that requires the actor to satisfy at
// least one of the given roles through the hierarchy.
//
// Example:
//
//	router.Handle("/districts", mw.RequireRole("District Admin")(handler))
func (m *Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return m.RequireAccess(&AccessConfig{Roles: roles})
}

// RequireAccess creates middleware that evaluates a full AccessConfig, the
// same structure routes and menu entries carry.
//
// Example:
//
//	router.Handle("/products", mw.RequireAccess(meta.Permissions)(handler))
func (m *Middleware) RequireAccess(config *AccessConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorRole := m.getActorRole(r)

			if !m.gate.CanAccess(actorRole, config) {
				err := NewError(ErrUnauthorized, "access denied").WithRole(actorRole).WithPath(r.URL.Path)
				m.errorHandler(w, r, err)
				return
			}

			ctx := WithGate(WithActorRole(r.Context(), actorRole), m.gate)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoute creates middleware that resolves the request path against a
// route table and enforces the matched entry's required roles. Unmatched
// paths are rejected.
func (m *Middleware) RequireRoute(entries []RouteEntry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			entry := FindRouteByPath(entries, r.URL.Path)
			if entry == nil {
				m.errorHandler(w, r, NewError(ErrRouteNotFound, "no route matches path").WithPath(r.URL.Path))
				return
			}

			// Entries without required roles stay open, mirroring FilterTree.
			var config *AccessConfig
			if len(entry.RequiredRoles) > 0 {
				config = &AccessConfig{Roles: entry.RequiredRoles}
			}

			actorRole := m.getActorRole(r)
			if !m.gate.CanAccess(actorRole, config) {
				err := NewError(ErrUnauthorized, "missing required role").
					WithRole(actorRole).
					WithPath(r.URL.Path).
					WithEntity(entry.Entity)
				m.errorHandler(w, r, err)
				return
			}

			ctx := WithGate(WithActorRole(r.Context(), actorRole), m.gate)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
