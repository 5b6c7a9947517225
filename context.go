package crudkit

import (
	"context"
)

// Context keys for CrudKit values.
type contextKey string

const (
	contextKeyActorRole contextKey = "crudkit:actor_role"
	contextKeyGate      contextKey = "crudkit:gate"
)

// WithActorRole adds the actor's role to the context.
func WithActorRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, contextKeyActorRole, role)
}

// GetActorRole retrieves the actor's role from context.
// Returns empty string if not set (an unauthenticated actor).
func GetActorRole(ctx context.Context) string {
	if v := ctx.Value(contextKeyActorRole); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// MustGetActorRole retrieves the actor's role from context.
// Panics if not set.
func MustGetActorRole(ctx context.Context) string {
	role := GetActorRole(ctx)
	if role == "" {
		panic("crudkit: actor role not in context")
	}
	return role
}

// WithGate adds a Gate to the context.
// This is set by middleware and can be retrieved in handlers.
func WithGate(ctx context.Context, gate *Gate) context.Context {
	return context.WithValue(ctx, contextKeyGate, gate)
}

// GetGate retrieves the Gate from context.
// Returns nil if not set.
func GetGate(ctx context.Context) *Gate {
	if v := ctx.Value(contextKeyGate); v != nil {
		if g, ok := v.(*Gate); ok {
			return g
		}
	}
	return nil
}

// FromContext retrieves the Gate from context.
// Alias for GetGate for convenience.
func FromContext(ctx context.Context) *Gate {
	return GetGate(ctx)
}
