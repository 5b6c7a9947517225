package crudkit

import (
	"context"
	"sync"
)

// SchemaRegistry serves schema descriptors by interface name. It is the only
// asynchronous collaborator of the engine.
//
// A missing schema is reported as (nil, nil): absence is a recoverable,
// caller-visible condition, not a failure of the registry. Errors are
// reserved for transport or storage faults.
type SchemaRegistry interface {
	SchemaByInterface(ctx context.Context, name string) (*SchemaDescriptor, error)
}

// StaticRegistry is an in-memory SchemaRegistry loaded once at process start,
// typically from generated metadata baked into the binary. Lookups never
// fail; unknown names return (nil, nil).
type StaticRegistry struct {
	mu      sync.RWMutex
	schemas map[string]*SchemaDescriptor
}

// NewStaticRegistry creates a registry from zero or more descriptors.
func NewStaticRegistry(schemas ...*SchemaDescriptor) *StaticRegistry {
	r := &StaticRegistry{schemas: make(map[string]*SchemaDescriptor)}
	for _, s := range schemas {
		r.schemas[s.Name] = s
	}
	return r
}

// Register adds or replaces a descriptor.
func (r *StaticRegistry) Register(schema *SchemaDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[schema.Name] = schema
}

// SchemaByInterface implements SchemaRegistry.
func (r *StaticRegistry) SchemaByInterface(_ context.Context, name string) (*SchemaDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schemas[name], nil
}

// Names returns the registered schema names, unordered.
func (r *StaticRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	return names
}
