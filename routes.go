package crudkit

import (
	"context"
	"strings"
)

// RouteMode is the CRUD mode of a generated route entry.
type RouteMode string

const (
	ModeList   RouteMode = "list"
	ModeCreate RouteMode = "create"
	ModeEdit   RouteMode = "edit"
	ModeView   RouteMode = "view"
)

// ComponentLoader asynchronously loads a page implementation. The loaded
// value is opaque to the engine; the router hands it to the rendering layer.
type ComponentLoader func(ctx context.Context) (any, error)

// EntityRouteConfig is the per-entity navigation configuration.
type EntityRouteConfig struct {
	Entity string `json:"entity"`
	Label  string `json:"label,omitempty"`

	// ReadOnly suppresses the create and edit entries entirely.
	ReadOnly bool `json:"readOnly,omitempty"`

	// NoCreate suppresses only the create entry.
	NoCreate bool `json:"noCreate,omitempty"`

	// RequiredRoles are carried unchanged onto every emitted entry, to be
	// evaluated later by FilterTree.
	RequiredRoles []string `json:"requiredRoles,omitempty"`
}

// RouteEntry is one flat route definition. Entries are built once per
// navigation configuration and are immutable; when the configuration changes
// (a route-prefix change, say) the whole table is rebuilt.
type RouteEntry struct {
	Path          string          `json:"path"`
	Mode          RouteMode       `json:"mode"`
	Entity        string          `json:"entity"`
	Label         string          `json:"label,omitempty"`
	RequiredRoles []string        `json:"requiredRoles,omitempty"`
	Component     ComponentLoader `json:"-"`

	// ViewFallback marks a view entry that reuses the edit component in a
	// read-only presentation because no dedicated view component exists.
	ViewFallback bool `json:"viewFallback,omitempty"`

	// Children holds caller-registered nested routes; BuildRoutes itself
	// emits a flat table.
	Children []RouteEntry `json:"children,omitempty"`
}

// Component map key suffixes. Loaders are registered as "<Entity>List",
// "<Entity>Edit" and "<Entity>View"; create reuses the edit component.
const (
	ComponentList = "List"
	ComponentEdit = "Edit"
	ComponentView = "View"
)

// BuildRoutes derives the flat route table for a navigation configuration.
//
// For each entity config up to four entries are emitted, in this order:
// list, create, edit, view. Paths follow the fixed template
// {prefix}/{Entity}/{List | Edit | Edit/:id | View/:id}. An entry is emitted
// only when a matching loader exists in components, so partial configurations
// (list-only or read-only entities) are valid, not an error. The view entry
// falls back to the edit component in a view presentation when no dedicated
// view loader is registered. Entities keep their input order; there is no
// global resorting.
//
// Example:
//
//	routes := crudkit.BuildRoutes(configs, map[string]crudkit.ComponentLoader{
//	    "ProductList": loadProductList,
//	    "ProductEdit": loadProductEdit,
//	}, "/app")
func BuildRoutes(configs []EntityRouteConfig, components map[string]ComponentLoader, prefix string) []RouteEntry {
	prefix = strings.TrimSuffix(prefix, "/")

	var entries []RouteEntry
	for _, cfg := range configs {
		label := cfg.Label
		if label == "" {
			label = humanize(cfg.Entity)
		}
		base := prefix + "/" + cfg.Entity

		listLoader := components[cfg.Entity+ComponentList]
		editLoader := components[cfg.Entity+ComponentEdit]
		viewLoader := components[cfg.Entity+ComponentView]

		emit := func(entry RouteEntry) {
			entry.Entity = cfg.Entity
			entry.Label = label
			entry.RequiredRoles = cfg.RequiredRoles
			entries = append(entries, entry)
		}

		if listLoader != nil {
			emit(RouteEntry{Path: base + "/List", Mode: ModeList, Component: listLoader})
		}
		if editLoader != nil && !cfg.ReadOnly {
			if !cfg.NoCreate {
				emit(RouteEntry{Path: base + "/Edit", Mode: ModeCreate, Component: editLoader})
			}
			emit(RouteEntry{Path: base + "/Edit/:id", Mode: ModeEdit, Component: editLoader})
		}
		if viewLoader != nil {
			emit(RouteEntry{Path: base + "/View/:id", Mode: ModeView, Component: viewLoader})
		} else if editLoader != nil && !cfg.ReadOnly {
			// The fallback rides on the edit entry; a read-only entity gets
			// a view route only when a dedicated view component exists.
			emit(RouteEntry{Path: base + "/View/:id", Mode: ModeView, Component: editLoader, ViewFallback: true})
		}
	}
	return entries
}

// FindRouteByPath returns the first entry whose pattern matches the path.
//
// A path matches exactly, or after substituting each :param segment with a
// single path segment. The search is depth-first over entries and their
// children in emission order, and the first structural match wins. With
// overlapping patterns this is a deliberate tie-break, not a uniqueness
// guarantee. Returns nil when nothing matches.
func FindRouteByPath(entries []RouteEntry, path string) *RouteEntry {
	for i := range entries {
		if matchPath(entries[i].Path, path) {
			return &entries[i]
		}
		if found := FindRouteByPath(entries[i].Children, path); found != nil {
			return found
		}
	}
	return nil
}

func matchPath(pattern, path string) bool {
	patternSegs := splitPath(pattern)
	pathSegs := splitPath(path)
	if len(patternSegs) != len(pathSegs) {
		return false
	}
	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// RoutesToNodes converts a flat route table into tree nodes so the route
// table and the menu share one access filter.
func RoutesToNodes(entries []RouteEntry) []*Node {
	var nodes []*Node
	for _, entry := range entries {
		nodes = append(nodes, &Node{
			Path:          entry.Path,
			Label:         entry.Label,
			RequiredRoles: entry.RequiredRoles,
			Children:      RoutesToNodes(entry.Children),
		})
	}
	return nodes
}
