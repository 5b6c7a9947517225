// Package crudkit provides schema-metadata resolution and role-based access
// evaluation for generated CRUD frontends.
//
// CrudKit is the engine behind grid/form/route generators: it turns declarative
// per-field and per-entity metadata (OpenAPI vendor extensions) into concrete
// behavioral decisions (which columns a grid shows, which filters it offers,
// how foreign keys are wired to their display fields) and evaluates
// role-hierarchy access control for route tables and menu trees.
//
// # Core Concepts
//
// RoleTable: a static role-to-level mapping with one designated super role.
// A role with a higher level implies a superset of access; the super role
// passes every check regardless of level arithmetic.
//
// AccessConfig: declarative permissions attached to a route, menu entry or
// entity: an anonymous flag, an allowed-role set, and an allowed-rights set.
// Absence of the whole structure means open access.
//
// SchemaDescriptor: a structural schema (field name, type, x-* extension
// tags) served by a SchemaRegistry collaborator. The Extractor normalizes it
// into FieldDescriptors; the Builder projects those into grid columns and
// filter definitions.
//
// RouteEntry: a flat route definition (list/create/edit/view per entity)
// carrying the entity's required roles, to be pruned by FilterTree before it
// reaches the router.
//
// # Key Features
//
//   - Level-based role hierarchy with a universal-access super role
//   - Fail-closed evaluation: unknown roles and ids grant nothing
//   - Menu/route tree filtering that prunes empty, pathless branches
//   - Tag-precedence metadata extraction (explicit tag beats generator default)
//   - Column projection with pluggable cell renderers and caller overrides
//   - Route table construction honoring read-only and no-create entities
//   - Pluggable schema registries: in-memory, Postgres-backed, redis-cached
//
// # Basic Usage
//
//	// 1. Define the role taxonomy (at application startup)
//	table := crudkit.NewRoleTable().
//	    Role("Super Admin").Level(100).ID(1).Super().
//	    Role("District Admin").Level(80).ID(2).
//	    Role("District User").Level(60).ID(3).
//	    Role("Manufacturer").Level(20).ID(6).
//	    Build()
//
//	// 2. Evaluate access
//	gate := crudkit.NewGate(table)
//	ok := gate.CanAccess("District User", &crudkit.AccessConfig{
//	    Roles: []string{"District Admin"},
//	}) // false: District User sits below District Admin
//
//	// 3. Build and filter routes
//	routes := crudkit.BuildRoutes(configs, components, "/app")
//	visible := crudkit.FilterTree(table, menu, actorRole)
//
//	// 4. Project schema metadata into grid columns
//	extractor := crudkit.NewExtractor(registry)
//	builder := crudkit.NewBuilder(extractor)
//	set := builder.BuildColumns(ctx, "Product", crudkit.BuildOptions{
//	    EnableActions: true,
//	    OnEdit:        func(id string) { /* navigate */ },
//	})
//	if set.Err != nil {
//	    // extraction failed; set.Columns is empty by contract
//	}
//
// # Schema Registries
//
// The engine never owns schema documents. It consumes a SchemaRegistry:
//
//   - StaticRegistry: in-memory, loaded once at process start
//   - SchemaStore: Postgres-backed through dbkit/bun, with migrations
//   - SchemaCache: redis read-through decorator over any registry
//
// All evaluation components are pure functions over immutable inputs and are
// safe for concurrent use without coordination; the registry lookup is the
// only suspension point.
package crudkit
