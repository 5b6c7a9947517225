package crudkit

// RoleTable maps role names to integer hierarchy levels and answers
// access-control queries. It is built once at startup through NewRoleTable
// and is immutable afterwards, so it is safe for concurrent use.
//
// Levels form a total preorder: a higher level implies a superset of access.
// Levels are not required to be contiguous. One role may be designated the
// super role; it passes every check regardless of level arithmetic.
//
// Unknown roles resolve to level 0 and unknown ids resolve to nothing, so
// evaluation fails closed by construction.
type RoleTable struct {
	levels map[string]int
	ids    map[int]string
	order  []string
	super  string
}

// RoleTableBuilder builds a RoleTable with a fluent API.
//
// Example:
//
//	table := crudkit.NewRoleTable().
//	    Role("Super Admin").Level(100).ID(1).Super().
//	    Role("District Admin").Level(80).ID(2).
//	    Role("District User").Level(60).ID(3).
//	    Build()
type RoleTableBuilder struct {
	table *RoleTable
}

// RoleBuilder configures a single role within a RoleTableBuilder.
type RoleBuilder struct {
	builder *RoleTableBuilder
	name    string
}

// NewRoleTable starts building a role table.
func NewRoleTable() *RoleTableBuilder {
	return &RoleTableBuilder{
		table: &RoleTable{
			levels: make(map[string]int),
			ids:    make(map[int]string),
		},
	}
}

// Role starts defining a role. Redefining a role overwrites its level, id and
// super designation.
func (b *RoleTableBuilder) Role(name string) *RoleBuilder {
	if _, exists := b.table.levels[name]; !exists {
		b.table.levels[name] = 0
		b.table.order = append(b.table.order, name)
	}
	return &RoleBuilder{builder: b, name: name}
}

// Build finalizes the table.
func (b *RoleTableBuilder) Build() *RoleTable {
	return b.table
}

// Level sets the hierarchy level for this role.
func (rb *RoleBuilder) Level(level int) *RoleBuilder {
	rb.builder.table.levels[rb.name] = level
	return rb
}

// ID assigns a numeric identifier to this role, used to resolve numeric
// actor ids in FilterTreeByID.
func (rb *RoleBuilder) ID(id int) *RoleBuilder {
	rb.builder.table.ids[id] = rb.name
	return rb
}

// Super designates this role as the universal-access role. Only one role can
// be super; a later call replaces the earlier designation.
func (rb *RoleBuilder) Super() *RoleBuilder {
	rb.builder.table.super = rb.name
	return rb
}

// Role continues defining roles on the table (fluent API).
func (rb *RoleBuilder) Role(name string) *RoleBuilder {
	return rb.builder.Role(name)
}

// Build finalizes the table (fluent API).
func (rb *RoleBuilder) Build() *RoleTable {
	return rb.builder.Build()
}

// LevelOf returns the hierarchy level for a role. Unknown roles are level 0.
func (t *RoleTable) LevelOf(role string) int {
	return t.levels[role]
}

// Known reports whether a role name is defined in the table.
func (t *RoleTable) Known(role string) bool {
	_, ok := t.levels[role]
	return ok
}

// SuperRole returns the designated universal-access role, or "" if none.
func (t *RoleTable) SuperRole() string {
	return t.super
}

// IsSuper reports whether a role is the designated super role.
func (t *RoleTable) IsSuper(role string) bool {
	return t.super != "" && role == t.super
}

// RoleForID resolves a numeric role id to its role name.
func (t *RoleTable) RoleForID(id int) (string, bool) {
	name, ok := t.ids[id]
	return name, ok
}

// Roles returns all role names in definition order.
func (t *RoleTable) Roles() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// HasPermission reports whether actorRole satisfies requiredRole: true when
// actorRole is the super role, otherwise true iff actorRole's level is at
// least requiredRole's level.
//
// Example:
//
//	table.HasPermission("District Admin", "District User") // true
//	table.HasPermission("District User", "District Admin") // false
func (t *RoleTable) HasPermission(actorRole, requiredRole string) bool {
	if t.IsSuper(actorRole) {
		return true
	}
	return t.LevelOf(actorRole) >= t.LevelOf(requiredRole)
}

// HasAnyPermission reports whether actorRole satisfies any of requiredRoles.
// An empty or nil requiredRoles set means open access and is always true.
func (t *RoleTable) HasAnyPermission(actorRole string, requiredRoles []string) bool {
	if len(requiredRoles) == 0 {
		return true
	}
	if t.IsSuper(actorRole) {
		return true
	}
	for _, required := range requiredRoles {
		if t.HasPermission(actorRole, required) {
			return true
		}
	}
	return false
}

// AccessibleRoles returns all roles whose level is at or below actorRole's
// level, in definition order. The super role sees every role. Useful for
// populating role-picker dropdowns.
func (t *RoleTable) AccessibleRoles(actorRole string) []string {
	var out []string
	actorLevel := t.LevelOf(actorRole)
	super := t.IsSuper(actorRole)
	for _, name := range t.order {
		if super || t.levels[name] <= actorLevel {
			out = append(out, name)
		}
	}
	return out
}
