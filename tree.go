package crudkit

// Node is a navigable tree node: a menu entry or a route definition.
//
// Extra carries forward-compatible custom fields (icons, badges, analytics
// tags). It is a single explicit extension map rather than an open property
// bag, so the structured fields stay type safe.
type Node struct {
	Path          string         `json:"path,omitempty"`
	Label         string         `json:"label,omitempty"`
	RequiredRoles []string       `json:"requiredRoles,omitempty"`
	Children      []*Node        `json:"children,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"`
}

// FilterTree walks a tree of navigable nodes and prunes everything the actor
// cannot see. Visibility of a node is HasAnyPermission(actorRole,
// node.RequiredRoles), so a node without required roles is visible to anyone.
//
// Children are filtered recursively regardless of the parent's own roles.
// After recursion a node is dropped when it has no surviving children and no
// own Path: a branch that leads nowhere is noise. Sibling order is preserved
// and the input tree is never mutated; the result is a new tree whose nodes
// share RequiredRoles/Extra slices with the input.
//
// FilterTree is idempotent: filtering an already-filtered tree with the same
// actor yields an identical tree.
func FilterTree(table *RoleTable, nodes []*Node, actorRole string) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	var out []*Node
	for _, node := range nodes {
		if !table.HasAnyPermission(actorRole, node.RequiredRoles) {
			continue
		}
		filtered := *node
		filtered.Children = FilterTree(table, node.Children, actorRole)
		if len(filtered.Children) == 0 && filtered.Path == "" {
			continue
		}
		out = append(out, &filtered)
	}
	return out
}

// FilterTreeByID is FilterTree for callers that identify the actor by the
// role table's numeric id instead of the role name. An id the table does not
// know resolves to nothing and the result is empty (fail closed).
func FilterTreeByID(table *RoleTable, nodes []*Node, actorID int) []*Node {
	role, ok := table.RoleForID(actorID)
	if !ok {
		return nil
	}
	return FilterTree(table, nodes, role)
}
