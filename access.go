package crudkit

// AccessConfig is the declarative permission configuration attached to a
// route, menu entry or schema entity.
//
// A nil AccessConfig means open access. Anonymous short-circuits to open.
// A present-but-empty Roles set means "any authenticated actor".
//
// Rights is carried but not interpreted by the Gate itself: rights semantics
// belong to an external authorization collaborator. Configure a
// RightsEvaluator to plug one in; without it the field round-trips untouched.
type AccessConfig struct {
	Anonymous bool     `json:"anonymous,omitempty"`
	Roles     []string `json:"role,omitempty"`
	Rights    []string `json:"right,omitempty"`
}

// RightsEvaluator is the extension point for rights-based checks.
// It is only consulted when the role rules allow access and the config
// declares rights; its verdict is combined with AND.
type RightsEvaluator interface {
	HasAnyRight(actorRole string, rights []string) bool
}

// RightsEvaluatorFunc adapts a function to the RightsEvaluator interface.
type RightsEvaluatorFunc func(actorRole string, rights []string) bool

// HasAnyRight implements RightsEvaluator.
func (f RightsEvaluatorFunc) HasAnyRight(actorRole string, rights []string) bool {
	return f(actorRole, rights)
}

// Gate combines a role table with declarative permission configurations to
// produce allow/deny decisions. It has no state beyond its configuration and
// is safe for concurrent use.
type Gate struct {
	table  *RoleTable
	rights RightsEvaluator
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithRightsEvaluator installs an external rights evaluator.
func WithRightsEvaluator(ev RightsEvaluator) GateOption {
	return func(g *Gate) {
		g.rights = ev
	}
}

// NewGate creates a Gate over a role table.
//
// Example:
//
//	gate := crudkit.NewGate(table)
//	if gate.CanAccess(actorRole, entityMeta.Permissions) {
//	    // render the entity's menu entry
//	}
func NewGate(table *RoleTable, opts ...GateOption) *Gate {
	g := &Gate{table: table}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Table returns the role table this gate evaluates against.
func (g *Gate) Table() *RoleTable {
	return g.table
}

// CanAccess decides whether an actor may access something guarded by config.
// An empty actorRole means an unauthenticated actor.
//
// Resolution order, first matching rule wins:
//  1. config is nil: allow.
//  2. config.Anonymous: allow.
//  3. actorRole is empty: deny.
//  4. config.Roles is absent or empty: allow (any authenticated actor).
//  5. Otherwise delegate to the role table's HasAnyPermission.
//
// When a RightsEvaluator is configured and config declares rights, its
// verdict is ANDed with the role decision.
func (g *Gate) CanAccess(actorRole string, config *AccessConfig) bool {
	allowed := g.roleDecision(actorRole, config)
	if !allowed {
		return false
	}
	if config != nil && len(config.Rights) > 0 && g.rights != nil {
		return g.rights.HasAnyRight(actorRole, config.Rights)
	}
	return true
}

func (g *Gate) roleDecision(actorRole string, config *AccessConfig) bool {
	if config == nil {
		return true
	}
	if config.Anonymous {
		return true
	}
	if actorRole == "" {
		return false
	}
	if len(config.Roles) == 0 {
		return true
	}
	return g.table.HasAnyPermission(actorRole, config.Roles)
}
