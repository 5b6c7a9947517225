package crudkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCanAccessNilConfig tests that absence of configuration means open access
func TestCanAccessNilConfig(t *testing.T) {
	gate := NewGate(testRoleTable())

	assert.True(t, gate.CanAccess("Manufacturer", nil))
	assert.True(t, gate.CanAccess("", nil))
}

// TestCanAccessAnonymous tests that the anonymous flag short-circuits to allow
func TestCanAccessAnonymous(t *testing.T) {
	gate := NewGate(testRoleTable())
	config := &AccessConfig{Anonymous: true, Roles: []string{"Super Admin"}}

	assert.True(t, gate.CanAccess("", config))
	assert.True(t, gate.CanAccess("Manufacturer", config))
}

// TestCanAccessUnauthenticated tests that a missing actor role is denied
func TestCanAccessUnauthenticated(t *testing.T) {
	gate := NewGate(testRoleTable())

	assert.False(t, gate.CanAccess("", &AccessConfig{}))
	assert.False(t, gate.CanAccess("", &AccessConfig{Roles: []string{"Coop User"}}))
}

// TestCanAccessEmptyRoleSet tests that present-but-empty roles admit any authenticated actor
func TestCanAccessEmptyRoleSet(t *testing.T) {
	gate := NewGate(testRoleTable())

	assert.True(t, gate.CanAccess("Manufacturer", &AccessConfig{}))
	assert.True(t, gate.CanAccess("Manufacturer", &AccessConfig{Roles: []string{}}))
	// Even a role the table does not know counts as authenticated.
	assert.True(t, gate.CanAccess("Visitor", &AccessConfig{}))
}

// TestCanAccessDelegatesToHierarchy tests the final delegation to HasAnyPermission
func TestCanAccessDelegatesToHierarchy(t *testing.T) {
	gate := NewGate(testRoleTable())
	config := &AccessConfig{Roles: []string{"District Admin"}}

	assert.True(t, gate.CanAccess("Super Admin", config))
	assert.True(t, gate.CanAccess("District Admin", config))
	assert.False(t, gate.CanAccess("District User", config))
	assert.False(t, gate.CanAccess("Manufacturer", config))
}

// TestCanAccessRightsIgnoredWithoutEvaluator tests that rights round-trip untouched by default
func TestCanAccessRightsIgnoredWithoutEvaluator(t *testing.T) {
	gate := NewGate(testRoleTable())
	config := &AccessConfig{Roles: []string{"Coop User"}, Rights: []string{"export"}}

	// Rights present, no evaluator configured: the role decision stands.
	assert.True(t, gate.CanAccess("Coop Admin", config))
	assert.False(t, gate.CanAccess("Manufacturer", config))
}

// TestCanAccessRightsEvaluator tests the rights extension point
func TestCanAccessRightsEvaluator(t *testing.T) {
	var seenRole string
	var seenRights []string
	gate := NewGate(testRoleTable(), WithRightsEvaluator(
		RightsEvaluatorFunc(func(actorRole string, rights []string) bool {
			seenRole = actorRole
			seenRights = rights
			return actorRole == "Coop Admin"
		}),
	))
	config := &AccessConfig{Roles: []string{"Coop User"}, Rights: []string{"export", "print"}}

	// Role allows and the evaluator agrees.
	assert.True(t, gate.CanAccess("Coop Admin", config))
	assert.Equal(t, "Coop Admin", seenRole)
	assert.Equal(t, []string{"export", "print"}, seenRights)

	// Role allows but the evaluator vetoes.
	assert.False(t, gate.CanAccess("District Admin", config))

	// Role denies: the evaluator is never reached.
	seenRole = ""
	assert.False(t, gate.CanAccess("Manufacturer", config))
	assert.Equal(t, "", seenRole)
}

// TestCanAccessRightsEvaluatorSkippedWithoutRights tests that the evaluator only fires on declared rights
func TestCanAccessRightsEvaluatorSkippedWithoutRights(t *testing.T) {
	called := false
	gate := NewGate(testRoleTable(), WithRightsEvaluator(
		RightsEvaluatorFunc(func(string, []string) bool {
			called = true
			return false
		}),
	))

	assert.True(t, gate.CanAccess("Coop Admin", &AccessConfig{Roles: []string{"Coop User"}}))
	assert.False(t, called)
}

// TestGateTable tests the table accessor
func TestGateTable(t *testing.T) {
	table := testRoleTable()
	gate := NewGate(table)

	assert.Equal(t, table, gate.Table())
}
