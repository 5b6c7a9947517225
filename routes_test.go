package crudkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopLoader(any) ComponentLoader {
	return func(context.Context) (any, error) { return nil, nil }
}

func testComponents() map[string]ComponentLoader {
	return map[string]ComponentLoader{
		"ProductList":      noopLoader(nil),
		"ProductEdit":      noopLoader(nil),
		"DistrictList":     noopLoader(nil),
		"DistrictEdit":     noopLoader(nil),
		"DistrictView":     noopLoader(nil),
		"ManufacturerList": noopLoader(nil),
	}
}

func modes(entries []RouteEntry) []RouteMode {
	out := make([]RouteMode, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Mode)
	}
	return out
}

// TestBuildRoutesFullEntity tests emission order for a fully configured entity
func TestBuildRoutesFullEntity(t *testing.T) {
	entries := BuildRoutes([]EntityRouteConfig{
		{Entity: "District", RequiredRoles: []string{"District Admin"}},
	}, testComponents(), "/app")

	require.Len(t, entries, 4)
	assert.Equal(t, []RouteMode{ModeList, ModeCreate, ModeEdit, ModeView}, modes(entries))
	assert.Equal(t, "/app/District/List", entries[0].Path)
	assert.Equal(t, "/app/District/Edit", entries[1].Path)
	assert.Equal(t, "/app/District/Edit/:id", entries[2].Path)
	assert.Equal(t, "/app/District/View/:id", entries[3].Path)
	assert.False(t, entries[3].ViewFallback)

	for _, entry := range entries {
		assert.Equal(t, "District", entry.Entity)
		assert.Equal(t, []string{"District Admin"}, entry.RequiredRoles)
		assert.NotNil(t, entry.Component)
	}
}

// TestBuildRoutesReadOnly tests that read-only suppresses create and edit
func TestBuildRoutesReadOnly(t *testing.T) {
	components := map[string]ComponentLoader{
		"ProductList": noopLoader(nil),
		"ProductEdit": noopLoader(nil),
	}
	entries := BuildRoutes([]EntityRouteConfig{
		{Entity: "Product", ReadOnly: true},
	}, components, "/app")

	// The registered edit loader counts for nothing here: create and edit
	// are suppressed and the view fallback rides on the edit entry.
	require.Len(t, entries, 1)
	assert.Equal(t, []RouteMode{ModeList}, modes(entries))
}

// TestBuildRoutesNoCreate tests that no-create suppresses only the create entry
func TestBuildRoutesNoCreate(t *testing.T) {
	entries := BuildRoutes([]EntityRouteConfig{
		{Entity: "Product", NoCreate: true},
	}, testComponents(), "/app")

	assert.Equal(t, []RouteMode{ModeList, ModeEdit, ModeView}, modes(entries))
}

// TestBuildRoutesListOnlyEntity tests partial configurations without error
func TestBuildRoutesListOnlyEntity(t *testing.T) {
	for _, cfg := range []EntityRouteConfig{
		{Entity: "Manufacturer"},
		{Entity: "Manufacturer", ReadOnly: true},
		{Entity: "Manufacturer", NoCreate: true},
	} {
		entries := BuildRoutes([]EntityRouteConfig{cfg}, testComponents(), "/app")
		require.Len(t, entries, 1, "config %+v", cfg)
		assert.Equal(t, ModeList, entries[0].Mode)
	}
}

// TestBuildRoutesViewFallback tests view reusing the edit component
func TestBuildRoutesViewFallback(t *testing.T) {
	entries := BuildRoutes([]EntityRouteConfig{
		{Entity: "Product"},
	}, testComponents(), "/app")

	require.Len(t, entries, 4)
	view := entries[3]
	assert.Equal(t, ModeView, view.Mode)
	assert.True(t, view.ViewFallback)
	assert.NotNil(t, view.Component)
}

// TestBuildRoutesUnknownEntity tests that entities without loaders emit nothing
func TestBuildRoutesUnknownEntity(t *testing.T) {
	entries := BuildRoutes([]EntityRouteConfig{
		{Entity: "Ghost"},
	}, testComponents(), "/app")

	assert.Empty(t, entries)
}

// TestBuildRoutesInputOrder tests that entities keep their input order
func TestBuildRoutesInputOrder(t *testing.T) {
	entries := BuildRoutes([]EntityRouteConfig{
		{Entity: "Manufacturer"},
		{Entity: "Product"},
	}, testComponents(), "/app")

	require.NotEmpty(t, entries)
	assert.Equal(t, "Manufacturer", entries[0].Entity)
	assert.Equal(t, "Product", entries[1].Entity)
}

// TestFindRouteByPathRoundTrip tests matching a built table against a concrete path
func TestFindRouteByPathRoundTrip(t *testing.T) {
	entries := BuildRoutes([]EntityRouteConfig{
		{Entity: "Product"},
	}, testComponents(), "/app")

	entry := FindRouteByPath(entries, "/app/Product/Edit/42")
	require.NotNil(t, entry)
	assert.Equal(t, ModeEdit, entry.Mode)
	assert.Equal(t, "/app/Product/Edit/:id", entry.Path)

	entry = FindRouteByPath(entries, "/app/Product/List")
	require.NotNil(t, entry)
	assert.Equal(t, ModeList, entry.Mode)
}

// TestFindRouteByPathParamBoundaries tests that a param matches exactly one segment
func TestFindRouteByPathParamBoundaries(t *testing.T) {
	entries := []RouteEntry{
		{Path: "/app/Product/Edit/:id", Mode: ModeEdit},
	}

	assert.NotNil(t, FindRouteByPath(entries, "/app/Product/Edit/42"))
	assert.Nil(t, FindRouteByPath(entries, "/app/Product/Edit"))
	assert.Nil(t, FindRouteByPath(entries, "/app/Product/Edit/42/extra"))
	assert.Nil(t, FindRouteByPath(entries, "/app/Other/Edit/42"))
}

// TestFindRouteByPathFirstMatchWins tests the documented tie-break on overlap
func TestFindRouteByPathFirstMatchWins(t *testing.T) {
	entries := []RouteEntry{
		{Path: "/app/:entity/List", Mode: ModeList, Entity: "generic"},
		{Path: "/app/Product/List", Mode: ModeList, Entity: "Product"},
	}

	entry := FindRouteByPath(entries, "/app/Product/List")
	require.NotNil(t, entry)
	assert.Equal(t, "generic", entry.Entity)
}

// TestFindRouteByPathChildren tests the depth-first search over nested entries
func TestFindRouteByPathChildren(t *testing.T) {
	entries := []RouteEntry{
		{
			Path: "/app",
			Children: []RouteEntry{
				{Path: "/app/settings/:section", Mode: ModeView},
			},
		},
	}

	entry := FindRouteByPath(entries, "/app/settings/roles")
	require.NotNil(t, entry)
	assert.Equal(t, ModeView, entry.Mode)

	assert.Nil(t, FindRouteByPath(entries, "/app/missing/roles/x"))
}

// TestRoutesToNodes tests the route table to tree node conversion
func TestRoutesToNodes(t *testing.T) {
	entries := BuildRoutes([]EntityRouteConfig{
		{Entity: "District", RequiredRoles: []string{"District Admin"}},
	}, testComponents(), "/app")

	nodes := RoutesToNodes(entries)
	require.Len(t, nodes, len(entries))
	assert.Equal(t, entries[0].Path, nodes[0].Path)
	assert.Equal(t, entries[0].RequiredRoles, nodes[0].RequiredRoles)

	// And the shared access filter applies.
	table := testRoleTable()
	assert.Empty(t, FilterTree(table, nodes, "Coop User"))
	assert.Len(t, FilterTree(table, nodes, "District Admin"), len(entries))
}
