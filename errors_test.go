package crudkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrorWrapping tests sentinel matching through the Error wrapper
func TestErrorWrapping(t *testing.T) {
	err := NewError(ErrSchemaNotFound, "no schema for interface").WithEntity("Product")

	assert.True(t, errors.Is(err, ErrSchemaNotFound))
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.True(t, IsSchemaNotFound(err))

	var ckErr *Error
	require.True(t, errors.As(err, &ckErr))
	assert.Equal(t, "Product", ckErr.Entity)
}

// TestErrorMessage tests the formatted message
func TestErrorMessage(t *testing.T) {
	err := NewError(ErrUnauthorized, "access denied")
	assert.Equal(t, "crudkit: unauthorized: access denied", err.Error())

	bare := NewError(ErrUnauthorized, "")
	assert.Equal(t, "crudkit: unauthorized", bare.Error())
}

// TestErrorContextSetters tests the chainable context setters
func TestErrorContextSetters(t *testing.T) {
	err := NewError(ErrUnauthorized, "missing required role").
		WithRole("Coop User").
		WithPath("/app/District/List").
		WithEntity("District").
		WithField("id")

	assert.Equal(t, "Coop User", err.Role)
	assert.Equal(t, "/app/District/List", err.Path)
	assert.Equal(t, "District", err.Entity)
	assert.Equal(t, "id", err.Field)
}

// TestErrorWrappedDeeper tests matching through additional wrapping
func TestErrorWrappedDeeper(t *testing.T) {
	inner := NewError(ErrUnknownRoleID, "id 99")
	outer := fmt.Errorf("resolving menu: %w", inner)

	assert.True(t, IsUnknownRole(outer))

	var ckErr *Error
	require.True(t, errors.As(outer, &ckErr))
	assert.Equal(t, "id 99", ckErr.Message)
}

// TestIsUnknownRole tests that both role sentinels are covered
func TestIsUnknownRole(t *testing.T) {
	assert.True(t, IsUnknownRole(ErrUnknownRole))
	assert.True(t, IsUnknownRole(ErrUnknownRoleID))
	assert.False(t, IsUnknownRole(ErrUnauthorized))
	assert.False(t, IsUnknownRole(nil))
}
