package crudkit

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRegistry wraps a registry and counts source lookups.
type countingRegistry struct {
	source SchemaRegistry
	calls  int
}

func (r *countingRegistry) SchemaByInterface(ctx context.Context, name string) (*SchemaDescriptor, error) {
	r.calls++
	return r.source.SchemaByInterface(ctx, name)
}

// setupTestCache connects to the test redis and returns a cache over the
// given source. Tests are skipped when TEST_REDIS_URL is not set.
func setupTestCache(t *testing.T, source SchemaRegistry) (*SchemaCache, *redis.Client) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set - skipping redis test")
	}

	options, err := redis.ParseURL(redisURL)
	require.NoError(t, err, "failed to parse redis URL")

	client := redis.NewClient(options)
	require.NoError(t, client.Ping(context.Background()).Err(), "redis not reachable")

	cache := NewSchemaCache(source, client, CacheConfig{
		Namespace: fmt.Sprintf("crudkit-test-%d", time.Now().UnixNano()),
		TTL:       time.Minute,
		Logger:    quietLogger(),
	})
	return cache, client
}

// TestSchemaCacheReadThrough tests that the second lookup is served from cache
func TestSchemaCacheReadThrough(t *testing.T) {
	source := &countingRegistry{source: NewStaticRegistry(productSchema())}
	cache, client := setupTestCache(t, source)
	defer client.Close()
	ctx := context.Background()
	defer cache.Invalidate(ctx, "Product")

	first, err := cache.SchemaByInterface(ctx, "Product")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, source.calls)

	second, err := cache.SchemaByInterface(ctx, "Product")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, first.Name, second.Name)
}

// TestSchemaCacheNoNegativeCaching tests that misses always hit the source
func TestSchemaCacheNoNegativeCaching(t *testing.T) {
	reg := NewStaticRegistry()
	source := &countingRegistry{source: reg}
	cache, client := setupTestCache(t, source)
	defer client.Close()
	ctx := context.Background()
	defer cache.Invalidate(ctx, "Late")

	schema, err := cache.SchemaByInterface(ctx, "Late")
	require.NoError(t, err)
	assert.Nil(t, schema)
	assert.Equal(t, 1, source.calls)

	// A schema published after the miss is visible immediately.
	reg.Register(&SchemaDescriptor{Name: "Late"})
	schema, err = cache.SchemaByInterface(ctx, "Late")
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.Equal(t, 2, source.calls)
}

// TestSchemaCacheInvalidate tests that invalidation forces a source lookup
func TestSchemaCacheInvalidate(t *testing.T) {
	source := &countingRegistry{source: NewStaticRegistry(productSchema())}
	cache, client := setupTestCache(t, source)
	defer client.Close()
	ctx := context.Background()
	defer cache.Invalidate(ctx, "Product")

	_, err := cache.SchemaByInterface(ctx, "Product")
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, "Product"))

	_, err = cache.SchemaByInterface(ctx, "Product")
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}
