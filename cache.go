package crudkit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SchemaCache is a read-through caching decorator over any SchemaRegistry,
// backed by redis. Concurrent lookups for the same name stay independent;
// coalescing belongs here, at the registry collaborator, not in the engine.
//
// Cache faults never fail a lookup: on any redis error the cache falls
// through to the source registry and logs a diagnostic.
//
// Example:
//
//	cache := crudkit.NewSchemaCache(store, client, crudkit.CacheConfig{
//	    Namespace: "frontend",
//	    TTL:       10 * time.Minute,
//	})
//	extractor := crudkit.NewExtractor(cache)
type SchemaCache struct {
	source SchemaRegistry
	client *redis.Client
	config CacheConfig
	log    logrus.FieldLogger
}

// CacheConfig holds schema cache configuration.
type CacheConfig struct {
	// Namespace prefixes every key: {namespace}:schema:{name}.
	Namespace string

	// TTL bounds how long a cached document is served before the source is
	// consulted again. Zero means one hour.
	TTL time.Duration

	// Logger for cache diagnostics. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

const defaultCacheTTL = time.Hour

// NewSchemaCache creates a caching registry over a source registry.
func NewSchemaCache(source SchemaRegistry, client *redis.Client, config CacheConfig) *SchemaCache {
	if config.TTL <= 0 {
		config.TTL = defaultCacheTTL
	}
	if config.Namespace == "" {
		config.Namespace = "crudkit"
	}
	log := config.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SchemaCache{
		source: source,
		client: client,
		config: config,
		log:    log,
	}
}

// key constructs a namespaced key with the pattern {namespace}:schema:{name}.
func (c *SchemaCache) key(name string) string {
	return fmt.Sprintf("%s:schema:%s", c.config.Namespace, name)
}

// SchemaByInterface implements SchemaRegistry. Only hits (present schemas)
// are cached; misses always consult the source so newly published schemas
// appear without waiting out a negative entry.
func (c *SchemaCache) SchemaByInterface(ctx context.Context, name string) (*SchemaDescriptor, error) {
	key := c.key(name)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var schema SchemaDescriptor
		if err := json.Unmarshal(data, &schema); err == nil {
			return &schema, nil
		}
		// A corrupt entry is dropped and refetched.
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.log.WithFields(logrus.Fields{
			"schema": name,
			"error":  err,
		}).Warn("schema cache read failed, falling through to source")
	}

	schema, err := c.source.SchemaByInterface(ctx, name)
	if err != nil || schema == nil {
		return schema, err
	}

	if data, err := json.Marshal(schema); err == nil {
		if err := c.client.Set(ctx, key, data, c.config.TTL).Err(); err != nil {
			c.log.WithFields(logrus.Fields{
				"schema": name,
				"error":  err,
			}).Warn("schema cache write failed")
		}
	}
	return schema, nil
}

// Invalidate drops the cached document for a schema name, forcing the next
// lookup through to the source.
func (c *SchemaCache) Invalidate(ctx context.Context, name string) error {
	return c.client.Del(ctx, c.key(name)).Err()
}
