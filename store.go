package crudkit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/fernandezvara/dbkit"
)

// EntitySchema is the persisted form of one schema descriptor. The generator
// publishes descriptors here at deploy time; running frontend processes
// resolve them through SchemaByInterface.
type EntitySchema struct {
	bun.BaseModel `bun:"table:entity_schemas,alias:es"`

	ID        string          `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name      string          `bun:"name,notnull,unique"`
	Document  json.RawMessage `bun:"document,type:jsonb,notnull"`
	CreatedAt time.Time       `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp"`
}

// SchemaStore is a Postgres-backed SchemaRegistry through dbkit.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	store := crudkit.NewSchemaStore(db)
//	dbkit.Migrate(ctx, store.Migrations())
type SchemaStore struct {
	db  dbkit.IDB
	log logrus.FieldLogger
}

// SchemaStoreOption configures a SchemaStore.
type SchemaStoreOption func(*SchemaStore)

// WithStoreLogger sets the diagnostic logger. Defaults to the logrus
// standard logger.
func WithStoreLogger(log logrus.FieldLogger) SchemaStoreOption {
	return func(s *SchemaStore) {
		s.log = log
	}
}

// NewSchemaStore creates a schema store over a dbkit database.
func NewSchemaStore(db dbkit.IDB, opts ...SchemaStoreOption) *SchemaStore {
	s := &SchemaStore{
		db:  db,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrations returns all database migrations required for the schema store.
// Use dbkit.Migrate(ctx, store.Migrations()) to run migrations.
func (s *SchemaStore) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "crudkit-001",
			Description: "Create entity_schemas table",
			SQL: `
                CREATE TABLE IF NOT EXISTS entity_schemas (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    name TEXT NOT NULL UNIQUE,
                    document JSONB NOT NULL,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
	}
}

// Put inserts or replaces a schema descriptor by name.
func (s *SchemaStore) Put(ctx context.Context, schema *SchemaDescriptor) error {
	document, err := json.Marshal(schema)
	if err != nil {
		return NewError(ErrDatabaseError, "failed to encode schema document").WithEntity(schema.Name)
	}

	record := &EntitySchema{
		Name:     schema.Name,
		Document: document,
	}

	result, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (name) DO UPDATE").
		Set("document = EXCLUDED.document").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	err = dbkit.WithErr(result, err, "PutEntitySchema").Err()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"schema": schema.Name,
			"error":  err,
		}).Error("failed to store schema")
		return NewError(ErrDatabaseError, "failed to store schema").WithEntity(schema.Name)
	}
	return nil
}

// Delete removes a schema descriptor by name. Deleting an absent schema is
// not an error.
func (s *SchemaStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.NewDelete().
		Model((*EntitySchema)(nil)).
		Where("name = ?", name).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "DeleteEntitySchema").Err()
	if err != nil && !dbkit.IsNotFound(err) {
		return NewError(ErrDatabaseError, "failed to delete schema").WithEntity(name)
	}
	return nil
}

// List returns all stored schema names in alphabetical order.
func (s *SchemaStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := dbkit.WithErr1(s.db.NewRaw("SELECT name FROM entity_schemas ORDER BY name").Scan(ctx, &names), "ListEntitySchemas").Err()
	if err != nil {
		return nil, NewError(ErrDatabaseError, "failed to list schemas")
	}
	return names, nil
}

// SchemaByInterface implements SchemaRegistry. A name without a stored
// schema resolves to (nil, nil): absence is the caller's recoverable
// condition, not a storage fault.
func (s *SchemaStore) SchemaByInterface(ctx context.Context, name string) (*SchemaDescriptor, error) {
	var record EntitySchema
	err := dbkit.WithErr1(s.db.NewSelect().Model(&record).Where("name = ?", name).Limit(1).Scan(ctx), "GetEntitySchema").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, nil
		}
		return nil, NewError(ErrDatabaseError, "failed to load schema").WithEntity(name)
	}

	var schema SchemaDescriptor
	if err := json.Unmarshal(record.Document, &schema); err != nil {
		s.log.WithFields(logrus.Fields{
			"schema": name,
			"error":  err,
		}).Error("stored schema document is not valid JSON")
		return nil, NewError(ErrDatabaseError, "stored schema document is corrupt").WithEntity(name)
	}
	return &schema, nil
}
