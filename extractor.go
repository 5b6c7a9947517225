package crudkit

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Extractor normalizes schema descriptors into field descriptors and entity
// metadata. It is stateless apart from its collaborators and safe for
// concurrent use; the registry lookup is its only suspension point.
type Extractor struct {
	registry SchemaRegistry
	log      logrus.FieldLogger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractorLogger sets the diagnostic logger. Defaults to the logrus
// standard logger.
func WithExtractorLogger(log logrus.FieldLogger) ExtractorOption {
	return func(e *Extractor) {
		e.log = log
	}
}

// NewExtractor creates an Extractor over a schema registry.
func NewExtractor(registry SchemaRegistry, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		registry: registry,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFields resolves a schema by interface name and normalizes its
// properties into field descriptors, in property order.
//
// Precedence for every optional attribute: an explicit x-* tag always
// overrides the generator default; absence uses the default (sortable and
// filterable true, searchable follows the default policy, field set
// "Details").
//
// A missing schema is recoverable: ExtractFields logs a diagnostic and
// returns (nil, ErrSchemaNotFound). It never panics.
func (e *Extractor) ExtractFields(ctx context.Context, name string) ([]FieldDescriptor, error) {
	schema, err := e.resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	fields := make([]FieldDescriptor, 0, len(schema.Properties))
	for _, prop := range schema.Properties {
		fields = append(fields, extractField(prop))
	}
	return fields, nil
}

// ExtractEntityMetadata resolves a schema by interface name and returns its
// entity-level metadata. Same failure behavior as ExtractFields.
func (e *Extractor) ExtractEntityMetadata(ctx context.Context, name string) (*EntityMetadata, error) {
	schema, err := e.resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	ext := schema.Extensions
	meta := &EntityMetadata{
		Name:        schema.Name,
		Label:       extString(ext, ExtEntityLabel, humanize(schema.Name)),
		BulkActions: extStrings(ext, ExtBulkActions),
		ReadOnly:    extBool(ext, ExtReadOnly),
		NoCreate:    extBool(ext, ExtNoCreate),
		NoSelect:    extBool(ext, ExtNoSelect),
	}
	if variants := extVariants(ext, ExtComboboxVariants); len(variants) > 0 {
		meta.ComboboxVariants = variants
	}
	if access := extAccess(ext, ExtPermissions); access != nil {
		meta.Permissions = access
	}
	return meta, nil
}

func (e *Extractor) resolve(ctx context.Context, name string) (*SchemaDescriptor, error) {
	schema, err := e.registry.SchemaByInterface(ctx, name)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"schema": name,
			"error":  err,
		}).Warn("schema registry lookup failed")
		return nil, NewError(ErrSchemaNotFound, "registry lookup failed").WithEntity(name)
	}
	if schema == nil {
		e.log.WithField("schema", name).Warn("schema not found in registry")
		return nil, NewError(ErrSchemaNotFound, "no schema registered for interface").WithEntity(name)
	}
	return schema, nil
}

func extractField(prop PropertyDescriptor) FieldDescriptor {
	ext := prop.Extensions
	fd := FieldDescriptor{
		Name:                    prop.Name,
		DataType:                prop.Type,
		Format:                  prop.Format,
		Label:                   extString(ext, ExtLabel, ""),
		PrimaryKey:              extBool(ext, ExtPrimaryKey),
		DisplayValue:            extBool(ext, ExtDisplayValue),
		NavigationTarget:        extString(ext, ExtNavigation, ""),
		NavigationVariant:       extString(ext, ExtNavigationVariant, ""),
		NavigationRelationField: extString(ext, ExtNavigationRelation, ""),
		Hidden:                  extBool(ext, ExtHidden),
		HiddenInGrid:            extBool(ext, ExtHiddenInGrid),
		HiddenInForm:            extBool(ext, ExtHiddenInForm),
		Filterable:              !extBool(ext, ExtNoFilter),
		Sortable:                !extBool(ext, ExtNoSort),
		FieldSet:                extString(ext, ExtFieldSet, DefaultFieldSet),
		Renderer:                extractRenderer(prop),
	}

	// A display-name companion of a foreign key is not independently
	// navigable; the FK field owns the navigation.
	if fd.NavigationRelationField != "" {
		fd.NavigationTarget = ""
		fd.NavigationVariant = ""
	}

	if raw, ok := ext[ExtSearchable]; ok {
		if b, ok := asBool(raw); ok {
			if b {
				fd.Searchable = SearchInclude
			} else {
				fd.Searchable = SearchExclude
			}
		}
	}

	return fd
}

func extractRenderer(prop PropertyDescriptor) RendererConfig {
	ext := prop.Extensions
	rc := RendererConfig{
		Kind:          RendererKind(extString(ext, ExtRenderer, "")),
		TrueLabel:     extString(ext, ExtTrueLabel, ""),
		FalseLabel:    extString(ext, ExtFalseLabel, ""),
		TrueSeverity:  extString(ext, ExtTrueSeverity, ""),
		FalseSeverity: extString(ext, ExtFalseSeverity, ""),
		TruncateAt:    extInt(ext, ExtTruncateAt),
		DateFormat:    extString(ext, ExtDateFormat, ""),
		Width:         extString(ext, ExtWidth, ""),
	}
	if rc.Kind == RendererNone {
		// Untagged date/datetime formats still render as dates.
		if prop.Format == "date" || prop.Format == "date-time" {
			rc.Kind = RendererDate
		}
	}
	return rc
}

// Extension maps come from decoded JSON, so values arrive as bool, string,
// float64, []any and map[string]any. The helpers below coerce defensively and
// treat anything unexpected as absent.

func extBool(ext map[string]any, key string) bool {
	if raw, ok := ext[key]; ok {
		if b, ok := asBool(raw); ok {
			return b
		}
	}
	return false
}

func asBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		return v == "true", true
	}
	return false, false
}

func extString(ext map[string]any, key, fallback string) string {
	if raw, ok := ext[key]; ok {
		if s, ok := raw.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func extInt(ext map[string]any, key string) int {
	switch v := ext[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func extStrings(ext map[string]any, key string) []string {
	switch v := ext[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func extVariants(ext map[string]any, key string) map[string]ComboboxVariant {
	raw, ok := ext[key]
	if !ok {
		return nil
	}
	if variants, ok := raw.(map[string]ComboboxVariant); ok {
		return variants
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var variants map[string]ComboboxVariant
	if err := json.Unmarshal(data, &variants); err != nil {
		return nil
	}
	return variants
}

func extAccess(ext map[string]any, key string) *AccessConfig {
	raw, ok := ext[key]
	if !ok {
		return nil
	}
	if access, ok := raw.(*AccessConfig); ok {
		return access
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var access AccessConfig
	if err := json.Unmarshal(data, &access); err != nil {
		return nil
	}
	return &access
}
