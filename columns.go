package crudkit

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ColumnDefinition is the projection of a FieldDescriptor into a renderable
// grid column. Definitions are computed fresh on every build, never mutated
// afterwards, and safe to memoize by (entity, options).
type ColumnDefinition struct {
	Field      string     `json:"field"`
	Header     string     `json:"header"`
	Sortable   bool       `json:"sortable"`
	Filterable bool       `json:"filterable"`
	Width      string     `json:"width,omitempty"`
	Order      int        `json:"order"`
	Render     RenderFunc `json:"-"`
}

// FilterDefinition describes one grid filter derived from a filterable field.
type FilterDefinition struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Type  string `json:"type"` // "text", "numeric", "boolean", "date"
}

// ColumnOverride is a caller-supplied per-attribute override for one column,
// keyed by field name. Only set attributes win; everything else keeps the
// projected value (shallow merge, not replacement).
type ColumnOverride struct {
	Header     string
	Sortable   *bool
	Filterable *bool
	Width      string
	Order      *int
	Render     RenderFunc
}

// ActionHandler receives the row's primary-key value.
type ActionHandler func(id string)

// CellAction is one bound row action rendered by the actions column.
type CellAction struct {
	Name string // "view", "edit", "delete"
	Do   func()
}

// ActionsField is the field name of the synthesized actions column.
const ActionsField = "actions"

// FallbackRowID is substituted when a row lacks its declared primary-key
// field. This is an explicit contract: action handlers must treat it as
// "identity unknown" rather than a valid key. A diagnostic is logged when it
// is used.
const FallbackRowID = ""

// BuildOptions are the caller-supplied display options for BuildColumns.
type BuildOptions struct {
	// CustomColumns overrides projected columns by field name.
	CustomColumns map[string]ColumnOverride

	// EnableActions synthesizes and prepends a non-sortable, non-filterable
	// actions column. Only the handlers that are non-nil get a button.
	EnableActions bool
	OnView        ActionHandler
	OnEdit        ActionHandler
	OnDelete      ActionHandler

	// PrimaryKeyField names the field action handlers bind to. When empty
	// the first field tagged as primary key is used.
	PrimaryKeyField string

	// Prepend and Append are spliced in verbatim at the outer edges.
	Prepend []ColumnDefinition
	Append  []ColumnDefinition
}

// ColumnSet is the structured result of BuildColumns. Err disambiguates an
// empty result: nil means the schema projects no grid columns, non-nil means
// extraction failed and the columns are empty by policy.
type ColumnSet struct {
	Columns []ColumnDefinition
	Filters []FilterDefinition
	Err     error
}

// Builder projects field descriptors into grid column and filter definitions.
type Builder struct {
	extractor *Extractor
	log       logrus.FieldLogger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderLogger sets the diagnostic logger. Defaults to the logrus
// standard logger.
func WithBuilderLogger(log logrus.FieldLogger) BuilderOption {
	return func(b *Builder) {
		b.log = log
	}
}

// NewBuilder creates a Builder over an Extractor.
func NewBuilder(extractor *Extractor, opts ...BuilderOption) *Builder {
	b := &Builder{
		extractor: extractor,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildColumns resolves the entity's field descriptors and projects them into
// an ordered column list plus the matching filter definitions.
//
// Pipeline, each step feeding the next:
//  1. Resolve field descriptors through the Extractor.
//  2. Project every descriptor not hidden in the grid to a base column:
//     header is the label or a humanized field name, the render strategy is
//     selected by the renderer tag.
//  3. Apply CustomColumns overrides by field name (shallow merge).
//  4. When EnableActions is set, synthesize and prepend the actions column.
//  5. Splice Prepend/Append lists in verbatim at the outer edges.
//
// Failures during extraction never propagate: they are logged and returned
// as ColumnSet.Err with empty columns.
func (b *Builder) BuildColumns(ctx context.Context, entity string, opts BuildOptions) (set ColumnSet) {
	defer func() {
		if r := recover(); r != nil {
			b.log.WithFields(logrus.Fields{
				"entity": entity,
				"panic":  r,
			}).Error("column projection failed")
			set = ColumnSet{Err: NewError(ErrSchemaNotFound, fmt.Sprintf("column projection panic: %v", r)).WithEntity(entity)}
		}
	}()

	fields, err := b.extractor.ExtractFields(ctx, entity)
	if err != nil {
		b.log.WithFields(logrus.Fields{
			"entity": entity,
			"error":  err,
		}).Warn("column extraction failed")
		return ColumnSet{Err: err}
	}

	columns := make([]ColumnDefinition, 0, len(fields))
	order := 0
	for _, field := range fields {
		if field.Hidden || field.HiddenInGrid {
			continue
		}
		columns = append(columns, projectColumn(field, order))
		order++
	}

	for i := range columns {
		if override, ok := opts.CustomColumns[columns[i].Field]; ok {
			applyOverride(&columns[i], override)
		}
	}

	if opts.EnableActions {
		if actions, ok := b.actionsColumn(entity, fields, opts); ok {
			columns = append([]ColumnDefinition{actions}, columns...)
		}
	}

	if len(opts.Prepend) > 0 {
		columns = append(append([]ColumnDefinition{}, opts.Prepend...), columns...)
	}
	columns = append(columns, opts.Append...)

	return ColumnSet{
		Columns: columns,
		Filters: buildFilters(fields),
	}
}

func projectColumn(field FieldDescriptor, order int) ColumnDefinition {
	header := field.Label
	if header == "" {
		header = humanize(field.Name)
	}
	return ColumnDefinition{
		Field:      field.Name,
		Header:     header,
		Sortable:   field.Sortable,
		Filterable: field.Filterable,
		Width:      field.Renderer.Width,
		Order:      order,
		Render:     rendererFor(field),
	}
}

func applyOverride(col *ColumnDefinition, override ColumnOverride) {
	if override.Header != "" {
		col.Header = override.Header
	}
	if override.Sortable != nil {
		col.Sortable = *override.Sortable
	}
	if override.Filterable != nil {
		col.Filterable = *override.Filterable
	}
	if override.Width != "" {
		col.Width = override.Width
	}
	if override.Order != nil {
		col.Order = *override.Order
	}
	if override.Render != nil {
		col.Render = override.Render
	}
}

func (b *Builder) actionsColumn(entity string, fields []FieldDescriptor, opts BuildOptions) (ColumnDefinition, bool) {
	if opts.OnView == nil && opts.OnEdit == nil && opts.OnDelete == nil {
		return ColumnDefinition{}, false
	}

	pkField := opts.PrimaryKeyField
	if pkField == "" {
		for _, field := range fields {
			if field.PrimaryKey {
				pkField = field.Name
				break
			}
		}
	}

	log := b.log
	render := func(_ any, row Row) Cell {
		id := FallbackRowID
		if pkField != "" {
			if raw, ok := row[pkField]; ok && raw != nil {
				id = fmt.Sprint(raw)
			}
		}
		if id == FallbackRowID {
			log.WithFields(logrus.Fields{
				"entity":          entity,
				"primaryKeyField": pkField,
			}).Warn("row is missing its primary key, actions bound to fallback id")
		}

		cell := Cell{Kind: CellText}
		if opts.OnView != nil {
			handler := opts.OnView
			cell.Actions = append(cell.Actions, CellAction{Name: "view", Do: func() { handler(id) }})
		}
		if opts.OnEdit != nil {
			handler := opts.OnEdit
			cell.Actions = append(cell.Actions, CellAction{Name: "edit", Do: func() { handler(id) }})
		}
		if opts.OnDelete != nil {
			handler := opts.OnDelete
			cell.Actions = append(cell.Actions, CellAction{Name: "delete", Do: func() { handler(id) }})
		}
		return cell
	}

	return ColumnDefinition{
		Field:      ActionsField,
		Header:     "Actions",
		Sortable:   false,
		Filterable: false,
		Render:     render,
	}, true
}

func buildFilters(fields []FieldDescriptor) []FilterDefinition {
	var filters []FilterDefinition
	for _, field := range fields {
		if field.Hidden || field.HiddenInGrid || !field.Filterable {
			continue
		}
		label := field.Label
		if label == "" {
			label = humanize(field.Name)
		}
		filters = append(filters, FilterDefinition{
			Field: field.Name,
			Label: label,
			Type:  filterType(field),
		})
	}
	return filters
}

func filterType(field FieldDescriptor) string {
	if field.Format == "date" || field.Format == "date-time" || field.Renderer.Kind == RendererDate {
		return "date"
	}
	switch field.DataType {
	case "integer", "number":
		return "numeric"
	case "boolean":
		return "boolean"
	default:
		return "text"
	}
}
