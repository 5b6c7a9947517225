package crudkit

// SchemaDescriptor is the structural schema description served by a
// SchemaRegistry: the entity's properties in declaration order plus the
// entity-level vendor extensions. It is the wire shape of one component
// schema of an annotated OpenAPI document, reduced to what the engine needs.
type SchemaDescriptor struct {
	Name       string               `json:"name"`
	Extensions map[string]any       `json:"extensions,omitempty"`
	Properties []PropertyDescriptor `json:"properties"`
}

// PropertyDescriptor is one schema property: name, JSON type/format and the
// property-level vendor extensions.
type PropertyDescriptor struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`             // "string", "integer", "number", "boolean", "array", "object"
	Format     string         `json:"format,omitempty"` // "date", "date-time", "email", ...
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Vendor extension tags understood by the Extractor. An explicit tag on a
// property always overrides the generator default; absence falls back to the
// documented default.
const (
	// Entity-level tags.
	ExtEntityLabel      = "x-label"
	ExtBulkActions      = "x-bulk-actions"
	ExtComboboxVariants = "x-combobox-variants"
	ExtReadOnly         = "x-read-only"
	ExtNoCreate         = "x-no-create"
	ExtNoSelect         = "x-no-select"
	ExtPermissions      = "x-permissions"

	// Field-level tags.
	ExtLabel              = "x-label"
	ExtPrimaryKey         = "x-primary-key"
	ExtDisplayValue       = "x-display-value"
	ExtNavigation         = "x-navigation"          // target entity of a foreign key
	ExtNavigationVariant  = "x-navigation-variant"  // named pre-filtered subset of the target
	ExtNavigationRelation = "x-navigation-relation" // FK field this field is the display name for
	ExtHidden             = "x-hidden"
	ExtHiddenInGrid       = "x-hidden-grid"
	ExtHiddenInForm       = "x-hidden-form"
	ExtNoFilter           = "x-no-filter"
	ExtNoSort             = "x-no-sort"
	ExtSearchable         = "x-searchable" // explicit tri-state override
	ExtFieldSet           = "x-field-set"
	ExtRenderer           = "x-renderer"
	ExtTrueLabel          = "x-true-label"
	ExtFalseLabel         = "x-false-label"
	ExtTrueSeverity       = "x-true-severity"
	ExtFalseSeverity      = "x-false-severity"
	ExtTruncateAt         = "x-truncate-at"
	ExtDateFormat         = "x-date-format"
	ExtWidth              = "x-width"
)

// Searchable is the tri-state search inclusion of a field.
type Searchable int

const (
	// SearchDefault means the field follows the generator default
	// (included in search unless its type rules it out).
	SearchDefault Searchable = iota
	// SearchInclude forces the field into the search set.
	SearchInclude
	// SearchExclude removes the field from the search set.
	SearchExclude
)

// RendererKind tags the display strategy of a column's cell value.
type RendererKind string

const (
	RendererNone          RendererKind = ""
	RendererDate          RendererKind = "date"
	RendererBooleanTag    RendererKind = "boolean-tag"
	RendererTruncatedText RendererKind = "truncated-text"
	RendererImage         RendererKind = "image"
	RendererCount         RendererKind = "count"
	RendererStatus        RendererKind = "status"
	RendererCode          RendererKind = "code"
	RendererEmail         RendererKind = "email"
)

// RendererConfig is a renderer tag plus its renderer-specific parameters.
// Zero-valued parameters use the documented defaults.
type RendererConfig struct {
	Kind          RendererKind `json:"kind,omitempty"`
	TrueLabel     string       `json:"trueLabel,omitempty"`     // default "Yes"
	FalseLabel    string       `json:"falseLabel,omitempty"`    // default "No"
	TrueSeverity  string       `json:"trueSeverity,omitempty"`  // default "success"
	FalseSeverity string       `json:"falseSeverity,omitempty"` // default "secondary"
	TruncateAt    int          `json:"truncateAt,omitempty"`    // default 50
	DateFormat    string       `json:"dateFormat,omitempty"`    // Go layout, default "2006-01-02"
	Width         string       `json:"width,omitempty"`
}

// FieldDescriptor is the normalized metadata of one schema property.
type FieldDescriptor struct {
	Name         string         `json:"name"`
	DataType     string         `json:"dataType"`
	Format       string         `json:"format,omitempty"`
	Label        string         `json:"label,omitempty"`
	PrimaryKey   bool           `json:"primaryKey,omitempty"`
	DisplayValue bool           `json:"displayValue,omitempty"`

	// Navigation wiring. A field carrying NavigationTarget is the foreign
	// key itself; NavigationVariant optionally selects a named pre-filtered
	// subset of the target entity. A field carrying NavigationRelationField
	// is the human-readable companion of that foreign key and is not
	// independently navigable.
	NavigationTarget        string `json:"navigationTarget,omitempty"`
	NavigationVariant       string `json:"navigationVariant,omitempty"`
	NavigationRelationField string `json:"navigationRelationField,omitempty"`

	Hidden       bool           `json:"hidden,omitempty"`
	HiddenInGrid bool           `json:"hiddenInGrid,omitempty"`
	HiddenInForm bool           `json:"hiddenInForm,omitempty"`
	Filterable   bool           `json:"filterable"`
	Sortable     bool           `json:"sortable"`
	Searchable   Searchable     `json:"searchable,omitempty"`
	FieldSet     string         `json:"fieldSet"` // default "Details"
	Renderer     RendererConfig `json:"renderer,omitempty"`
}

// ComboboxVariant is a named, pre-filtered subset of an entity's rows used to
// populate a selector bound to a specific foreign key.
type ComboboxVariant struct {
	Label  string         `json:"label"`
	Filter map[string]any `json:"filter,omitempty"`
}

// EntityMetadata is the schema-level metadata of one entity.
type EntityMetadata struct {
	Name             string                     `json:"name"`
	Label            string                     `json:"label"`
	BulkActions      []string                   `json:"bulkActions,omitempty"`
	ComboboxVariants map[string]ComboboxVariant `json:"comboboxVariants,omitempty"`
	ReadOnly         bool                       `json:"readOnly,omitempty"`
	NoCreate         bool                       `json:"noCreate,omitempty"`
	NoSelect         bool                       `json:"noSelect,omitempty"`
	Permissions      *AccessConfig              `json:"permissions,omitempty"`
}

// DefaultFieldSet is the form grouping used when a field declares none.
const DefaultFieldSet = "Details"
