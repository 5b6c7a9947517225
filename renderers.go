package crudkit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Row is one data row as delivered by the HTTP client collaborator.
type Row map[string]any

// CellKind tells the rendering layer which visual primitive to use.
type CellKind string

const (
	CellText  CellKind = "text"
	CellTag   CellKind = "tag"
	CellBadge CellKind = "badge"
	CellImage CellKind = "image"
	CellCode  CellKind = "code"
	CellLink  CellKind = "link"
)

// Cell is the framework-agnostic result of rendering one grid cell. The
// rendering layer maps kinds to its own components; Tooltip carries the full
// value when the visible text is bounded.
type Cell struct {
	Kind     CellKind `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Tooltip  string   `json:"tooltip,omitempty"`
	Severity string   `json:"severity,omitempty"`
	Href     string   `json:"href,omitempty"`
	Src      string   `json:"src,omitempty"`
	Count    int      `json:"count,omitempty"`

	// Actions is populated only by the synthesized actions column.
	Actions []CellAction `json:"-"`
}

// RenderFunc renders one cell from the field's value and its full row.
type RenderFunc func(value any, row Row) Cell

const (
	defaultTrueLabel      = "Yes"
	defaultFalseLabel     = "No"
	defaultTrueSeverity   = "success"
	defaultFalseSeverity  = "secondary"
	defaultTruncateAt     = 50
	defaultDateLayout     = "2006-01-02"
	defaultDateTimeLayout = "2006-01-02 15:04"
	objectPreviewLimit    = 80

	// nullValueToken is rendered for null or unparseable values.
	nullValueToken = "-"
)

// rendererFor maps a renderer tag to exactly one rendering strategy.
func rendererFor(field FieldDescriptor) RenderFunc {
	rc := field.Renderer
	switch rc.Kind {
	case RendererDate:
		return renderDate(rc, field.Format)
	case RendererBooleanTag:
		return renderBooleanTag(rc)
	case RendererTruncatedText:
		return renderTruncatedText(rc)
	case RendererImage:
		return renderImage
	case RendererCount:
		return renderCount
	case RendererStatus:
		return renderStatus
	case RendererCode:
		return renderCode
	case RendererEmail:
		return renderEmail
	default:
		return renderDefault(field)
	}
}

func renderDefault(field FieldDescriptor) RenderFunc {
	switch field.DataType {
	case "array":
		return renderCount
	case "object":
		return renderObjectPreview
	case "boolean":
		return renderBooleanTag(field.Renderer)
	default:
		return renderPlain
	}
}

func renderPlain(value any, _ Row) Cell {
	if value == nil {
		return Cell{Kind: CellText}
	}
	return Cell{Kind: CellText, Text: fmt.Sprint(value)}
}

func renderDate(rc RendererConfig, format string) RenderFunc {
	layout := rc.DateFormat
	if layout == "" {
		if format == "date-time" {
			layout = defaultDateTimeLayout
		} else {
			layout = defaultDateLayout
		}
	}
	return func(value any, _ Row) Cell {
		t, ok := asTime(value)
		if !ok {
			return Cell{Kind: CellText, Text: nullValueToken}
		}
		return Cell{Kind: CellText, Text: t.Format(layout)}
	}
}

func asTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func renderBooleanTag(rc RendererConfig) RenderFunc {
	trueLabel := rc.TrueLabel
	if trueLabel == "" {
		trueLabel = defaultTrueLabel
	}
	falseLabel := rc.FalseLabel
	if falseLabel == "" {
		falseLabel = defaultFalseLabel
	}
	trueSeverity := rc.TrueSeverity
	if trueSeverity == "" {
		trueSeverity = defaultTrueSeverity
	}
	falseSeverity := rc.FalseSeverity
	if falseSeverity == "" {
		falseSeverity = defaultFalseSeverity
	}
	return func(value any, _ Row) Cell {
		truthy := false
		switch v := value.(type) {
		case bool:
			truthy = v
		case string:
			truthy = v == "true"
		}
		if truthy {
			return Cell{Kind: CellTag, Text: trueLabel, Severity: trueSeverity}
		}
		return Cell{Kind: CellTag, Text: falseLabel, Severity: falseSeverity}
	}
}

func renderTruncatedText(rc RendererConfig) RenderFunc {
	limit := rc.TruncateAt
	if limit <= 0 {
		limit = defaultTruncateAt
	}
	return func(value any, _ Row) Cell {
		if value == nil {
			return Cell{Kind: CellText}
		}
		text := fmt.Sprint(value)
		runes := []rune(text)
		if len(runes) <= limit {
			return Cell{Kind: CellText, Text: text}
		}
		return Cell{Kind: CellText, Text: string(runes[:limit]) + "...", Tooltip: text}
	}
}

func renderImage(value any, _ Row) Cell {
	src, _ := value.(string)
	return Cell{Kind: CellImage, Src: src}
}

func renderCount(value any, _ Row) Cell {
	count := 0
	switch v := value.(type) {
	case []any:
		count = len(v)
	case []string:
		count = len(v)
	case int:
		count = v
	case float64:
		count = int(v)
	}
	return Cell{Kind: CellBadge, Count: count, Text: fmt.Sprint(count)}
}

func renderStatus(value any, _ Row) Cell {
	if value == nil {
		return Cell{Kind: CellTag, Text: nullValueToken, Severity: "secondary"}
	}
	return Cell{Kind: CellTag, Text: fmt.Sprint(value), Severity: "info"}
}

func renderCode(value any, _ Row) Cell {
	if value == nil {
		return Cell{Kind: CellCode}
	}
	return Cell{Kind: CellCode, Text: fmt.Sprint(value)}
}

func renderEmail(value any, _ Row) Cell {
	addr, _ := value.(string)
	if addr == "" {
		return Cell{Kind: CellText}
	}
	return Cell{Kind: CellLink, Text: addr, Href: "mailto:" + addr}
}

// renderObjectPreview renders a bounded-length JSON preview with the full
// value available as a tooltip.
func renderObjectPreview(value any, _ Row) Cell {
	if value == nil {
		return Cell{Kind: CellText}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return Cell{Kind: CellText, Text: nullValueToken}
	}
	full := string(data)
	runes := []rune(full)
	if len(runes) <= objectPreviewLimit {
		return Cell{Kind: CellCode, Text: full}
	}
	return Cell{Kind: CellCode, Text: string(runes[:objectPreviewLimit]) + "...", Tooltip: full}
}

// humanize turns a field name like "districtAdminId" or "created_at" into a
// display header ("District Admin Id", "Created At").
func humanize(name string) string {
	if name == "" {
		return ""
	}
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			b.WriteRune(' ')
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteRune(' ')
		}
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		b.WriteRune(r)
	}
	words := strings.Fields(b.String())
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
