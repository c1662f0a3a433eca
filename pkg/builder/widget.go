// Package builder provides the backend-agnostic form engine: widget
// bookkeeping, nested data binding, required-field validation, callback
// dispatch, and data file persistence. Toolkit backends implement widget
// creation and the event loop; everything else lives here so it is
// written once.
package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-guihelper/pkg/config"
)

// Widget is the uniform handle every backend exposes per field.
// SetValue reports false when the value cannot be coerced into the
// widget's native type; it never panics, since best-effort data loads
// hit mismatched types constantly.
type Widget interface {
	Value() any
	SetValue(value any) bool
	SetEnabled(enabled bool)
	SetVisible(visible bool)
}

// WidgetFactory creates a widget for a field. Backends implement this
// against their toolkit; the engine never constructs toolkit objects
// itself.
type WidgetFactory interface {
	CreateWidget(field config.FieldConfig) (Widget, error)
}

// EmptyValue implements the single emptiness rule used for required
// field checks everywhere: nil, or a string whose stripped form is
// empty.
func EmptyValue(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ValueWidget is an in-memory widget with field-type-aware coercion.
// Headless backends (terminal, HTML) use it as their widget state, and
// it doubles as the reference implementation of the coercion contract.
type ValueWidget struct {
	field   config.FieldConfig
	value   any
	enabled bool
	visible bool
}

// NewValueWidget constructs a widget primed with the field's default
// value, or the type's zero value when no default is given.
func NewValueWidget(field config.FieldConfig) *ValueWidget {
	w := &ValueWidget{field: field, enabled: true, visible: true}
	if field.DefaultValue == nil || !w.SetValue(field.DefaultValue) {
		w.value = ZeroValue(field.Type)
	}
	return w
}

// Field returns the configuration the widget was built from.
func (w *ValueWidget) Field() config.FieldConfig { return w.field }

func (w *ValueWidget) Value() any { return w.value }

func (w *ValueWidget) SetEnabled(enabled bool) { w.enabled = enabled }
func (w *ValueWidget) SetVisible(visible bool) { w.visible = visible }

// Enabled reports the widget's enabled state.
func (w *ValueWidget) Enabled() bool { return w.enabled }

// Visible reports the widget's visibility state.
func (w *ValueWidget) Visible() bool { return w.visible }

// SetValue coerces value into the field's native type. Coercion
// failures leave the current value untouched and report false.
func (w *ValueWidget) SetValue(value any) bool {
	coerced, ok := coerceValue(w.field, value)
	if !ok {
		return false
	}
	w.value = coerced
	return true
}

// ValueFactory creates in-memory widgets. Headless backends embed it
// and drive the values from their own interaction model.
type ValueFactory struct{}

func (ValueFactory) CreateWidget(field config.FieldConfig) (Widget, error) {
	return NewValueWidget(field), nil
}

// ZeroValue returns the empty/zero value a widget resets to when its
// field has no default.
func ZeroValue(t config.FieldType) any {
	switch {
	case t == config.FieldTypeCheckbox || t == config.FieldTypeCheck:
		return false
	case t == config.FieldTypeInt || t == config.FieldTypeNumber || t == config.FieldTypeSpin:
		return 0
	case t == config.FieldTypeFloat || t == config.FieldTypeRange:
		return 0.0
	default:
		return ""
	}
}

func coerceValue(field config.FieldConfig, value any) (any, bool) {
	if value == nil {
		return ZeroValue(field.Type), true
	}

	switch field.Type {
	case config.FieldTypeCheckbox, config.FieldTypeCheck:
		switch v := value.(type) {
		case bool:
			return v, true
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(v))
			return parsed, err == nil
		}
		return nil, false

	case config.FieldTypeInt, config.FieldTypeNumber, config.FieldTypeSpin:
		switch v := value.(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case float64:
			return int(v), true
		case string:
			parsed, err := strconv.Atoi(strings.TrimSpace(v))
			return parsed, err == nil
		}
		return nil, false

	case config.FieldTypeFloat, config.FieldTypeRange:
		switch v := value.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			return parsed, err == nil
		}
		return nil, false

	case config.FieldTypeSelect, config.FieldTypeRadio, config.FieldTypeCombo:
		s, ok := stringify(value)
		if !ok {
			return nil, false
		}
		for _, option := range field.OptionValues() {
			if option == s {
				return s, true
			}
		}
		return nil, false

	default:
		return stringifyAny(value)
	}
}

func stringify(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

// stringifyAny renders scalar values for text-like widgets. Composite
// values (maps, slices) are rejected rather than dumped as Go syntax.
func stringifyAny(value any) (any, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int, int64:
		return fmt.Sprint(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return nil, false
}

// FormatFloat renders a float using the field's format_string when one
// is given ("%.2f" style or a bare ".2f"), falling back to the default
// representation on a bad specifier.
func FormatFloat(value float64, formatString string) string {
	if formatString != "" {
		spec := formatString
		if !strings.HasPrefix(spec, "%") {
			spec = "%" + spec
		}
		formatted := fmt.Sprintf(spec, value)
		if !strings.Contains(formatted, "%!") {
			return formatted
		}
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
