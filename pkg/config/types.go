// Package config holds the declarative form schema: window properties,
// fields with types and constraints, optional tabs, and custom buttons.
// A GuiConfig is immutable once loaded; backends read it to build
// widgets but never mutate it.
package config

// FieldType identifies a field's semantic kind. It drives both widget
// selection and value coercion in the backends.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeInt      FieldType = "int"
	FieldTypeFloat    FieldType = "float"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeCheck    FieldType = "check"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCombo    FieldType = "combo"
	FieldTypeDate     FieldType = "date"
	FieldTypeTime     FieldType = "time"
	FieldTypeDatetime FieldType = "datetime"
	FieldTypeFile     FieldType = "file"
	FieldTypeColor    FieldType = "color"
	FieldTypeRange    FieldType = "range"
	FieldTypeSpin     FieldType = "spin"
	FieldTypeURL      FieldType = "url"
)

// SupportedFieldTypes is the closed set of recognized field type tags.
// Unknown tags are rejected at load time rather than silently falling
// back to a text widget.
var SupportedFieldTypes = map[FieldType]struct{}{
	FieldTypeText: {}, FieldTypeNumber: {}, FieldTypeInt: {}, FieldTypeFloat: {},
	FieldTypeEmail: {}, FieldTypePassword: {}, FieldTypeTextarea: {},
	FieldTypeCheckbox: {}, FieldTypeCheck: {}, FieldTypeRadio: {},
	FieldTypeSelect: {}, FieldTypeCombo: {}, FieldTypeDate: {}, FieldTypeTime: {},
	FieldTypeDatetime: {}, FieldTypeFile: {}, FieldTypeColor: {},
	FieldTypeRange: {}, FieldTypeSpin: {}, FieldTypeURL: {},
}

// Valid reports whether the tag belongs to the supported set.
func (t FieldType) Valid() bool {
	_, ok := SupportedFieldTypes[t]
	return ok
}

// Numeric reports whether values of this type carry min/max range
// semantics.
func (t FieldType) Numeric() bool {
	switch t {
	case FieldTypeNumber, FieldTypeInt, FieldTypeFloat, FieldTypeRange, FieldTypeSpin:
		return true
	}
	return false
}

// Choice reports whether the type requires an options/choices list.
func (t FieldType) Choice() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeCombo:
		return true
	}
	return false
}

// Layout describes how fields are arranged within a container.
type Layout string

const (
	LayoutVertical   Layout = "vertical"
	LayoutHorizontal Layout = "horizontal"
	LayoutGrid       Layout = "grid"
	LayoutForm       Layout = "form"
)

// SupportedLayouts is the closed set of recognized layout tags.
var SupportedLayouts = map[Layout]struct{}{
	LayoutVertical: {}, LayoutHorizontal: {}, LayoutGrid: {}, LayoutForm: {},
}

// Valid reports whether the tag belongs to the supported set.
func (l Layout) Valid() bool {
	_, ok := SupportedLayouts[l]
	return ok
}

// FieldConfig describes one form field. Name may contain dots
// ("database.host") to bind the widget to a nested location in the data
// tree.
type FieldConfig struct {
	Name         string    `json:"name"`
	Type         FieldType `json:"type"`
	Label        string    `json:"label"`
	DefaultValue any       `json:"default_value,omitempty"`
	Required     bool      `json:"required,omitempty"`
	MinValue     *float64  `json:"min_value,omitempty"`
	MaxValue     *float64  `json:"max_value,omitempty"`
	Options      []string  `json:"options,omitempty"`
	Choices      []string  `json:"choices,omitempty"`
	Placeholder  string    `json:"placeholder,omitempty"`
	Tooltip      string    `json:"tooltip,omitempty"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	FormatString string    `json:"format_string,omitempty"`
}

// OptionValues returns the field's selectable values, preferring
// "options" and falling back to "choices".
func (f FieldConfig) OptionValues() []string {
	if len(f.Options) > 0 {
		return f.Options
	}
	return f.Choices
}

// WindowConfig describes the top-level window.
type WindowConfig struct {
	Title     string `json:"title"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Resizable bool   `json:"resizable"`
	Icon      string `json:"icon,omitempty"`
}

// DefaultWindow returns the window settings applied when a configuration
// omits the window block.
func DefaultWindow() WindowConfig {
	return WindowConfig{Title: "GUI Application", Width: 800, Height: 600, Resizable: true}
}

// TabConfig groups a subset of fields under a named tab.
type TabConfig struct {
	Name    string        `json:"name"`
	Title   string        `json:"title"`
	Fields  []FieldConfig `json:"fields"`
	Layout  Layout        `json:"layout,omitempty"`
	Enabled bool          `json:"enabled"`
	Tooltip string        `json:"tooltip,omitempty"`
}

// CustomButtonConfig describes an extra action button placed next to the
// submit/cancel pair.
type CustomButtonConfig struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Tooltip string `json:"tooltip,omitempty"`
	Enabled bool   `json:"enabled"`
	Icon    string `json:"icon,omitempty"`
	Style   string `json:"style,omitempty"`
}

// GuiConfig is the aggregate root handed to a backend builder.
type GuiConfig struct {
	Window        WindowConfig         `json:"window"`
	Fields        []FieldConfig        `json:"fields"`
	Tabs          []TabConfig          `json:"tabs,omitempty"`
	Layout        Layout               `json:"layout"`
	SubmitButton  bool                 `json:"submit_button"`
	SubmitLabel   string               `json:"submit_label"`
	CancelButton  bool                 `json:"cancel_button"`
	CancelLabel   string               `json:"cancel_label"`
	UseTabs       bool                 `json:"use_tabs"`
	CustomButtons []CustomButtonConfig `json:"custom_buttons,omitempty"`
}

// AllFields returns the flattened list of fields actually presented to
// the user: the tab fields in tab order when tabs are active, otherwise
// the root field list.
func (c *GuiConfig) AllFields() []FieldConfig {
	if c.UseTabs && len(c.Tabs) > 0 {
		var fields []FieldConfig
		for _, tab := range c.Tabs {
			fields = append(fields, tab.Fields...)
		}
		return fields
	}
	return c.Fields
}

// FieldByName looks up a field across the flattened field set.
func (c *GuiConfig) FieldByName(name string) (FieldConfig, bool) {
	for _, field := range c.AllFields() {
		if field.Name == name {
			return field, true
		}
	}
	return FieldConfig{}, false
}

// RequiredFieldNames lists the names of required fields in presentation
// order.
func (c *GuiConfig) RequiredFieldNames() []string {
	var names []string
	for _, field := range c.AllFields() {
		if field.Required {
			names = append(names, field.Name)
		}
	}
	return names
}
