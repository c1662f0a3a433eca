package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader parses raw JSON/YAML documents or in-memory maps into a
// GuiConfig, applying the structural validation rules before any typed
// record is built. All loading paths converge on LoadMap.
type Loader struct{}

// NewLoader constructs a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile reads and parses a configuration document. The extension
// selects the decoder: .yaml/.yml documents are decoded with yaml.v3,
// everything else is treated as JSON.
func (l *Loader) LoadFile(path string) (*GuiConfig, error) {
	if path == "" {
		return nil, newConfigError("config: file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return l.loadYAML(data)
	default:
		return l.LoadBytes(data)
	}
}

// LoadBytes parses a JSON configuration document.
func (l *Loader) LoadBytes(data []byte) (*GuiConfig, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: decode json: %w", err)
	}
	return l.LoadMap(raw)
}

func (l *Loader) loadYAML(data []byte) (*GuiConfig, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return l.LoadMap(raw)
}

// LoadMap validates the raw document structurally and constructs the
// typed configuration. It fails fast with a *ConfigurationError naming
// the offending field, tab, or button.
func (l *Loader) LoadMap(raw map[string]any) (*GuiConfig, error) {
	if raw == nil {
		return nil, newConfigError("config: document is empty")
	}
	if err := validateStructure(raw); err != nil {
		return nil, err
	}

	cfg := &GuiConfig{
		Window:       parseWindow(asMap(raw["window"])),
		Layout:       Layout(stringOr(raw["layout"], string(LayoutVertical))),
		SubmitButton: boolOr(raw["submit_button"], true),
		SubmitLabel:  stringOr(raw["submit_label"], "Submit"),
		CancelButton: boolOr(raw["cancel_button"], true),
		CancelLabel:  stringOr(raw["cancel_label"], "Cancel"),
	}

	for _, entry := range asSlice(raw["fields"]) {
		cfg.Fields = append(cfg.Fields, parseField(asMap(entry)))
	}

	for _, entry := range asSlice(raw["tabs"]) {
		tab, err := parseTab(asMap(entry), cfg.Fields)
		if err != nil {
			return nil, err
		}
		cfg.Tabs = append(cfg.Tabs, tab)
	}

	for _, entry := range asSlice(raw["custom_buttons"]) {
		cfg.CustomButtons = append(cfg.CustomButtons, parseButton(asMap(entry)))
	}

	cfg.UseTabs = len(cfg.Tabs) > 0 || boolOr(raw["use_tabs"], false)
	return cfg, nil
}

func parseWindow(data map[string]any) WindowConfig {
	window := DefaultWindow()
	if data == nil {
		return window
	}
	window.Title = stringOr(data["title"], window.Title)
	window.Width = intOr(data["width"], window.Width)
	window.Height = intOr(data["height"], window.Height)
	window.Resizable = boolOr(data["resizable"], window.Resizable)
	window.Icon = stringOr(data["icon"], "")
	return window
}

func parseField(data map[string]any) FieldConfig {
	return FieldConfig{
		Name:         stringOr(data["name"], ""),
		Type:         FieldType(stringOr(data["type"], "")),
		Label:        stringOr(data["label"], ""),
		DefaultValue: data["default_value"],
		Required:     boolOr(data["required"], false),
		MinValue:     floatPtr(data["min_value"]),
		MaxValue:     floatPtr(data["max_value"]),
		Options:      stringSlice(data["options"]),
		Choices:      stringSlice(data["choices"]),
		Placeholder:  stringOr(data["placeholder"], ""),
		Tooltip:      stringOr(data["tooltip"], ""),
		Width:        intPtr(data["width"]),
		Height:       intPtr(data["height"]),
		FormatString: stringOr(data["format_string"], ""),
	}
}

// parseTab resolves a tab's field entries. String entries reference the
// root field list; map entries are inline definitions (only allowed when
// no root list exists, which validateStructure has already enforced).
func parseTab(data map[string]any, rootFields []FieldConfig) (TabConfig, error) {
	tab := TabConfig{
		Name:    stringOr(data["name"], ""),
		Title:   stringOr(data["title"], ""),
		Layout:  Layout(stringOr(data["layout"], string(LayoutVertical))),
		Enabled: boolOr(data["enabled"], true),
		Tooltip: stringOr(data["tooltip"], ""),
	}

	for _, entry := range asSlice(data["fields"]) {
		switch v := entry.(type) {
		case string:
			resolved := false
			for _, field := range rootFields {
				if field.Name == v {
					tab.Fields = append(tab.Fields, field)
					resolved = true
					break
				}
			}
			if !resolved {
				return TabConfig{}, newConfigError("config: tab %q references unknown field %q", tab.Name, v)
			}
		default:
			tab.Fields = append(tab.Fields, parseField(asMap(entry)))
		}
	}
	return tab, nil
}

func parseButton(data map[string]any) CustomButtonConfig {
	return CustomButtonConfig{
		Name:    stringOr(data["name"], ""),
		Label:   stringOr(data["label"], ""),
		Tooltip: stringOr(data["tooltip"], ""),
		Enabled: boolOr(data["enabled"], true),
		Icon:    stringOr(data["icon"], ""),
		Style:   stringOr(data["style"], ""),
	}
}

// validateStructure applies the shape-level rules: required keys, known
// tags, uniqueness, and tab/button integrity. It reports the first
// violation found, always naming the offender.
func validateStructure(raw map[string]any) error {
	fieldNames := make(map[string]struct{})

	rootFields, hasRootFields := raw["fields"].([]any)
	if hasRootFields {
		for i, entry := range rootFields {
			field, ok := entry.(map[string]any)
			if !ok {
				return newConfigError("config: field %d must be an object", i)
			}
			for _, key := range []string{"name", "type", "label"} {
				if _, ok := field[key]; !ok {
					return newConfigError("config: field %d missing required key %q", i, key)
				}
			}

			name := stringOr(field["name"], "")
			if _, dup := fieldNames[name]; dup {
				return newConfigError("config: duplicate field name %q", name)
			}
			fieldNames[name] = struct{}{}

			if err := validateFieldShape(name, field); err != nil {
				return err
			}
		}
	}

	useTabs := boolOr(raw["use_tabs"], false)
	tabs, hasTabs := raw["tabs"].([]any)
	hasTabs = hasTabs && len(tabs) > 0

	switch {
	case useTabs || hasTabs:
		if _, ok := raw["tabs"]; !ok {
			return newConfigError("config: use_tabs is set but 'tabs' key is missing")
		}
		if !hasTabs {
			return newConfigError("config: 'tabs' must be a non-empty list")
		}
		if err := validateTabs(tabs, hasRootFields, fieldNames); err != nil {
			return err
		}
	default:
		if _, ok := raw["fields"]; !ok {
			return newConfigError("config: document must contain a 'fields' key")
		}
		if !hasRootFields {
			return newConfigError("config: 'fields' must be a list")
		}
	}

	if layout := Layout(stringOr(raw["layout"], string(LayoutVertical))); !layout.Valid() {
		return newConfigError("config: unsupported layout %q", layout)
	}

	return validateButtons(raw["custom_buttons"])
}

func validateFieldShape(name string, field map[string]any) error {
	fieldType := FieldType(stringOr(field["type"], ""))
	if !fieldType.Valid() {
		return newConfigError("config: field %q has unsupported type %q", name, fieldType)
	}

	if fieldType.Choice() {
		options := stringSlice(field["options"])
		choices := stringSlice(field["choices"])
		switch {
		case len(options) > 0:
		case fieldType == FieldTypeCombo && len(choices) > 0:
		default:
			return newConfigError("config: field %q of type %q must have non-empty 'options' or 'choices'", name, fieldType)
		}
	}

	if fieldType.Numeric() {
		min, max := floatPtr(field["min_value"]), floatPtr(field["max_value"])
		if min != nil && max != nil && *min > *max {
			return newConfigError("config: field %q: min_value %v cannot exceed max_value %v", name, *min, *max)
		}
	}
	return nil
}

func validateTabs(tabs []any, hasRootFields bool, fieldNames map[string]struct{}) error {
	tabNames := make(map[string]struct{})
	for i, entry := range tabs {
		tab, ok := entry.(map[string]any)
		if !ok {
			return newConfigError("config: tab %d must be an object", i)
		}
		for _, key := range []string{"name", "title", "fields"} {
			if _, ok := tab[key]; !ok {
				return newConfigError("config: tab %d missing required key %q", i, key)
			}
		}

		name := stringOr(tab["name"], "")
		if _, dup := tabNames[name]; dup {
			return newConfigError("config: duplicate tab name %q", name)
		}
		tabNames[name] = struct{}{}

		if layout := Layout(stringOr(tab["layout"], string(LayoutVertical))); !layout.Valid() {
			return newConfigError("config: tab %q has unsupported layout %q", name, layout)
		}

		tabFields, ok := tab["fields"].([]any)
		if !ok {
			return newConfigError("config: tab %q 'fields' must be a list", name)
		}
		for j, fieldEntry := range tabFields {
			if hasRootFields {
				ref, ok := fieldEntry.(string)
				if !ok {
					return newConfigError("config: tab %q field %d must be a field name reference when a root fields list exists", name, j)
				}
				if _, known := fieldNames[ref]; !known {
					return newConfigError("config: tab %q references unknown field %q", name, ref)
				}
				continue
			}

			inline, ok := fieldEntry.(map[string]any)
			if !ok {
				return newConfigError("config: tab %q field %d must be an object", name, j)
			}
			for _, key := range []string{"name", "type", "label"} {
				if _, ok := inline[key]; !ok {
					return newConfigError("config: tab %q field %d missing required key %q", name, j, key)
				}
			}
			if err := validateFieldShape(stringOr(inline["name"], ""), inline); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateButtons(raw any) error {
	if raw == nil {
		return nil
	}
	buttons, ok := raw.([]any)
	if !ok {
		return newConfigError("config: 'custom_buttons' must be a list")
	}

	names := make(map[string]struct{})
	for i, entry := range buttons {
		button, ok := entry.(map[string]any)
		if !ok {
			return newConfigError("config: custom button %d must be an object", i)
		}
		for _, key := range []string{"name", "label"} {
			if _, ok := button[key]; !ok {
				return newConfigError("config: custom button %d missing required key %q", i, key)
			}
		}
		name := stringOr(button["name"], "")
		if _, dup := names[name]; dup {
			return newConfigError("config: duplicate custom button name %q", name)
		}
		names[name] = struct{}{}
	}
	return nil
}

// Coercion helpers. JSON decodes numbers as float64 while YAML produces
// int for whole numbers; both shapes pass through here.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func boolOr(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func intOr(v any, def int) int {
	if p := intPtr(v); p != nil {
		return *p
	}
	return def
}

func intPtr(v any) *int {
	switch n := v.(type) {
	case int:
		return &n
	case int64:
		i := int(n)
		return &i
	case float64:
		i := int(n)
		return &i
	}
	return nil
}

func floatPtr(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	}
	return nil
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		out = append(out, fmt.Sprint(entry))
	}
	return out
}
