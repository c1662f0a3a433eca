package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var defaultValueChecker = validator.New()

// Validate runs the semantic pass over an already-typed configuration.
// It is decoupled from the Loader so programmatically constructed
// configs get the same checks. The result is a list of human-readable
// violations; empty means valid.
func Validate(cfg *GuiConfig) []string {
	if cfg == nil {
		return []string{"configuration is nil"}
	}

	var violations []string
	violations = append(violations, validateWindow(cfg.Window)...)

	switch {
	case cfg.UseTabs && len(cfg.Tabs) > 0:
		for _, tab := range cfg.Tabs {
			violations = append(violations, validateTab(tab)...)
		}
	case len(cfg.Fields) > 0:
		for _, field := range cfg.Fields {
			violations = append(violations, validateField(field)...)
		}
	default:
		violations = append(violations, "configuration must have either fields or tabs defined")
	}

	for _, button := range cfg.CustomButtons {
		violations = append(violations, validateButton(button)...)
	}

	violations = append(violations, validateUniqueNames(cfg)...)
	return violations
}

// ValidateAndRaise converts a non-empty violation list into a
// *ConfigurationError.
func ValidateAndRaise(cfg *GuiConfig) error {
	violations := Validate(cfg)
	if len(violations) == 0 {
		return nil
	}
	return &ConfigurationError{
		Message:    "config: validation failed",
		Violations: violations,
	}
}

func validateWindow(window WindowConfig) []string {
	var violations []string
	if window.Title == "" {
		violations = append(violations, "window title cannot be empty")
	}
	if window.Width <= 0 {
		violations = append(violations, "window width must be positive")
	}
	if window.Height <= 0 {
		violations = append(violations, "window height must be positive")
	}
	return violations
}

func validateField(field FieldConfig) []string {
	var violations []string

	if field.Name == "" {
		violations = append(violations, "field name cannot be empty")
	}
	if field.Type == "" {
		violations = append(violations, fmt.Sprintf("field %q must have a type", field.Name))
	} else if !field.Type.Valid() {
		violations = append(violations, fmt.Sprintf("field %q has unsupported type %q", field.Name, field.Type))
	}
	if field.Label == "" {
		violations = append(violations, fmt.Sprintf("field %q must have a label", field.Name))
	}

	if field.Type.Numeric() && field.MinValue != nil && field.MaxValue != nil {
		if *field.MinValue > *field.MaxValue {
			violations = append(violations, fmt.Sprintf("field %q min_value must not exceed max_value", field.Name))
		}
	}

	if field.Type.Choice() && len(field.OptionValues()) == 0 {
		violations = append(violations, fmt.Sprintf("field %q of type %q must have options or choices", field.Name, field.Type))
	}

	if field.Width != nil && *field.Width <= 0 {
		violations = append(violations, fmt.Sprintf("field %q width must be positive", field.Name))
	}
	if field.Height != nil && *field.Height <= 0 {
		violations = append(violations, fmt.Sprintf("field %q height must be positive", field.Name))
	}

	violations = append(violations, validateDefaultValue(field)...)
	return violations
}

// validateDefaultValue checks that email/url defaults are well formed so
// a bad default does not surface as a confusing widget state later.
func validateDefaultValue(field FieldConfig) []string {
	def, ok := field.DefaultValue.(string)
	if !ok || def == "" {
		return nil
	}

	var tag string
	switch field.Type {
	case FieldTypeEmail:
		tag = "email"
	case FieldTypeURL:
		tag = "url"
	default:
		return nil
	}

	if err := defaultValueChecker.Var(def, tag); err != nil {
		return []string{fmt.Sprintf("field %q default_value %q is not a valid %s", field.Name, def, field.Type)}
	}
	return nil
}

func validateTab(tab TabConfig) []string {
	var violations []string
	if tab.Name == "" {
		violations = append(violations, "tab name cannot be empty")
	}
	if tab.Title == "" {
		violations = append(violations, fmt.Sprintf("tab %q must have a title", tab.Name))
	}
	if len(tab.Fields) == 0 {
		violations = append(violations, fmt.Sprintf("tab %q must have at least one field", tab.Name))
	}
	for _, field := range tab.Fields {
		violations = append(violations, validateField(field)...)
	}
	return violations
}

func validateButton(button CustomButtonConfig) []string {
	var violations []string
	if button.Name == "" {
		violations = append(violations, "custom button name cannot be empty")
	}
	if button.Label == "" {
		violations = append(violations, fmt.Sprintf("custom button %q must have a label", button.Name))
	}
	return violations
}

// validateUniqueNames checks the flattened set of fields actually
// presented to the user. With tabs active this catches duplicates
// across tabs that the structural pass, which only sees the root list,
// cannot.
func validateUniqueNames(cfg *GuiConfig) []string {
	var violations []string
	seen := make(map[string]struct{})
	for _, field := range cfg.AllFields() {
		if _, dup := seen[field.Name]; dup {
			violations = append(violations, fmt.Sprintf("duplicate field name %q", field.Name))
			continue
		}
		seen[field.Name] = struct{}{}
	}
	return violations
}
