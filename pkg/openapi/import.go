// Package openapi imports OpenAPI request-body schemas as form
// configurations, giving teams that already maintain API specs a
// direct path into the declarative config format.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-guihelper/pkg/config"
)

// Option adjusts the generated configuration.
type Option func(*importConfig)

type importConfig struct {
	window *config.WindowConfig
	layout config.Layout
}

// WithWindow overrides the window block derived from the operation.
func WithWindow(window config.WindowConfig) Option {
	return func(cfg *importConfig) {
		cfg.window = &window
	}
}

// WithLayout overrides the default vertical layout.
func WithLayout(layout config.Layout) Option {
	return func(cfg *importConfig) {
		cfg.layout = layout
	}
}

// LoadFile reads and parses an OpenAPI document from disk.
func LoadFile(ctx context.Context, path string) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", path, err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate %s: %w", path, err)
	}
	return doc, nil
}

// LoadBytes parses an OpenAPI document from memory.
func LoadBytes(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// FromOperation maps the request-body schema of the identified
// operation onto a GuiConfig: object properties become fields, nested
// objects produce dot-notation names, required arrays set the flag.
func FromOperation(ctx context.Context, doc *openapi3.T, operationID string, options ...Option) (*config.GuiConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("openapi: document is required")
	}

	operation, err := findOperation(doc, operationID)
	if err != nil {
		return nil, err
	}

	schema := requestSchema(operation)
	if schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request-body schema", operationID)
	}

	cfg := importConfig{layout: config.LayoutVertical}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	window := config.DefaultWindow()
	if title := strings.TrimSpace(operation.Summary); title != "" {
		window.Title = title
	} else {
		window.Title = operationID
	}
	if cfg.window != nil {
		window = *cfg.window
	}

	out := &config.GuiConfig{
		Window:       window,
		Layout:       cfg.layout,
		Fields:       schemaFields("", schema, nil),
		SubmitButton: true,
		SubmitLabel:  "Submit",
		CancelButton: true,
		CancelLabel:  "Cancel",
	}
	if len(out.Fields) == 0 {
		return nil, fmt.Errorf("openapi: operation %q request body has no usable properties", operationID)
	}
	return out, nil
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if doc.Paths != nil {
		for _, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for _, operation := range []*openapi3.Operation{
				item.Get, item.Put, item.Post, item.Delete,
				item.Patch, item.Head, item.Options, item.Trace,
			} {
				if operation != nil && operation.OperationID == operationID {
					return operation, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("openapi: operation %q not found", operationID)
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// schemaFields flattens an object schema into the field list. Nested
// objects recurse with dotted prefixes; arrays and untyped properties
// are skipped.
func schemaFields(prefix string, schema *openapi3.Schema, required []string) []config.FieldConfig {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	requiredSet := make(map[string]struct{}, len(required)+len(schema.Required))
	for _, name := range required {
		requiredSet[name] = struct{}{}
	}
	for _, name := range schema.Required {
		requiredSet[name] = struct{}{}
	}

	var fields []config.FieldConfig
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		property := ref.Value
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		if schemaType(property) == "object" {
			fields = append(fields, schemaFields(path, property, nil)...)
			continue
		}

		field, ok := propertyField(path, name, property)
		if !ok {
			continue
		}
		if _, isRequired := requiredSet[name]; isRequired {
			field.Required = true
		}
		fields = append(fields, field)
	}
	return fields
}

func propertyField(path, name string, property *openapi3.Schema) (config.FieldConfig, bool) {
	fieldType, ok := propertyType(property)
	if !ok {
		return config.FieldConfig{}, false
	}

	field := config.FieldConfig{
		Name:         path,
		Type:         fieldType,
		Label:        propertyLabel(name, property),
		DefaultValue: property.Default,
		Tooltip:      property.Description,
	}

	if fieldType.Choice() {
		for _, value := range property.Enum {
			field.Options = append(field.Options, fmt.Sprint(value))
		}
	}
	if fieldType.Numeric() {
		if property.Min != nil {
			value := *property.Min
			field.MinValue = &value
		}
		if property.Max != nil {
			value := *property.Max
			field.MaxValue = &value
		}
	}
	return field, true
}

func propertyType(property *openapi3.Schema) (config.FieldType, bool) {
	if len(property.Enum) > 0 {
		return config.FieldTypeSelect, true
	}
	switch schemaType(property) {
	case "string":
		switch property.Format {
		case "email":
			return config.FieldTypeEmail, true
		case "password":
			return config.FieldTypePassword, true
		case "uri", "url":
			return config.FieldTypeURL, true
		case "date":
			return config.FieldTypeDate, true
		case "time":
			return config.FieldTypeTime, true
		case "date-time":
			return config.FieldTypeDatetime, true
		}
		if property.MaxLength != nil && *property.MaxLength > 255 {
			return config.FieldTypeTextarea, true
		}
		return config.FieldTypeText, true
	case "integer":
		return config.FieldTypeNumber, true
	case "number":
		return config.FieldTypeFloat, true
	case "boolean":
		return config.FieldTypeCheckbox, true
	default:
		// Arrays and untyped properties have no widget mapping.
		return "", false
	}
}

func schemaType(property *openapi3.Schema) string {
	if property.Type == nil {
		return ""
	}
	values := property.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// propertyLabel prefers the schema title, falling back to the property
// name with separators spaced out and the first rune capitalized.
func propertyLabel(name string, property *openapi3.Schema) string {
	if title := strings.TrimSpace(property.Title); title != "" {
		return title
	}
	label := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	if label == "" {
		return name
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
