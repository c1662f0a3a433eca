// Package htmlform renders a form configuration as a static HTML
// document. Unlike the terminal backend it is non-interactive: widgets
// are in-memory value holders, so Form.SetData can prefill the markup
// and Form.Data reads back whatever the caller set programmatically.
package htmlform

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-guihelper/pkg/builder"
	"github.com/goliatone/go-guihelper/pkg/config"
)

// Option customises the backend.
type Option func(*backendConfig)

type backendConfig struct {
	templateFS       fs.FS
	templateRenderer TemplateRenderer
	themeCfg         *theme.RendererConfig
	themeSelector    theme.ThemeSelector
	themeName        string
	themeVariant     string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *backendConfig) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *backendConfig) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer TemplateRenderer) Option {
	return func(cfg *backendConfig) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies an already-resolved theme configuration.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *backendConfig) {
		cfg.themeCfg = themeCfg
	}
}

// WithThemeSelector resolves the named theme/variant through a go-theme
// selector when the backend is constructed.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *backendConfig) {
		cfg.themeSelector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// Backend is the static HTML builder backend.
type Backend struct {
	builder.ValueFactory
	templates TemplateRenderer
	themeCfg  *theme.RendererConfig
}

// New constructs an HTML backend applying any provided options.
func New(options ...Option) (*Backend, error) {
	cfg := backendConfig{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := NewEngine(WithFS(cfg.templateFS), WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("htmlform: configure template renderer: %w", err)
		}
		renderer = engine
	}

	themeCfg := cfg.themeCfg
	if themeCfg == nil && cfg.themeSelector != nil {
		selection, err := cfg.themeSelector.Select(cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("htmlform: resolve theme %q: %w", cfg.themeName, err)
		}
		themeCfg = RendererConfigFromSelection(selection)
	}

	return &Backend{templates: renderer, themeCfg: themeCfg}, nil
}

// Name reports the backend identifier.
func (b *Backend) Name() string { return "htmlform" }

// ContentType reports the MIME type of rendered output.
func (b *Backend) ContentType() string { return "text/html; charset=utf-8" }

// Render produces the HTML document for the form's configuration and
// current widget values.
func (b *Backend) Render(form *builder.Form) ([]byte, error) {
	if form == nil {
		return nil, fmt.Errorf("htmlform: form is required")
	}
	if b.templates == nil {
		return nil, fmt.Errorf("htmlform: template renderer is nil")
	}

	result, err := b.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form": b.buildView(form),
	})
	if err != nil {
		return nil, fmt.Errorf("htmlform: render template: %w", err)
	}
	return []byte(result), nil
}

// WriteHTML renders the form and writes the document to w.
func (b *Backend) WriteHTML(w io.Writer, form *builder.Form) error {
	doc, err := b.Render(form)
	if err != nil {
		return err
	}
	_, err = w.Write(doc)
	return err
}

// formView is the template payload. Fields are exported for template
// reflection; templates reference them as form.Title, field.Label, etc.
type formView struct {
	Title    string
	Layout   string
	Sections []sectionView
	Buttons  []buttonView
	Theme    ThemeContext
}

type sectionView struct {
	Name    string
	Title   string
	Layout  string
	Tooltip string
	Fields  []fieldView
}

type fieldView struct {
	Name        string
	ID          string
	Label       string
	Kind        string
	InputType   string
	Value       string
	Checked     bool
	Options     []optionView
	Required    bool
	Placeholder string
	Tooltip     string
	Min         string
	Max         string
	Step        string
}

type optionView struct {
	Value    string
	Selected bool
}

type buttonView struct {
	Name     string
	Label    string
	Kind     string
	Disabled bool
	Icon     string
	Style    string
}

func (b *Backend) buildView(form *builder.Form) formView {
	cfg := form.Config()

	view := formView{
		Title:  cfg.Window.Title,
		Layout: string(cfg.Layout),
		Theme:  buildThemeContext(b.themeCfg),
	}

	if cfg.UseTabs && len(cfg.Tabs) > 0 {
		for _, tab := range cfg.Tabs {
			layout := tab.Layout
			if layout == "" {
				layout = cfg.Layout
			}
			view.Sections = append(view.Sections, sectionView{
				Name:    tab.Name,
				Title:   tab.Title,
				Layout:  string(layout),
				Tooltip: sanitizeTooltip(tab.Tooltip),
				Fields:  fieldViews(form, tab.Fields),
			})
		}
	} else {
		view.Sections = []sectionView{{
			Layout: string(cfg.Layout),
			Fields: fieldViews(form, cfg.Fields),
		}}
	}

	if cfg.SubmitButton {
		view.Buttons = append(view.Buttons, buttonView{
			Label: cfg.SubmitLabel,
			Kind:  "submit",
		})
	}
	for _, button := range cfg.CustomButtons {
		view.Buttons = append(view.Buttons, buttonView{
			Name:     button.Name,
			Label:    button.Label,
			Kind:     "custom",
			Disabled: !button.Enabled,
			Icon:     sanitizeIconMarkup(button.Icon),
			Style:    button.Style,
		})
	}
	if cfg.CancelButton {
		view.Buttons = append(view.Buttons, buttonView{
			Label: cfg.CancelLabel,
			Kind:  "cancel",
		})
	}

	return view
}

func fieldViews(form *builder.Form, fields []config.FieldConfig) []fieldView {
	views := make([]fieldView, 0, len(fields))
	for _, field := range fields {
		views = append(views, newFieldView(form, field))
	}
	return views
}

func newFieldView(form *builder.Form, field config.FieldConfig) fieldView {
	view := fieldView{
		Name:        field.Name,
		ID:          fieldID(field.Name),
		Label:       field.Label,
		Kind:        fieldKind(field.Type),
		InputType:   inputType(field.Type),
		Required:    field.Required,
		Placeholder: field.Placeholder,
		Tooltip:     sanitizeTooltip(field.Tooltip),
	}

	value, _ := form.FieldValue(field.Name)
	switch view.Kind {
	case "checkbox":
		checked, _ := value.(bool)
		view.Checked = checked
	case "select", "radio":
		current, _ := value.(string)
		for _, option := range field.OptionValues() {
			view.Options = append(view.Options, optionView{
				Value:    option,
				Selected: option == current,
			})
		}
	default:
		view.Value = valueString(value, field)
	}

	if field.Type.Numeric() {
		if field.MinValue != nil {
			view.Min = formatBound(*field.MinValue)
		}
		if field.MaxValue != nil {
			view.Max = formatBound(*field.MaxValue)
		}
		switch field.Type {
		case config.FieldTypeInt, config.FieldTypeSpin:
			view.Step = "1"
		default:
			view.Step = "any"
		}
	}

	return view
}

func fieldKind(t config.FieldType) string {
	switch {
	case t == config.FieldTypeCheckbox || t == config.FieldTypeCheck:
		return "checkbox"
	case t == config.FieldTypeRadio:
		return "radio"
	case t.Choice():
		return "select"
	case t == config.FieldTypeTextarea:
		return "textarea"
	default:
		return "input"
	}
}

func inputType(t config.FieldType) string {
	switch t {
	case config.FieldTypeEmail:
		return "email"
	case config.FieldTypePassword:
		return "password"
	case config.FieldTypeURL:
		return "url"
	case config.FieldTypeNumber, config.FieldTypeInt, config.FieldTypeFloat, config.FieldTypeSpin:
		return "number"
	case config.FieldTypeRange:
		return "range"
	case config.FieldTypeDate:
		return "date"
	case config.FieldTypeTime:
		return "time"
	case config.FieldTypeDatetime:
		return "datetime-local"
	case config.FieldTypeColor:
		return "color"
	case config.FieldTypeFile:
		return "file"
	default:
		return "text"
	}
}

// fieldID turns a dotted data path into a usable element id.
func fieldID(name string) string {
	return "field-" + strings.ReplaceAll(name, ".", "-")
}

func valueString(value any, field config.FieldConfig) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return builder.FormatFloat(v, field.FormatString)
	default:
		return fmt.Sprint(v)
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
