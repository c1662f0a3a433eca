package htmlform_test

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-guihelper/pkg/backends/htmlform"
	"github.com/goliatone/go-guihelper/pkg/builder"
	"github.com/goliatone/go-guihelper/pkg/config"
)

func floatp(v float64) *float64 { return &v }

func documentConfig() *config.GuiConfig {
	return &config.GuiConfig{
		Window: config.WindowConfig{Title: "Server Settings", Width: 800, Height: 600},
		Layout: config.LayoutVertical,
		Fields: []config.FieldConfig{
			{Name: "name", Type: config.FieldTypeText, Label: "Name", Required: true},
			{Name: "database.host", Type: config.FieldTypeText, Label: "Host"},
			{Name: "workers", Type: config.FieldTypeInt, Label: "Workers", DefaultValue: 4, MinValue: floatp(1), MaxValue: floatp(16)},
			{Name: "env", Type: config.FieldTypeSelect, Label: "Environment", Options: []string{"dev", "prod"}, DefaultValue: "prod"},
			{Name: "debug", Type: config.FieldTypeCheckbox, Label: "Debug", DefaultValue: true},
		},
		SubmitButton: true,
		SubmitLabel:  "Save",
		CancelButton: true,
		CancelLabel:  "Discard",
	}
}

func renderDocument(t *testing.T, backend *htmlform.Backend, cfg *config.GuiConfig) string {
	t.Helper()
	form, err := builder.New(cfg, backend)
	if err != nil {
		t.Fatalf("builder.New: %v", err)
	}
	form.SetFieldValue("database.host", "localhost")

	doc, err := backend.Render(form)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(doc)
}

func TestRender_BasicDocument(t *testing.T) {
	backend, err := htmlform.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	html := renderDocument(t, backend, documentConfig())

	for _, want := range []string{
		"<title>Server Settings</title>",
		`name="database.host"`,
		`value="localhost"`,
		`id="field-database-host"`,
		`value="4"`,
		`min="1"`,
		`max="16"`,
		`step="1"`,
		`<option value="prod" selected>`,
		`<option value="dev">`,
		`type="checkbox" id="field-debug" name="debug" checked`,
		`<button type="submit" class="btn btn-submit">Save</button>`,
		`<button type="button" class="btn btn-cancel">Discard</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q:\n%s", want, html)
		}
	}

	if !strings.Contains(html, "required") {
		t.Error("required attribute missing for required field")
	}
}

func TestRender_TabsBecomeSections(t *testing.T) {
	cfg := documentConfig()
	cfg.UseTabs = true
	cfg.Tabs = []config.TabConfig{
		{Name: "general", Title: "General", Enabled: true, Fields: []config.FieldConfig{
			{Name: "name", Type: config.FieldTypeText, Label: "Name"},
		}},
		{Name: "advanced", Title: "Advanced", Enabled: true, Layout: config.LayoutGrid, Fields: []config.FieldConfig{
			{Name: "debug", Type: config.FieldTypeCheckbox, Label: "Debug"},
		}},
	}
	cfg.Fields = nil

	backend, err := htmlform.New()
	if err != nil {
		t.Fatal(err)
	}
	form, err := builder.New(cfg, backend)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := backend.Render(form)
	if err != nil {
		t.Fatal(err)
	}
	html := string(doc)

	for _, want := range []string{
		`data-section="general"`,
		"<legend>General</legend>",
		`data-section="advanced"`,
		"layout-grid",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRender_TooltipSanitized(t *testing.T) {
	cfg := documentConfig()
	cfg.Fields[0].Tooltip = `Use your <b>full</b> name<script>alert(1)</script>`

	backend, err := htmlform.New()
	if err != nil {
		t.Fatal(err)
	}
	html := renderDocument(t, backend, cfg)

	if !strings.Contains(html, "Use your <b>full</b> name") {
		t.Error("inline markup stripped from tooltip")
	}
	if strings.Contains(html, "<script>") {
		t.Error("script tag survived sanitization")
	}
}

func TestRender_ThemeTokens(t *testing.T) {
	backend, err := htmlform.New(htmlform.WithTheme(&theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		CSSVars: map[string]string{"--brand": "#123456"},
		AssetURL: func(slot string) string {
			if slot == "htmlform.stylesheet" {
				return "/assets/acme/theme.css"
			}
			return ""
		},
	}))
	if err != nil {
		t.Fatal(err)
	}
	html := renderDocument(t, backend, documentConfig())

	for _, want := range []string{
		"--brand: #123456;",
		`href="/assets/acme/theme.css"`,
		`data-theme="acme"`,
		`data-theme-variant="dark"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRendererConfigFromSelection_VariantOverrides(t *testing.T) {
	manifest := &theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"brand": "#123456", "radius": "4px"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{"htmlform.stylesheet": "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#654321"}},
		},
	}

	cfg := htmlform.RendererConfigFromSelection(&theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: manifest,
	})
	if cfg == nil {
		t.Fatal("nil renderer config")
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Errorf("variant token not applied: %q", cfg.Tokens["brand"])
	}
	if cfg.Tokens["radius"] != "4px" {
		t.Errorf("base token lost: %q", cfg.Tokens["radius"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Errorf("css var not derived: %q", cfg.CSSVars["--brand"])
	}
	if got := cfg.AssetURL("htmlform.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Errorf("asset url = %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Errorf("unknown asset slot should resolve empty, got %q", got)
	}
}

type cannedRenderer struct {
	name string
	data map[string]any
}

func (r *cannedRenderer) RenderTemplate(name string, data any) (string, error) {
	r.name = name
	r.data, _ = data.(map[string]any)
	return "<canned>", nil
}

func (r *cannedRenderer) RenderString(string, any) (string, error) {
	return "<canned>", nil
}

func TestRender_CustomRendererSeam(t *testing.T) {
	renderer := &cannedRenderer{}
	backend, err := htmlform.New(htmlform.WithTemplateRenderer(renderer))
	if err != nil {
		t.Fatal(err)
	}
	html := renderDocument(t, backend, documentConfig())

	if html != "<canned>" {
		t.Errorf("custom renderer bypassed: %q", html)
	}
	if renderer.name != "templates/form.tmpl" {
		t.Errorf("template name = %q", renderer.name)
	}
	if _, ok := renderer.data["form"]; !ok {
		t.Error("form view missing from template data")
	}
}
