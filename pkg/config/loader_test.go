package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-guihelper/pkg/config"
)

func baseDocument() map[string]any {
	return map[string]any{
		"window": map[string]any{"title": "Settings", "width": float64(640), "height": float64(480)},
		"fields": []any{
			map[string]any{"name": "name", "type": "text", "label": "Name", "required": true},
			map[string]any{"name": "age", "type": "number", "label": "Age"},
		},
	}
}

func TestLoadMap_Defaults(t *testing.T) {
	loader := config.NewLoader()
	cfg, err := loader.LoadMap(baseDocument())
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}

	if cfg.Layout != config.LayoutVertical {
		t.Errorf("Layout = %q, want vertical", cfg.Layout)
	}
	if !cfg.SubmitButton || cfg.SubmitLabel != "Submit" {
		t.Errorf("submit defaults = (%v, %q), want (true, Submit)", cfg.SubmitButton, cfg.SubmitLabel)
	}
	if !cfg.CancelButton || cfg.CancelLabel != "Cancel" {
		t.Errorf("cancel defaults = (%v, %q), want (true, Cancel)", cfg.CancelButton, cfg.CancelLabel)
	}
	if cfg.UseTabs {
		t.Error("UseTabs = true without tabs")
	}
	if got := cfg.Window.Title; got != "Settings" {
		t.Errorf("Window.Title = %q", got)
	}
	if diff := cmp.Diff([]string{"name"}, cfg.RequiredFieldNames()); diff != "" {
		t.Errorf("RequiredFieldNames mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMap_MissingWindowUsesDefaults(t *testing.T) {
	doc := baseDocument()
	delete(doc, "window")

	cfg, err := config.NewLoader().LoadMap(doc)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if diff := cmp.Diff(config.DefaultWindow(), cfg.Window); diff != "" {
		t.Errorf("window defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMap_StructuralFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantMsg string
	}{
		{
			name:    "missing fields key",
			mutate:  func(doc map[string]any) { delete(doc, "fields") },
			wantMsg: "'fields'",
		},
		{
			name: "field missing label",
			mutate: func(doc map[string]any) {
				doc["fields"] = []any{map[string]any{"name": "x", "type": "text"}}
			},
			wantMsg: `missing required key "label"`,
		},
		{
			name: "duplicate field name",
			mutate: func(doc map[string]any) {
				doc["fields"] = []any{
					map[string]any{"name": "x", "type": "text", "label": "A"},
					map[string]any{"name": "x", "type": "text", "label": "B"},
				}
			},
			wantMsg: `duplicate field name "x"`,
		},
		{
			name: "unknown field type",
			mutate: func(doc map[string]any) {
				doc["fields"] = []any{map[string]any{"name": "x", "type": "wheel", "label": "X"}}
			},
			wantMsg: `unsupported type "wheel"`,
		},
		{
			name: "select without options",
			mutate: func(doc map[string]any) {
				doc["fields"] = []any{map[string]any{"name": "x", "type": "select", "label": "X"}}
			},
			wantMsg: "'options' or 'choices'",
		},
		{
			name: "inverted numeric range",
			mutate: func(doc map[string]any) {
				doc["fields"] = []any{map[string]any{
					"name": "x", "type": "number", "label": "X",
					"min_value": float64(10), "max_value": float64(5),
				}}
			},
			wantMsg: "min_value 10 cannot exceed max_value 5",
		},
		{
			name: "unknown layout",
			mutate: func(doc map[string]any) {
				doc["layout"] = "diagonal"
			},
			wantMsg: `unsupported layout "diagonal"`,
		},
		{
			name: "duplicate tab name",
			mutate: func(doc map[string]any) {
				doc["tabs"] = []any{
					map[string]any{"name": "t", "title": "T1", "fields": []any{"name"}},
					map[string]any{"name": "t", "title": "T2", "fields": []any{"age"}},
				}
			},
			wantMsg: `duplicate tab name "t"`,
		},
		{
			name: "tab references unknown field",
			mutate: func(doc map[string]any) {
				doc["tabs"] = []any{
					map[string]any{"name": "general", "title": "General", "fields": []any{"nonexistent_field"}},
				}
			},
			wantMsg: `tab "general" references unknown field "nonexistent_field"`,
		},
		{
			name: "use_tabs without tabs key",
			mutate: func(doc map[string]any) {
				doc["use_tabs"] = true
			},
			wantMsg: "'tabs' key is missing",
		},
		{
			name: "custom button missing label",
			mutate: func(doc map[string]any) {
				doc["custom_buttons"] = []any{map[string]any{"name": "apply"}}
			},
			wantMsg: `missing required key "label"`,
		},
		{
			name: "duplicate custom button name",
			mutate: func(doc map[string]any) {
				doc["custom_buttons"] = []any{
					map[string]any{"name": "b", "label": "One"},
					map[string]any{"name": "b", "label": "Two"},
				}
			},
			wantMsg: `duplicate custom button name "b"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := baseDocument()
			tc.mutate(doc)

			_, err := config.NewLoader().LoadMap(doc)
			if err == nil {
				t.Fatal("LoadMap succeeded, want error")
			}
			var cfgErr *config.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error type = %T, want *ConfigurationError", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestLoadMap_SelectDefaultPreserved(t *testing.T) {
	doc := map[string]any{
		"fields": []any{
			map[string]any{
				"name": "env", "type": "select", "label": "Environment",
				"options": []any{"A", "B"}, "default_value": "A",
			},
		},
	}

	cfg, err := config.NewLoader().LoadMap(doc)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got := cfg.Fields[0].DefaultValue; got != "A" {
		t.Errorf("DefaultValue = %v, want A", got)
	}
	if diff := cmp.Diff([]string{"A", "B"}, cfg.Fields[0].OptionValues()); diff != "" {
		t.Errorf("OptionValues mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMap_ComboAcceptsChoices(t *testing.T) {
	doc := map[string]any{
		"fields": []any{
			map[string]any{
				"name": "mode", "type": "combo", "label": "Mode",
				"choices": []any{"fast", "slow"},
			},
		},
	}
	cfg, err := config.NewLoader().LoadMap(doc)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if diff := cmp.Diff([]string{"fast", "slow"}, cfg.Fields[0].OptionValues()); diff != "" {
		t.Errorf("OptionValues mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMap_UseTabsDerivedFromTabList(t *testing.T) {
	doc := baseDocument()
	doc["tabs"] = []any{
		map[string]any{"name": "general", "title": "General", "fields": []any{"name", "age"}},
	}

	cfg, err := config.NewLoader().LoadMap(doc)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if !cfg.UseTabs {
		t.Error("UseTabs = false, want true when tabs are present")
	}
	if len(cfg.Tabs) != 1 || len(cfg.Tabs[0].Fields) != 2 {
		t.Fatalf("tabs = %+v, want one tab with two resolved fields", cfg.Tabs)
	}
	if cfg.Tabs[0].Fields[0].Label != "Name" {
		t.Errorf("resolved field label = %q, want Name", cfg.Tabs[0].Fields[0].Label)
	}
}

func TestLoadMap_InlineTabFields(t *testing.T) {
	doc := map[string]any{
		"tabs": []any{
			map[string]any{
				"name": "net", "title": "Network",
				"fields": []any{
					map[string]any{"name": "host", "type": "text", "label": "Host"},
					map[string]any{"name": "port", "type": "int", "label": "Port"},
				},
			},
		},
	}

	cfg, err := config.NewLoader().LoadMap(doc)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if !cfg.UseTabs {
		t.Error("UseTabs = false")
	}
	if len(cfg.AllFields()) != 2 {
		t.Errorf("AllFields = %d entries, want 2", len(cfg.AllFields()))
	}
}

func TestLoadMap_DottedFieldName(t *testing.T) {
	doc := map[string]any{
		"fields": []any{
			map[string]any{"name": "global.app_name", "type": "text", "label": "App"},
		},
	}
	cfg, err := config.NewLoader().LoadMap(doc)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got := cfg.Fields[0].Name; !strings.Contains(got, ".") {
		t.Errorf("field name %q lost its dot", got)
	}
}

func TestLoadFile_JSONAndYAMLEquivalent(t *testing.T) {
	dir := t.TempDir()

	jsonDoc := `{
  "window": {"title": "Demo", "width": 400, "height": 300},
  "fields": [
    {"name": "db.host", "type": "text", "label": "Host", "required": true},
    {"name": "db.port", "type": "int", "label": "Port", "default_value": 5432}
  ]
}`
	yamlDoc := `window:
  title: Demo
  width: 400
  height: 300
fields:
  - name: db.host
    type: text
    label: Host
    required: true
  - name: db.port
    type: int
    label: Port
    default_value: 5432
`

	jsonPath := filepath.Join(dir, "form.json")
	yamlPath := filepath.Join(dir, "form.yaml")
	if err := os.WriteFile(jsonPath, []byte(jsonDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := config.NewLoader()
	fromJSON, err := loader.LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile json: %v", err)
	}
	fromYAML, err := loader.LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile yaml: %v", err)
	}

	// Numeric defaults decode as float64 from JSON and int from YAML;
	// compare everything else structurally.
	normalize := func(cfg *config.GuiConfig) *config.GuiConfig {
		for i := range cfg.Fields {
			if p, ok := cfg.Fields[i].DefaultValue.(int); ok {
				cfg.Fields[i].DefaultValue = float64(p)
			}
		}
		return cfg
	}
	if diff := cmp.Diff(normalize(fromJSON), normalize(fromYAML)); diff != "" {
		t.Errorf("JSON and YAML configs differ (-json +yaml):\n%s", diff)
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := config.NewLoader().LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("LoadFile succeeded for missing path")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v does not wrap fs.ErrNotExist", err)
	}
}

func TestLoadBytes_MalformedJSON(t *testing.T) {
	if _, err := config.NewLoader().LoadBytes([]byte(`{"fields": [`)); err == nil {
		t.Fatal("LoadBytes succeeded on malformed document")
	}
}
