package nested_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-guihelper/pkg/nested"
)

func TestSetValue_CreatesIntermediateMaps(t *testing.T) {
	tree := map[string]any{}
	nested.SetValue(tree, "database.connection.host", "localhost")
	nested.SetValue(tree, "database.connection.port", 5432)
	nested.SetValue(tree, "database.name", "app")

	want := map[string]any{
		"database": map[string]any{
			"connection": map[string]any{
				"host": "localhost",
				"port": 5432,
			},
			"name": "app",
		},
	}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestSetValue_TopLevelKey(t *testing.T) {
	tree := map[string]any{}
	nested.SetValue(tree, "name", "Ada")
	if got := tree["name"]; got != "Ada" {
		t.Fatalf("tree[name] = %v, want Ada", got)
	}
}

func TestSetValue_NonMapIntermediateIsNoOp(t *testing.T) {
	tree := map[string]any{"a": "scalar"}
	nested.SetValue(tree, "a.b", 1)

	want := map[string]any{"a": "scalar"}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("conflicting set should leave tree untouched (-want +got):\n%s", diff)
	}
}

func TestGetValue(t *testing.T) {
	tree := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
		},
	}

	tests := []struct {
		name string
		path string
		def  any
		want any
	}{
		{name: "deep hit", path: "a.b.c", want: 1},
		{name: "intermediate map", path: "a.b", want: map[string]any{"c": 1}},
		{name: "missing leaf", path: "a.b.x", def: "fallback", want: "fallback"},
		{name: "missing root", path: "z.b.c", def: "fallback", want: "fallback"},
		{name: "path through scalar", path: "a.b.c.d", def: -1, want: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := nested.GetValue(tree, tc.path, tc.def)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("GetValue(%q) mismatch (-want +got):\n%s", tc.path, diff)
			}
		})
	}
}

func TestGetValue_EmptyTree(t *testing.T) {
	if got := nested.GetValue(map[string]any{}, "a.b.c", "fallback"); got != "fallback" {
		t.Fatalf("GetValue on empty tree = %v, want fallback", got)
	}
}

func TestFlatten(t *testing.T) {
	tree := map[string]any{
		"window": map[string]any{"title": "Demo", "size": map[string]any{"w": 800, "h": 600}},
		"tags":   []any{"a", "b"},
		"name":   "app",
	}

	want := map[string]any{
		"window.title":  "Demo",
		"window.size.w": 800,
		"window.size.h": 600,
		"tags":          []any{"a", "b"},
		"name":          "app",
	}
	if diff := cmp.Diff(want, nested.Flatten(tree)); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

// Flatten followed by repeated SetValue must reproduce any tree made of
// maps and scalar leaves.
func TestFlattenSetValueRoundTrip(t *testing.T) {
	original := map[string]any{
		"l1": map[string]any{
			"l2": map[string]any{
				"l3": map[string]any{
					"l4": map[string]any{"l5": "deep"},
				},
				"num": 3.14,
			},
			"ok": true,
		},
		"top":  "level",
		"list": []any{1, 2, 3},
	}

	rebuilt := map[string]any{}
	for path, value := range nested.Flatten(original) {
		nested.SetValue(rebuilt, path, value)
	}

	if diff := cmp.Diff(original, rebuilt); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
