package htmlform

import (
	"encoding/json"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeContext is the theme payload handed to templates: resolved
// tokens, a ready-to-inline CSS variable block, and resolved asset
// URLs for the stylesheet/script slots.
type ThemeContext struct {
	Name          string
	Variant       string
	Tokens        map[string]string
	CSSVars       map[string]string
	CSSVarsStyle  string
	StylesheetURL string
	JSON          string
}

const themeAssetStylesheet = "htmlform.stylesheet"

// RendererConfigFromSelection flattens a go-theme selection into a
// renderer config: variant tokens/templates/assets override the base
// manifest, tokens double as CSS custom properties, and asset lookups
// resolve against the manifest prefix.
func RendererConfigFromSelection(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest

	tokens := mergeStringMaps(manifest.Tokens, nil)
	partials := mergeStringMaps(manifest.Templates, nil)
	assets := mergeStringMaps(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[sel.Variant]; ok {
		tokens = mergeStringMaps(tokens, variant.Tokens)
		partials = mergeStringMaps(partials, variant.Templates)
		assets = mergeStringMaps(assets, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		cssVars[name] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, assets),
	}
}

func buildThemeContext(cfg *theme.RendererConfig) ThemeContext {
	if cfg == nil {
		return ThemeContext{}
	}
	ctx := ThemeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  mergeStringMaps(cfg.Tokens, nil),
		CSSVars: mergeStringMaps(cfg.CSSVars, nil),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	if cfg.AssetURL != nil {
		ctx.StylesheetURL = strings.TrimSpace(cfg.AssetURL(themeAssetStylesheet))
	}
	ctx.JSON = themeJSON(ctx)
	return ctx
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(slot string) string {
		file, ok := files[slot]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(file, "/")
	}
}

func mergeStringMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func themeJSON(ctx ThemeContext) string {
	payload := struct {
		Name    string            `json:"name,omitempty"`
		Variant string            `json:"variant,omitempty"`
		Tokens  map[string]string `json:"tokens,omitempty"`
		CSSVars map[string]string `json:"cssVars,omitempty"`
	}{
		Name:    ctx.Name,
		Variant: ctx.Variant,
		Tokens:  ctx.Tokens,
		CSSVars: ctx.CSSVars,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(data)
}
