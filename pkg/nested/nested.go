// Package nested bridges the flat widget-value namespace and the nested
// JSON shape data files use. Field names may contain dots ("database.host")
// to address a location inside a nested tree; the helpers here translate
// between the two representations.
package nested

import "strings"

// Separator joins path segments in flattened keys.
const Separator = "."

// SetValue writes value at the dot-delimited path, creating intermediate
// maps as needed. When an intermediate segment already holds a non-map
// value the call is a silent no-op: it neither overwrites the existing
// value nor reports an error. Callers that load partial data over
// existing trees rely on this.
func SetValue(tree map[string]any, path string, value any) {
	keys := strings.Split(path, Separator)
	current := tree
	for _, key := range keys[:len(keys)-1] {
		child, ok := current[key]
		if !ok {
			next := make(map[string]any)
			current[key] = next
			current = next
			continue
		}
		childMap, ok := child.(map[string]any)
		if !ok {
			return
		}
		current = childMap
	}
	current[keys[len(keys)-1]] = value
}

// GetValue walks the dot-delimited path and returns the value found at
// its end. It returns def as soon as a segment is absent or the current
// node is not a map.
func GetValue(tree map[string]any, path string, def any) any {
	var current any = tree
	for _, key := range strings.Split(path, Separator) {
		node, ok := current.(map[string]any)
		if !ok {
			return def
		}
		current, ok = node[key]
		if !ok {
			return def
		}
	}
	return current
}

// Flatten converts a nested tree into a flat map whose keys are
// dot-joined paths. Only map-valued nodes are recursed into; every other
// value, lists included, is kept as an opaque leaf.
func Flatten(tree map[string]any) map[string]any {
	flat := make(map[string]any, len(tree))
	flattenInto(flat, "", tree)
	return flat
}

func flattenInto(flat map[string]any, prefix string, tree map[string]any) {
	for key, value := range tree {
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		if child, ok := value.(map[string]any); ok {
			flattenInto(flat, path, child)
			continue
		}
		flat[path] = value
	}
}
