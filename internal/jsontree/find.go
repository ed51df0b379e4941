package jsontree

import (
	"sort"
	"strconv"
	"strings"
)

// FindValue returns the value of the first field named name found in a
// depth-first search of node, or nil when absent. Direct fields win over
// nested ones; nested candidates are visited in sorted key order so repeated
// lookups are deterministic.
func FindValue(node any, name string) any {
	switch n := node.(type) {
	case map[string]any:
		if v, ok := n[name]; ok {
			return v
		}
		for _, k := range sortedKeys(n) {
			if v := FindValue(n[k], name); v != nil {
				return v
			}
		}
	case []any:
		for _, child := range n {
			if v := FindValue(child, name); v != nil {
				return v
			}
		}
	}
	return nil
}

// FindValues collects the values of every field named name anywhere in node.
// Matched values are not descended into.
func FindValues(node any, name string) []any {
	var out []any
	switch n := node.(type) {
	case map[string]any:
		for _, k := range sortedKeys(n) {
			if k == name {
				out = append(out, n[k])
			} else {
				out = append(out, FindValues(n[k], name)...)
			}
		}
	case []any:
		for _, child := range n {
			out = append(out, FindValues(child, name)...)
		}
	}
	return out
}

// FindParents collects every object that has a direct field named name.
// The matched field's value is not searched further; sibling fields are.
func FindParents(node any, name string) []map[string]any {
	var out []map[string]any
	switch n := node.(type) {
	case map[string]any:
		if _, ok := n[name]; ok {
			out = append(out, n)
		}
		for _, k := range sortedKeys(n) {
			if k != name {
				out = append(out, FindParents(n[k], name)...)
			}
		}
	case []any:
		for _, child := range n {
			out = append(out, FindParents(child, name)...)
		}
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsInt coerces a decoded JSON value to an int. Floats are truncated,
// strings are parsed; anything else reports false.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// AsString returns the string value of v, or "" with false for non-strings.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Size mirrors container size semantics: element count for objects and
// arrays, zero for scalars and nil.
func Size(v any) int {
	switch n := v.(type) {
	case map[string]any:
		return len(n)
	case []any:
		return len(n)
	}
	return 0
}
