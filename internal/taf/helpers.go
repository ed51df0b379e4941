package taf

import (
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/taf-validation-service/internal/jsontree"
)

// timeLayout is the only timestamp form a TAF may carry.
const timeLayout = "2006-01-02T15:04:05Z"

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// text renders a scalar the way schema comparisons expect: strings as-is,
// numbers and booleans formatted, containers and nil as "".
func text(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// changeGroupsOf returns the changegroups array, or nil when absent or not
// an array.
func changeGroupsOf(doc any) []any {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	groups, _ := m["changegroups"].([]any)
	return groups
}

// forecastOf returns the base forecast object, or nil.
func forecastOf(doc any) map[string]any {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	fc, _ := m["forecast"].(map[string]any)
	return fc
}

// isProb reports whether a changeType value names a probabilistic group.
func isProb(changeType any) bool {
	return strings.HasPrefix(text(changeType), "PROB")
}

// advancesBaseline reports whether a change group replaces the running
// baseline: its changeType must be present and not probabilistic.
func advancesBaseline(group map[string]any) bool {
	ct, ok := group["changeType"]
	return ok && ct != nil && !isProb(ct)
}

// intField reads an integer member of an object value, e.g. the "value" of a
// visibility node.
func intField(node any, name string) (int, bool) {
	m, ok := node.(map[string]any)
	if !ok {
		return 0, false
	}
	v, ok := m[name]
	if !ok {
		return 0, false
	}
	return jsontree.AsInt(v)
}

// intOrZero mirrors lenient integer coercion: unparseable values count as 0.
func intOrZero(v any) int {
	n, ok := jsontree.AsInt(v)
	if !ok {
		return 0
	}
	return n
}

// anyCloudMod reports whether any cloud layer carries one of the given
// modifiers.
func anyCloudMod(clouds []any, mods ...string) bool {
	for _, c := range clouds {
		cm, ok := c.(map[string]any)
		if !ok {
			continue
		}
		mod, ok := cm["mod"]
		if !ok {
			continue
		}
		for _, want := range mods {
			if text(mod) == want {
				return true
			}
		}
	}
	return false
}

// hasPhenomenon reports whether a phenomena array mentions any of the given
// obstructions.
func hasPhenomenon(phenomena []any, names ...string) bool {
	for _, p := range phenomena {
		for _, want := range names {
			if text(p) == want {
				return true
			}
		}
	}
	return false
}
