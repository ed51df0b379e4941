package taf

import "github.com/couchcryptid/taf-validation-service/internal/jsontree"

// RemoveTrailingEmptyChangeGroup discards editor artifacts before
// validation: empty change-group entries anywhere in the list, plus a
// trailing group that carries no actual change (no type, no times, empty
// wind and visibility, NSW weather and NSC clouds). The only remaining
// group is never touched.
func RemoveTrailingEmptyChangeGroup(doc any) {
	m, ok := doc.(map[string]any)
	if !ok {
		return
	}
	groups, ok := m["changegroups"].([]any)
	if !ok || len(groups) <= 1 {
		return
	}

	kept := make([]any, 0, len(groups))
	for _, g := range groups {
		if g == nil || jsontree.Size(g) == 0 {
			continue
		}
		kept = append(kept, g)
	}
	m["changegroups"] = kept
	if len(kept) <= 1 {
		return
	}

	last, ok := kept[len(kept)-1].(map[string]any)
	if !ok {
		return
	}
	if isContentlessGroup(last) {
		m["changegroups"] = kept[:len(kept)-1]
	}
}

// isContentlessGroup reports whether a change group describes no change at
// all.
func isContentlessGroup(group map[string]any) bool {
	forecast, ok := group["forecast"].(map[string]any)
	if !ok || len(forecast) == 0 {
		return true
	}
	if ct, ok := group["changeType"]; ok && text(ct) != "" {
		return false
	}
	if _, ok := group["changeStart"]; ok {
		return false
	}
	if _, ok := group["changeEnd"]; ok {
		return false
	}
	return jsontree.Size(forecast["wind"]) == 0 &&
		jsontree.Size(forecast["visibility"]) == 0 &&
		text(forecast["weather"]) == "NSW" &&
		text(forecast["clouds"]) == "NSC"
}
