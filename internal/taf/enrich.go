package taf

import (
	"time"

	"github.com/couchcryptid/taf-validation-service/internal/jsontree"
)

// Enrich annotates a decoded TAF document in place with the derived facts the
// enriched schema validates. The rule order is fixed; later rules may observe
// annotations written by earlier ones. Enrich accepts any JSON value and
// never fails.
func Enrich(doc any) {
	augmentChangegroupsAscending(doc)
	augmentOverlappingBecoming(doc)
	augmentChangegroupDuration(doc)
	augmentWindGust(doc)
	augmentAscendingClouds(doc)
	augmentEndTimes(doc)
	augmentVisibilityWeatherRequired(doc)
	augmentEnoughWindChange(doc)
	augmentCloudNeededRainOrModifier(doc)
	augmentMaxVisibility(doc)
	augmentNonRepeatingChanges(doc)
}

// augmentChangegroupsAscending marks each change group with whether its start
// time keeps the sequence non-decreasing. Equal starts are acceptable for
// PROB groups anywhere and for BECMG/TEMPO groups that begin exactly at the
// TAF validity start.
func augmentChangegroupsAscending(doc any) {
	start := jsontree.FindValue(doc, "validityStart")
	prev, err := parseTime(text(start))
	if err != nil {
		return
	}
	tafStart := prev

	for _, g := range changeGroupsOf(doc) {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		startNode := jsontree.FindValue(group, "changeStart")
		if startNode == nil {
			continue
		}
		typeNode := jsontree.FindValue(group, "changeType")
		if typeNode == nil {
			continue
		}
		changeType := text(typeNode)

		parsed, err := parseTime(text(startNode))
		if err != nil {
			group["changegroupsAscending"] = false
			continue
		}
		atValidityStart := parsed.Equal(tafStart)
		comesAfter := parsed.After(prev) ||
			(parsed.Equal(prev) && isProb(changeType)) ||
			(parsed.Equal(prev) && hasAnyPrefix(changeType, "BECMG", "TEMPO") && atValidityStart)
		group["changegroupsAscending"] = comesAfter
		prev = parsed
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if len(s) >= len(p) && s[:len(p)] == p {
			return true
		}
	}
	return false
}

// augmentOverlappingBecoming flags a BECMG group whose start falls strictly
// before the end of any earlier BECMG group.
func augmentOverlappingBecoming(doc any) {
	var becmgEnds []time.Time
	for _, g := range changeGroupsOf(doc) {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		typeNode := jsontree.FindValue(group, "changeType")
		startNode := jsontree.FindValue(group, "changeStart")
		if typeNode == nil || startNode == nil {
			continue
		}
		if text(typeNode) != "BECMG" {
			continue
		}
		start, err := parseTime(text(startNode))
		if err != nil {
			continue
		}
		overlap := false
		for _, end := range becmgEnds {
			if start.Before(end) {
				overlap = true
			}
		}
		if endNode := jsontree.FindValue(group, "changeEnd"); endNode != nil {
			if end, err := parseTime(text(endNode)); err == nil {
				becmgEnds = append(becmgEnds, end)
			}
		}
		group["changegroupBecomingOverlaps"] = overlap
	}
}

// augmentChangegroupDuration records the whole-hour span of each change
// group, falling back to the TAF validity end when the group has no end time.
func augmentChangegroupDuration(doc any) {
	for _, g := range changeGroupsOf(doc) {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		startNode := jsontree.FindValue(group, "changeStart")
		if startNode == nil {
			continue
		}
		start, err := parseTime(text(startNode))
		if err != nil {
			continue
		}
		var end time.Time
		if endNode := jsontree.FindValue(group, "changeEnd"); endNode != nil {
			end, err = parseTime(text(endNode))
		} else if validityEnd := jsontree.FindValue(doc, "validityEnd"); validityEnd != nil {
			end, err = parseTime(text(validityEnd))
		} else {
			continue
		}
		if err != nil {
			continue
		}
		diff := end.Sub(start)
		if diff < 0 {
			diff = -diff
		}
		group["changeDurationInHours"] = int64(diff / time.Hour)
	}
}

// augmentEndTimes marks whether each change group ends at or after its start.
func augmentEndTimes(doc any) {
	for _, g := range changeGroupsOf(doc) {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		startNode := jsontree.FindValue(group, "changeStart")
		if startNode == nil {
			continue
		}
		start, err := parseTime(text(startNode))
		if err != nil {
			continue
		}
		endNode := jsontree.FindValue(group, "changeEnd")
		if endNode == nil {
			continue
		}
		end, err := parseTime(text(endNode))
		if err != nil {
			continue
		}
		group["endAfterStart"] = !start.After(end)
	}
}
