package taf

import (
	"github.com/couchcryptid/taf-validation-service/internal/jsontree"
	"github.com/couchcryptid/taf-validation-service/internal/modmath"
)

const (
	compassDegrees = 360

	// Thresholds for a change group's wind to count as a significant change.
	significantDirectionDiff = 30
	significantSpeedDiff     = 5

	// Gusts must exceed the mean wind by this much to be reportable.
	minGustExcess = 10
)

// augmentWindGust marks every wind node in the document that carries both a
// speed and gusts with whether the gusts are fast enough to report.
func augmentWindGust(doc any) {
	for _, w := range jsontree.FindValues(doc, "wind") {
		wind, ok := w.(map[string]any)
		if !ok {
			continue
		}
		gustNode := jsontree.FindValue(wind, "gusts")
		if gustNode == nil {
			continue
		}
		gust, ok := jsontree.AsInt(gustNode)
		if !ok {
			continue
		}
		speed, ok := jsontree.AsInt(jsontree.FindValue(wind, "speed"))
		if !ok {
			continue
		}
		wind["gustFastEnough"] = gust >= speed+minGustExcess
	}
}

// augmentEnoughWindChange annotates each change group's wind with its speed
// and shortest-arc direction deltas against the running baseline wind, and
// whether the combination is significant. The gust baseline is taken from the
// base forecast once: a group only "becomes gusty" when the base forecast had
// no gusts at all.
func augmentEnoughWindChange(doc any) {
	fc := forecastOf(doc)
	if fc == nil {
		return
	}
	baseWind, ok := fc["wind"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := baseWind["direction"]; !ok {
		return
	}
	if _, ok := baseWind["speed"]; !ok {
		return
	}
	baseDirection := intOrZero(baseWind["direction"])
	baseSpeed := intOrZero(baseWind["speed"])
	gustNode, hasGusts := baseWind["gusts"]
	baseHasGusts := hasGusts && gustNode != nil && intOrZero(gustNode) > 0

	for _, g := range changeGroupsOf(doc) {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		changeForecast, ok := group["forecast"].(map[string]any)
		if !ok {
			continue
		}
		wind, ok := changeForecast["wind"].(map[string]any)
		if !ok {
			continue
		}
		if _, ok := wind["direction"]; !ok {
			continue
		}
		if _, ok := wind["speed"]; !ok {
			continue
		}

		changeGusts, ok := wind["gusts"]
		becomesGusty := !baseHasGusts && ok && intOrZero(changeGusts) > 0

		direction := intOrZero(wind["direction"])
		speed := intOrZero(wind["speed"])
		speedDiff := speed - baseSpeed
		if speedDiff < 0 {
			speedDiff = -speedDiff
		}
		clockwise, _ := modmath.Sub(int64(direction), int64(baseDirection), compassDegrees)
		counter, _ := modmath.Sub(int64(baseDirection), int64(direction), compassDegrees)
		directionDiff := min(clockwise, counter)

		group["directionDiff"] = directionDiff
		group["speedDiff"] = speedDiff
		group["windEnoughDifference"] = directionDiff >= significantDirectionDiff ||
			speedDiff >= significantSpeedDiff || becomesGusty

		if advancesBaseline(group) {
			baseDirection = direction
			baseSpeed = speed
		}
	}
}
