package taf

import (
	"github.com/couchcryptid/taf-validation-service/internal/jsontree"
)

// lowVisibilityThreshold is the visibility in meters at or below which the
// weather causing the obstruction must be reported.
const lowVisibilityThreshold = 5000

// augmentVisibilityWeatherRequired enforces that low visibility comes with a
// weather group. Change groups inherit visibility and weather from the
// running baseline when they carry none of their own; visibility is resolved
// with a recursive find, so a change group's nested forecast visibility
// satisfies the lookup.
func augmentVisibilityWeatherRequired(doc any) {
	fc := forecastOf(doc)
	if fc == nil {
		return
	}
	baselineWeather := fc["weather"]
	baselineVisibility := jsontree.FindValue(fc, "visibility")

	if value, ok := intField(baselineVisibility, "value"); ok && value <= lowVisibilityThreshold {
		_, weatherIsArray := baselineWeather.([]any)
		fc["visibilityWeatherRequiredAndPresent"] = weatherIsArray
	}

	for _, g := range changeGroupsOf(doc) {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		visibility := jsontree.FindValue(group, "visibility")
		if _, ok := intField(visibility, "value"); !ok {
			visibility = baselineVisibility
		}
		weather := jsontree.FindValue(group, "weather")
		if weather == nil {
			weather = baselineWeather
		}

		if value, ok := intField(visibility, "value"); ok && value <= lowVisibilityThreshold {
			_, weatherIsArray := weather.([]any)
			group["visibilityWeatherRequiredAndPresent"] = weatherIsArray
		}

		if advancesBaseline(group) {
			if weather != nil {
				baselineWeather = weather
			}
			if visibility != nil {
				baselineVisibility = visibility
			}
		}
	}
}

// augmentMaxVisibility checks obstruction-specific visibility ranges: fog,
// smoke-like obstructions, mist, and haze each constrain the reported
// visibility differently. Results for change groups are written onto the
// base forecast node; the enriched schema reads them there.
func augmentMaxVisibility(doc any) {
	fc := forecastOf(doc)
	if fc == nil {
		return
	}
	baselineWeather := fc["weather"]
	baselineVisibility := fc["visibility"]

	if weatherGroups, ok := baselineWeather.([]any); ok {
		if value, ok := intField(baselineVisibility, "value"); ok {
			annotateVisibilityLimits(fc, weatherGroups, value)
		}
	}

	for _, g := range changeGroupsOf(doc) {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		changeForecast, ok := group["forecast"].(map[string]any)
		if !ok {
			return
		}
		weather := changeForecast["weather"]
		visibility := changeForecast["visibility"]
		if weather == nil && visibility == nil {
			return
		}
		if weather == nil {
			weather = baselineWeather
		}
		if visibility == nil {
			visibility = baselineVisibility
		}
		if weather == nil || visibility == nil {
			continue
		}
		value, ok := intField(visibility, "value")
		if !ok {
			continue
		}
		if weatherGroups, ok := weather.([]any); ok {
			annotateVisibilityLimits(fc, weatherGroups, value)
		}

		if advancesBaseline(group) {
			baselineWeather = weather
			baselineVisibility = visibility
		}
	}
}

// annotateVisibilityLimits applies the obstruction table to one forecast's
// weather groups. Later weather groups overwrite the verdict of earlier
// ones.
func annotateVisibilityLimits(target map[string]any, weatherGroups []any, visibility int) {
	for _, wg := range weatherGroups {
		group, ok := wg.(map[string]any)
		if !ok {
			continue
		}
		phenomena, ok := group["phenomena"].([]any)
		if !ok {
			continue
		}
		if hasPhenomenon(phenomena, "fog") {
			if descriptor, ok := group["descriptor"]; !ok {
				target["visibilityWithinLimit"] = visibility < 1000
			} else if text(descriptor) == "shallow" {
				target["visibilityWithinLimit"] = visibility > 1000
			} else {
				target["visibilityWithinLimit"] = true
			}
		}
		if hasPhenomenon(phenomena, "smoke", "dust", "sand", "volcanic ash") {
			target["visibilityWithinLimit"] = visibility < 5000
		}
		if hasPhenomenon(phenomena, "mist") {
			target["visibilityWithinLimit"] = visibility >= 1000 && visibility <= 5000
		}
		if hasPhenomenon(phenomena, "haze") {
			target["visibilityWithinLimit"] = visibility <= 5000
		}
	}
}
