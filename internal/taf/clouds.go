package taf

import (
	"github.com/couchcryptid/taf-validation-service/internal/jsontree"
)

// augmentAscendingClouds marks every node with a clouds child. A textual
// value ("NSC") is trivially ascending; an array is ascending when the
// parseable layer heights never decrease.
func augmentAscendingClouds(doc any) {
	for _, parent := range jsontree.FindParents(doc, "clouds") {
		layers, ok := parent["clouds"].([]any)
		if !ok {
			parent["cloudsAscending"] = true
			continue
		}
		prevHeight := 0
		ascending := true
		for _, layer := range layers {
			cloud, ok := layer.(map[string]any)
			if !ok {
				continue
			}
			heightNode := jsontree.FindValue(cloud, "height")
			if heightNode == nil {
				continue
			}
			height, ok := jsontree.AsInt(heightNode)
			if !ok {
				continue
			}
			if ascending && height < prevHeight {
				ascending = false
			}
			prevHeight = height
		}
		parent["cloudsAscending"] = ascending
	}
}

// augmentCloudNeededRainOrModifier checks, per forecast, that the cloud
// situation matches the weather: showers require clouds (and a CB or TCU
// layer), thunderstorms require a CB layer, and a CB layer without a showers
// or thunderstorm descriptor in the weather is itself flagged (a rain
// phenomenon alone does not count). The base forecast's clouds
// must be present for the rule to run at all.
func augmentCloudNeededRainOrModifier(doc any) {
	fc := forecastOf(doc)
	if fc == nil {
		return
	}
	if clouds, ok := fc["clouds"]; !ok || clouds == nil {
		return
	}
	annotateWeatherCloudFacts(fc, fc["weather"], fc["clouds"])

	for _, g := range changeGroupsOf(doc) {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		changeForecast, ok := group["forecast"].(map[string]any)
		if !ok {
			continue
		}
		annotateWeatherCloudFacts(changeForecast, changeForecast["weather"], changeForecast["clouds"])
	}
}

// annotateWeatherCloudFacts writes the cloud/weather consistency facts onto a
// single forecast node.
func annotateWeatherCloudFacts(forecast map[string]any, weather, clouds any) {
	cloudLayers, cloudsIsArray := clouds.([]any)

	weatherGroups, weatherIsArray := weather.([]any)
	if !weatherIsArray || len(weatherGroups) == 0 {
		// No weather, NSW, or an empty group list: a CB layer has nothing
		// justifying it.
		if cloudsIsArray {
			forecast["cloudsModifierHasWeatherPresent"] = !anyCloudMod(cloudLayers, "CB")
		}
		return
	}

	requiresClouds := false
	requiresCB := false
	requiresCBorTCU := false
	rainOrThunderstormPresent := false
	for _, wg := range weatherGroups {
		group, ok := wg.(map[string]any)
		if !ok {
			continue
		}
		switch text(group["descriptor"]) {
		case "showers":
			requiresClouds = true
			requiresCBorTCU = true
			rainOrThunderstormPresent = true
		case "thunderstorm":
			requiresCB = true
			rainOrThunderstormPresent = true
		}
	}

	if requiresClouds {
		forecast["cloudsNeededAndPresent"] = cloudsIsArray && len(cloudLayers) > 0
	}
	if requiresCB {
		forecast["cloudsCBNeededAndPresent"] = cloudsIsArray && anyCloudMod(cloudLayers, "CB")
	}
	if requiresCBorTCU {
		forecast["cloudsCBorTCUNeededAndPresent"] = cloudsIsArray && anyCloudMod(cloudLayers, "CB", "TCU")
	}
	if cloudsIsArray && anyCloudMod(cloudLayers, "CB") {
		forecast["cloudsModifierHasWeatherPresent"] = rainOrThunderstormPresent
	}
}
