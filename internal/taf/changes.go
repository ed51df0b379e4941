package taf

import "reflect"

// augmentNonRepeatingChanges flags change groups that repeat a baseline
// field verbatim. A base forecast without weather implicitly means "no
// significant weather", so the sentinel is written in before comparing.
// repeatingChange is true when the group's wind, visibility, weather, or
// clouds equals the corresponding baseline value.
func augmentNonRepeatingChanges(doc any) {
	baseline := forecastOf(doc)
	if baseline == nil {
		return
	}
	if w, ok := baseline["weather"]; !ok || w == nil {
		baseline["weather"] = "NSW"
	}

	for _, g := range changeGroupsOf(doc) {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		changeForecast, ok := group["forecast"].(map[string]any)
		if !ok {
			continue
		}
		repeating := false
		for _, field := range []string{"wind", "visibility", "weather", "clouds"} {
			baseValue, ok := baseline[field]
			if !ok || baseValue == nil {
				continue
			}
			if reflect.DeepEqual(baseValue, changeForecast[field]) {
				repeating = true
			}
		}
		group["repeatingChange"] = repeating

		if advancesBaseline(group) {
			baseline = changeForecast
		}
	}
}
