package taf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func group(t *testing.T, doc map[string]any, i int) map[string]any {
	t.Helper()
	groups, ok := doc["changegroups"].([]any)
	require.True(t, ok, "changegroups missing")
	require.Greater(t, len(groups), i)
	g, ok := groups[i].(map[string]any)
	require.True(t, ok)
	return g
}

func forecast(t *testing.T, doc map[string]any) map[string]any {
	t.Helper()
	fc, ok := doc["forecast"].(map[string]any)
	require.True(t, ok)
	return fc
}

func TestChangegroupsAscending(t *testing.T) {
	t.Run("strictly increasing starts", func(t *testing.T) {
		doc := decode(t, `{
			"validityStart": "2024-04-26T06:00:00Z",
			"changegroups": [
				{"changeType": "BECMG", "changeStart": "2024-04-26T08:00:00Z"},
				{"changeType": "TEMPO", "changeStart": "2024-04-26T10:00:00Z"}
			]
		}`)
		augmentChangegroupsAscending(doc)
		assert.Equal(t, true, group(t, doc, 0)["changegroupsAscending"])
		assert.Equal(t, true, group(t, doc, 1)["changegroupsAscending"])
	})

	t.Run("equal starts at validity start are allowed", func(t *testing.T) {
		doc := decode(t, `{
			"validityStart": "2024-04-26T06:00:00Z",
			"changegroups": [
				{"changeType": "BECMG", "changeStart": "2024-04-26T06:00:00Z"},
				{"changeType": "TEMPO", "changeStart": "2024-04-26T06:00:00Z"}
			]
		}`)
		augmentChangegroupsAscending(doc)
		assert.Equal(t, true, group(t, doc, 0)["changegroupsAscending"])
		assert.Equal(t, true, group(t, doc, 1)["changegroupsAscending"])
	})

	t.Run("equal starts later in the period fail for BECMG", func(t *testing.T) {
		doc := decode(t, `{
			"validityStart": "2024-04-26T06:00:00Z",
			"changegroups": [
				{"changeType": "BECMG", "changeStart": "2024-04-26T09:00:00Z"},
				{"changeType": "BECMG", "changeStart": "2024-04-26T09:00:00Z"}
			]
		}`)
		augmentChangegroupsAscending(doc)
		assert.Equal(t, true, group(t, doc, 0)["changegroupsAscending"])
		assert.Equal(t, false, group(t, doc, 1)["changegroupsAscending"])
	})

	t.Run("PROB groups may share a start anywhere", func(t *testing.T) {
		doc := decode(t, `{
			"validityStart": "2024-04-26T06:00:00Z",
			"changegroups": [
				{"changeType": "BECMG", "changeStart": "2024-04-26T09:00:00Z"},
				{"changeType": "PROB30", "changeStart": "2024-04-26T09:00:00Z"}
			]
		}`)
		augmentChangegroupsAscending(doc)
		assert.Equal(t, true, group(t, doc, 1)["changegroupsAscending"])
	})

	t.Run("decreasing start fails", func(t *testing.T) {
		doc := decode(t, `{
			"validityStart": "2024-04-26T06:00:00Z",
			"changegroups": [
				{"changeType": "BECMG", "changeStart": "2024-04-26T10:00:00Z"},
				{"changeType": "BECMG", "changeStart": "2024-04-26T08:00:00Z"}
			]
		}`)
		augmentChangegroupsAscending(doc)
		assert.Equal(t, false, group(t, doc, 1)["changegroupsAscending"])
	})

	t.Run("unparseable start yields false", func(t *testing.T) {
		doc := decode(t, `{
			"validityStart": "2024-04-26T06:00:00Z",
			"changegroups": [{"changeType": "BECMG", "changeStart": "yesterday-ish"}]
		}`)
		augmentChangegroupsAscending(doc)
		assert.Equal(t, false, group(t, doc, 0)["changegroupsAscending"])
	})

	t.Run("unparseable validity start skips the rule", func(t *testing.T) {
		doc := decode(t, `{
			"validityStart": "not a time",
			"changegroups": [{"changeType": "BECMG", "changeStart": "2024-04-26T08:00:00Z"}]
		}`)
		augmentChangegroupsAscending(doc)
		assert.NotContains(t, group(t, doc, 0), "changegroupsAscending")
	})
}

func TestOverlappingBecoming(t *testing.T) {
	doc := decode(t, `{
		"changegroups": [
			{"changeType": "BECMG", "changeStart": "2024-04-26T10:00:00Z", "changeEnd": "2024-04-26T12:00:00Z"},
			{"changeType": "BECMG", "changeStart": "2024-04-26T11:00:00Z", "changeEnd": "2024-04-26T13:00:00Z"},
			{"changeType": "TEMPO", "changeStart": "2024-04-26T11:30:00Z", "changeEnd": "2024-04-26T14:00:00Z"},
			{"changeType": "BECMG", "changeStart": "2024-04-26T13:00:00Z", "changeEnd": "2024-04-26T15:00:00Z"}
		]
	}`)
	augmentOverlappingBecoming(doc)

	assert.Equal(t, false, group(t, doc, 0)["changegroupBecomingOverlaps"])
	assert.Equal(t, true, group(t, doc, 1)["changegroupBecomingOverlaps"])
	// TEMPO groups are not annotated by this rule.
	assert.NotContains(t, group(t, doc, 2), "changegroupBecomingOverlaps")
	// Start exactly at a prior end does not overlap.
	assert.Equal(t, false, group(t, doc, 3)["changegroupBecomingOverlaps"])
}

func TestChangegroupDuration(t *testing.T) {
	doc := decode(t, `{
		"validityEnd": "2024-04-27T06:00:00Z",
		"changegroups": [
			{"changeStart": "2024-04-26T10:00:00Z", "changeEnd": "2024-04-26T12:30:00Z"},
			{"changeStart": "2024-04-26T10:00:00Z"},
			{"changeStart": "2024-04-26T12:00:00Z", "changeEnd": "2024-04-26T10:00:00Z"}
		]
	}`)
	augmentChangegroupDuration(doc)

	assert.Equal(t, int64(2), group(t, doc, 0)["changeDurationInHours"])
	// Missing end falls back to the TAF validity end.
	assert.Equal(t, int64(20), group(t, doc, 1)["changeDurationInHours"])
	// Reversed times still yield a positive span.
	assert.Equal(t, int64(2), group(t, doc, 2)["changeDurationInHours"])
}

func TestEndTimes(t *testing.T) {
	doc := decode(t, `{
		"changegroups": [
			{"changeStart": "2024-04-26T10:00:00Z", "changeEnd": "2024-04-26T12:00:00Z"},
			{"changeStart": "2024-04-26T12:00:00Z", "changeEnd": "2024-04-26T12:00:00Z"},
			{"changeStart": "2024-04-26T12:00:00Z", "changeEnd": "2024-04-26T10:00:00Z"},
			{"changeStart": "2024-04-26T12:00:00Z"}
		]
	}`)
	augmentEndTimes(doc)

	assert.Equal(t, true, group(t, doc, 0)["endAfterStart"])
	assert.Equal(t, true, group(t, doc, 1)["endAfterStart"])
	assert.Equal(t, false, group(t, doc, 2)["endAfterStart"])
	assert.NotContains(t, group(t, doc, 3), "endAfterStart")
}

func TestWindGust(t *testing.T) {
	doc := decode(t, `{
		"forecast": {"wind": {"direction": 200, "speed": 10, "gusts": 25}},
		"changegroups": [
			{"forecast": {"wind": {"direction": 210, "speed": 15, "gusts": 20}}},
			{"forecast": {"wind": {"direction": 220, "speed": 15}}}
		]
	}`)
	augmentWindGust(doc)

	baseWind := forecast(t, doc)["wind"].(map[string]any)
	assert.Equal(t, true, baseWind["gustFastEnough"])

	firstWind := group(t, doc, 0)["forecast"].(map[string]any)["wind"].(map[string]any)
	assert.Equal(t, false, firstWind["gustFastEnough"])

	// No gusts, no annotation.
	secondWind := group(t, doc, 1)["forecast"].(map[string]any)["wind"].(map[string]any)
	assert.NotContains(t, secondWind, "gustFastEnough")
}

func TestEnoughWindChange(t *testing.T) {
	t.Run("direction change of 30 degrees is significant", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"wind": {"direction": 10, "speed": 10}},
			"changegroups": [
				{"changeType": "BECMG", "forecast": {"wind": {"direction": 40, "speed": 10}}}
			]
		}`)
		augmentEnoughWindChange(doc)
		g := group(t, doc, 0)
		assert.Equal(t, int64(30), g["directionDiff"])
		assert.Equal(t, 0, g["speedDiff"])
		assert.Equal(t, true, g["windEnoughDifference"])
	})

	t.Run("modular arc across north", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"wind": {"direction": 350, "speed": 10}},
			"changegroups": [
				{"changeType": "BECMG", "forecast": {"wind": {"direction": 10, "speed": 10}}}
			]
		}`)
		augmentEnoughWindChange(doc)
		g := group(t, doc, 0)
		assert.Equal(t, int64(20), g["directionDiff"])
		assert.Equal(t, false, g["windEnoughDifference"])
	})

	t.Run("PROB group does not advance the baseline", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"wind": {"direction": 0, "speed": 10}},
			"changegroups": [
				{"changeType": "PROB30", "forecast": {"wind": {"direction": 90, "speed": 10}}},
				{"changeType": "BECMG", "forecast": {"wind": {"direction": 30, "speed": 10}}}
			]
		}`)
		augmentEnoughWindChange(doc)
		assert.Equal(t, int64(90), group(t, doc, 0)["directionDiff"])
		// Measured from the base 0 degrees, not the PROB group's 90.
		assert.Equal(t, int64(30), group(t, doc, 1)["directionDiff"])
		assert.Equal(t, true, group(t, doc, 1)["windEnoughDifference"])
	})

	t.Run("speed change of 5 knots is significant", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"wind": {"direction": 100, "speed": 10}},
			"changegroups": [
				{"changeType": "BECMG", "forecast": {"wind": {"direction": 100, "speed": 15}}}
			]
		}`)
		augmentEnoughWindChange(doc)
		g := group(t, doc, 0)
		assert.Equal(t, 5, g["speedDiff"])
		assert.Equal(t, true, g["windEnoughDifference"])
	})

	t.Run("becoming gusty is significant", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"wind": {"direction": 100, "speed": 10, "gusts": 0}},
			"changegroups": [
				{"changeType": "BECMG", "forecast": {"wind": {"direction": 100, "speed": 10, "gusts": 25}}}
			]
		}`)
		augmentEnoughWindChange(doc)
		assert.Equal(t, true, group(t, doc, 0)["windEnoughDifference"])
	})

	t.Run("baseline without wind skips the rule", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {},
			"changegroups": [{"changeType": "BECMG", "forecast": {"wind": {"direction": 100, "speed": 10}}}]
		}`)
		augmentEnoughWindChange(doc)
		assert.NotContains(t, group(t, doc, 0), "windEnoughDifference")
	})
}

func TestAscendingClouds(t *testing.T) {
	t.Run("ascending heights", func(t *testing.T) {
		doc := decode(t, `{"forecast": {"clouds": [{"height": 10}, {"height": 20}, {"height": 20}]}}`)
		augmentAscendingClouds(doc)
		assert.Equal(t, true, forecast(t, doc)["cloudsAscending"])
	})

	t.Run("descending heights", func(t *testing.T) {
		doc := decode(t, `{"forecast": {"clouds": [{"height": 30}, {"height": 20}]}}`)
		augmentAscendingClouds(doc)
		assert.Equal(t, false, forecast(t, doc)["cloudsAscending"])
	})

	t.Run("NSC is trivially ascending", func(t *testing.T) {
		doc := decode(t, `{"forecast": {"clouds": "NSC"}}`)
		augmentAscendingClouds(doc)
		assert.Equal(t, true, forecast(t, doc)["cloudsAscending"])
	})

	t.Run("entries without heights are ignored", func(t *testing.T) {
		doc := decode(t, `{"forecast": {"clouds": [{"height": 10}, {"mod": "CB"}, {"height": 20}]}}`)
		augmentAscendingClouds(doc)
		assert.Equal(t, true, forecast(t, doc)["cloudsAscending"])
	})

	t.Run("annotates change groups independently", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"clouds": [{"height": 10}]},
			"changegroups": [{"forecast": {"clouds": [{"height": 40}, {"height": 20}]}}]
		}`)
		augmentAscendingClouds(doc)
		assert.Equal(t, true, forecast(t, doc)["cloudsAscending"])
		cf := group(t, doc, 0)["forecast"].(map[string]any)
		assert.Equal(t, false, cf["cloudsAscending"])
	})
}

func TestCloudNeededRainOrModifier(t *testing.T) {
	t.Run("showers require clouds and CB or TCU", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"weather": [{"descriptor": "showers", "phenomena": ["rain"]}],
			"clouds": [{"height": 20, "mod": "TCU"}]
		}}`)
		augmentCloudNeededRainOrModifier(doc)
		fc := forecast(t, doc)
		assert.Equal(t, true, fc["cloudsNeededAndPresent"])
		assert.Equal(t, true, fc["cloudsCBorTCUNeededAndPresent"])
		assert.NotContains(t, fc, "cloudsCBNeededAndPresent")
	})

	t.Run("showers with NSC clouds fail", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"weather": [{"descriptor": "showers", "phenomena": ["rain"]}],
			"clouds": "NSC"
		}}`)
		augmentCloudNeededRainOrModifier(doc)
		fc := forecast(t, doc)
		assert.Equal(t, false, fc["cloudsNeededAndPresent"])
		assert.Equal(t, false, fc["cloudsCBorTCUNeededAndPresent"])
	})

	t.Run("thunderstorm requires a CB layer", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"weather": [{"descriptor": "thunderstorm", "phenomena": ["rain"]}],
			"clouds": [{"height": 30, "mod": "CB"}]
		}}`)
		augmentCloudNeededRainOrModifier(doc)
		fc := forecast(t, doc)
		assert.Equal(t, true, fc["cloudsCBNeededAndPresent"])
		assert.Equal(t, true, fc["cloudsModifierHasWeatherPresent"])
	})

	t.Run("CB layer without rain or thunderstorm is flagged", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"weather": "NSW",
			"clouds": [{"height": 30, "mod": "CB"}]
		}}`)
		augmentCloudNeededRainOrModifier(doc)
		assert.Equal(t, false, forecast(t, doc)["cloudsModifierHasWeatherPresent"])
	})

	t.Run("no weather and no CB layer is fine", func(t *testing.T) {
		doc := decode(t, `{"forecast": {"clouds": [{"height": 30}]}}`)
		augmentCloudNeededRainOrModifier(doc)
		assert.Equal(t, true, forecast(t, doc)["cloudsModifierHasWeatherPresent"])
	})

	t.Run("missing base clouds skips the rule entirely", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"weather": [{"descriptor": "showers", "phenomena": ["rain"]}]},
			"changegroups": [{"forecast": {"weather": [{"descriptor": "showers"}], "clouds": "NSC"}}]
		}`)
		augmentCloudNeededRainOrModifier(doc)
		assert.NotContains(t, forecast(t, doc), "cloudsNeededAndPresent")
		cf := group(t, doc, 0)["forecast"].(map[string]any)
		assert.NotContains(t, cf, "cloudsNeededAndPresent")
	})
}

func TestVisibilityWeatherRequired(t *testing.T) {
	t.Run("low visibility needs weather", func(t *testing.T) {
		doc := decode(t, `{"forecast": {"visibility": {"value": 4000}}}`)
		augmentVisibilityWeatherRequired(doc)
		assert.Equal(t, false, forecast(t, doc)["visibilityWeatherRequiredAndPresent"])
	})

	t.Run("low visibility with weather present", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"visibility": {"value": 4000},
			"weather": [{"phenomena": ["mist"]}]
		}}`)
		augmentVisibilityWeatherRequired(doc)
		assert.Equal(t, true, forecast(t, doc)["visibilityWeatherRequiredAndPresent"])
	})

	t.Run("good visibility needs nothing", func(t *testing.T) {
		doc := decode(t, `{"forecast": {"visibility": {"value": 9999}}}`)
		augmentVisibilityWeatherRequired(doc)
		assert.NotContains(t, forecast(t, doc), "visibilityWeatherRequiredAndPresent")
	})

	t.Run("change group inherits baseline visibility", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"visibility": {"value": 4000}, "weather": [{"phenomena": ["mist"]}]},
			"changegroups": [{"changeType": "BECMG", "forecast": {"weather": "NSW"}}]
		}`)
		augmentVisibilityWeatherRequired(doc)
		assert.Equal(t, false, group(t, doc, 0)["visibilityWeatherRequiredAndPresent"])
	})

	t.Run("change group inherits baseline weather", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"visibility": {"value": 9000}, "weather": [{"phenomena": ["mist"]}]},
			"changegroups": [{"changeType": "BECMG", "forecast": {"visibility": {"value": 3000}}}]
		}`)
		augmentVisibilityWeatherRequired(doc)
		assert.Equal(t, true, group(t, doc, 0)["visibilityWeatherRequiredAndPresent"])
	})
}

func TestMaxVisibility(t *testing.T) {
	t.Run("fog requires visibility under 1000", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"visibility": {"value": 800},
			"weather": [{"phenomena": ["fog"]}]
		}}`)
		augmentMaxVisibility(doc)
		assert.Equal(t, true, forecast(t, doc)["visibilityWithinLimit"])
	})

	t.Run("fog with high visibility fails", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"visibility": {"value": 2000},
			"weather": [{"phenomena": ["fog"]}]
		}}`)
		augmentMaxVisibility(doc)
		assert.Equal(t, false, forecast(t, doc)["visibilityWithinLimit"])
	})

	t.Run("shallow fog requires visibility above 1000", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"visibility": {"value": 2000},
			"weather": [{"descriptor": "shallow", "phenomena": ["fog"]}]
		}}`)
		augmentMaxVisibility(doc)
		assert.Equal(t, true, forecast(t, doc)["visibilityWithinLimit"])
	})

	t.Run("freezing fog has no visibility constraint", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"visibility": {"value": 9999},
			"weather": [{"descriptor": "freezing", "phenomena": ["fog"]}]
		}}`)
		augmentMaxVisibility(doc)
		assert.Equal(t, true, forecast(t, doc)["visibilityWithinLimit"])
	})

	t.Run("mist requires 1000 to 5000", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"visibility": {"value": 800},
			"weather": [{"phenomena": ["mist"]}]
		}}`)
		augmentMaxVisibility(doc)
		assert.Equal(t, false, forecast(t, doc)["visibilityWithinLimit"])
	})

	t.Run("smoke requires under 5000", func(t *testing.T) {
		doc := decode(t, `{"forecast": {
			"visibility": {"value": 4000},
			"weather": [{"phenomena": ["smoke"]}]
		}}`)
		augmentMaxVisibility(doc)
		assert.Equal(t, true, forecast(t, doc)["visibilityWithinLimit"])
	})

	t.Run("change group verdict lands on the base forecast", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"visibility": {"value": 800}, "weather": [{"phenomena": ["fog"]}]},
			"changegroups": [{
				"changeType": "BECMG",
				"forecast": {"visibility": {"value": 3000}, "weather": [{"phenomena": ["haze"]}]}
			}]
		}`)
		augmentMaxVisibility(doc)
		// The change group's haze verdict overwrites the base fog verdict in
		// place on the base forecast node.
		assert.Equal(t, true, forecast(t, doc)["visibilityWithinLimit"])
		assert.NotContains(t, group(t, doc, 0)["forecast"].(map[string]any), "visibilityWithinLimit")
	})
}

func TestNonRepeatingChanges(t *testing.T) {
	t.Run("identical wind repeats", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"wind": {"direction": 100, "speed": 10}},
			"changegroups": [{"changeType": "BECMG", "forecast": {"wind": {"direction": 100, "speed": 10}}}]
		}`)
		augmentNonRepeatingChanges(doc)
		assert.Equal(t, true, group(t, doc, 0)["repeatingChange"])
	})

	t.Run("different wind does not repeat", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"wind": {"direction": 100, "speed": 10}},
			"changegroups": [{"changeType": "BECMG", "forecast": {"wind": {"direction": 200, "speed": 10}}}]
		}`)
		augmentNonRepeatingChanges(doc)
		assert.Equal(t, false, group(t, doc, 0)["repeatingChange"])
	})

	t.Run("missing base weather becomes NSW and matches explicit NSW", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"wind": {"direction": 100, "speed": 10}},
			"changegroups": [{"changeType": "BECMG", "forecast": {"weather": "NSW"}}]
		}`)
		augmentNonRepeatingChanges(doc)
		assert.Equal(t, "NSW", forecast(t, doc)["weather"])
		assert.Equal(t, true, group(t, doc, 0)["repeatingChange"])
	})

	t.Run("baseline advances past non-PROB groups", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"visibility": {"value": 5000}},
			"changegroups": [
				{"changeType": "BECMG", "forecast": {"visibility": {"value": 8000}}},
				{"changeType": "TEMPO", "forecast": {"visibility": {"value": 8000}}}
			]
		}`)
		augmentNonRepeatingChanges(doc)
		assert.Equal(t, false, group(t, doc, 0)["repeatingChange"])
		assert.Equal(t, true, group(t, doc, 1)["repeatingChange"])
	})

	t.Run("PROB group leaves the baseline alone", func(t *testing.T) {
		doc := decode(t, `{
			"forecast": {"visibility": {"value": 5000}},
			"changegroups": [
				{"changeType": "PROB30", "forecast": {"visibility": {"value": 8000}}},
				{"changeType": "BECMG", "forecast": {"visibility": {"value": 5000}}}
			]
		}`)
		augmentNonRepeatingChanges(doc)
		assert.Equal(t, false, group(t, doc, 0)["repeatingChange"])
		assert.Equal(t, true, group(t, doc, 1)["repeatingChange"])
	})
}

// Enrich must cope with arbitrary JSON without panicking or dropping keys.
func TestEnrichTolerance(t *testing.T) {
	inputs := []string{
		`{}`,
		`null`,
		`"just a string"`,
		`[1, 2, 3]`,
		`{"forecast": "not an object"}`,
		`{"changegroups": "not an array"}`,
		`{"changegroups": [null, "scalar", 42]}`,
		`{"forecast": {"wind": "calm", "clouds": 17, "weather": {"odd": true}}}`,
		`{"validityStart": "garbage", "changegroups": [{"changeType": "BECMG"}]}`,
	}
	for _, in := range inputs {
		var doc any
		require.NoError(t, json.Unmarshal([]byte(in), &doc))
		assert.NotPanics(t, func() { Enrich(doc) }, "input: %s", in)
	}
}

func TestEnrichPreservesUnknownFields(t *testing.T) {
	doc := decode(t, `{
		"uuid": "abc-123",
		"metadata": {"issuedBy": "EHAM"},
		"validityStart": "2024-04-26T06:00:00Z",
		"validityEnd": "2024-04-27T06:00:00Z",
		"forecast": {"wind": {"direction": 100, "speed": 10, "customTag": 7}},
		"changegroups": [{"changeType": "BECMG", "changeStart": "2024-04-26T08:00:00Z", "forecast": {"wind": {"direction": 140, "speed": 10}}}]
	}`)
	Enrich(doc)

	assert.Equal(t, "abc-123", doc["uuid"])
	assert.Equal(t, map[string]any{"issuedBy": "EHAM"}, doc["metadata"])
	wind := forecast(t, doc)["wind"].(map[string]any)
	assert.Equal(t, float64(7), wind["customTag"])
}
