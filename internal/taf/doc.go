// Package taf enriches Terminal Aerodrome Forecast (TAF) documents with
// derived facts used by the second validation pass.
//
// # Document shape
//
// A TAF arrives as a JSON document decoded into map[string]any / []any trees:
//
//	validityStart, validityEnd  ISO-8601 UTC timestamps (2006-01-02T15:04:05Z)
//	forecast                    the base forecast
//	changegroups                ordered change groups, each with a changeType
//	                            (BECMG, TEMPO, PROB30, PROB40, "PROB30 TEMPO",
//	                            "PROB40 TEMPO"), changeStart/changeEnd and a
//	                            forecast of its own
//
// A forecast carries wind (direction/speed/gusts), visibility (value/unit),
// weather (the sentinel "NSW" or an array of weather groups with a descriptor
// and phenomena) and clouds (the sentinel "NSC" or an array of layers with a
// height and an optional CB/TCU modifier).
//
// # Enrichment
//
// Enrich applies eleven rules in a fixed order. Each rule walks the document,
// maintains a running baseline forecast where needed, and writes boolean or
// numeric facts next to the nodes they describe. PROB-type change groups
// describe probabilistic deviations: they are annotated like any other group
// but never become the new baseline.
//
// Every rule is tolerant. Missing nodes, unparseable timestamps, and values
// of the wrong type make a rule skip the node (or record a conservative
// false) rather than fail, so the enriched validation pass stays meaningful
// even when the structural pass already found defects. Rules only add keys,
// never remove them.
//
// # Quirks kept for schema compatibility
//
// The enriched schemas were written against the long-standing behavior of
// this engine, so three oddities are kept deliberately:
//
//   - visibility limits computed for a change group are written onto the base
//     forecast node, not the change group
//   - the gust baseline in the wind-change rule comes from the base forecast
//     once and is not advanced with the rest of the wind baseline
//   - repeatingChange is true when a change group repeats a baseline field
//     verbatim
package taf
