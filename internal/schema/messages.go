package schema

import (
	"strings"

	"github.com/couchcryptid/taf-validation-service/internal/jsontree"
)

const (
	// DirectivePrefix marks schema fields that carry GeoWeb directives
	// rather than JSON-Schema keywords. Directives must be stripped before
	// a schema is handed to the engine.
	DirectivePrefix = "$geoweb::"

	// MessagesDirective is the only defined directive: an object mapping
	// JSON-Schema keywords to human-readable error messages for the schema
	// node it sits in.
	MessagesDirective = DirectivePrefix + "messages"
)

// MessageMap maps a schema JSON Pointer to the keyword→message pairs defined
// at that point, e.g.
//
//	/definitions/vertical_visibility → minimum → "Vertical visibility must be at least 0 meters"
type MessageMap map[string]map[string]string

// ExtractMessages harvests every message directive from a decoded schema,
// records it under the pointer of the schema node holding it, and strips all
// directive fields in place so the remaining document is a plain JSON
// Schema.
func ExtractMessages(schemaDoc any) MessageMap {
	found := jsontree.Harvest(schemaDoc, func(name string) bool {
		return name == MessagesDirective
	}, true)

	messages := make(MessageMap, len(found))
	for _, f := range found {
		raw, ok := f.Value.(map[string]any)
		if !ok {
			continue
		}
		byKeyword := make(map[string]string, len(raw))
		for keyword, msg := range raw {
			if s, ok := msg.(string); ok {
				byKeyword[keyword] = s
			}
		}
		messages[f.Pointer] = byKeyword
	}

	StripDirectives(schemaDoc)
	return messages
}

// StripDirectives removes every field starting with the directive prefix
// anywhere in the document.
func StripDirectives(node any) {
	switch n := node.(type) {
	case map[string]any:
		for name, value := range n {
			if strings.HasPrefix(name, DirectivePrefix) {
				delete(n, name)
				continue
			}
			StripDirectives(value)
		}
	case []any:
		for _, child := range n {
			StripDirectives(child)
		}
	}
}
