// Package jsontree provides pointer-aware traversal helpers over JSON values
// decoded into map[string]any / []any trees. Everything here is tolerant:
// nil nodes, scalars in unexpected places, and missing fields are skipped
// rather than reported.
package jsontree

// FoundField records a harvested object field: its name, the JSON Pointer of
// the object holding it, and the field's value.
type FoundField struct {
	Name    string
	Pointer string
	Value   any
}

// Harvest walks node collecting every object field whose name satisfies
// match. A matched field is recorded with the pointer of its parent object
// and is not descended into. When visitSubNodes is false only the top-level
// object is inspected. Arrays are transparent: their object and array
// elements are walked with index tokens appended to the pointer.
//
// Discovery order follows Go map iteration and is therefore unspecified;
// callers must treat the result as a set keyed by pointer.
func Harvest(node any, match func(name string) bool, visitSubNodes bool) []FoundField {
	if match == nil {
		match = func(string) bool { return true }
	}
	var found []FoundField
	harvest(node, match, "", &found, visitSubNodes)
	return found
}

func harvest(node any, match func(name string) bool, parent string, found *[]FoundField, visitSubNodes bool) {
	switch n := node.(type) {
	case map[string]any:
		for name, value := range n {
			if match(name) {
				*found = append(*found, FoundField{Name: name, Pointer: parent, Value: value})
			} else if visitSubNodes {
				harvest(value, match, AppendToken(parent, name), found, visitSubNodes)
			}
		}
	case []any:
		for i, child := range n {
			switch child.(type) {
			case map[string]any, []any:
				harvest(child, match, AppendIndex(parent, i), found, visitSubNodes)
			}
		}
	}
}
