package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Compiled pairs an engine-compiled schema with the custom messages that
// were extracted from it before compilation.
type Compiled struct {
	schema   *jsonschema.Schema
	Messages MessageMap
}

// Prepare decodes schema text, extracts and strips the GeoWeb directives,
// and compiles the cleansed schema under the given resource name.
func Prepare(name, schemaText string) (*Compiled, error) {
	var doc any
	if err := json.Unmarshal([]byte(schemaText), &doc); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}
	messages := ExtractMessages(doc)

	cleansed, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode cleansed schema %s: %w", name, err)
	}
	compiled, err := compile(name, string(cleansed))
	if err != nil {
		return nil, err
	}
	return &Compiled{schema: compiled, Messages: messages}, nil
}

func compile(name, schemaText string) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft4
	if err := c.AddResource(name, strings.NewReader(schemaText)); err != nil {
		return nil, fmt.Errorf("add schema resource %s: %w", name, err)
	}
	compiled, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return compiled, nil
}

// Validate runs a decoded document through the compiled schema and converts
// the engine's error tree into the hierarchical report shape. A nil report
// means the engine failed in a way that produced no findings at all.
func (c *Compiled) Validate(doc any) *Report {
	err := c.schema.Validate(doc)
	if err == nil {
		return &Report{success: true}
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	return &Report{Findings: []*ReportNode{convertError(ve)}}
}

// convertError maps a ValidationError to a report node. The absolute keyword
// location carries both the schema pointer (its parent) and the failing
// keyword (its last token).
func convertError(ve *jsonschema.ValidationError) *ReportNode {
	node := &ReportNode{
		Instance: &PointerRef{Pointer: ve.InstanceLocation},
	}
	if pointer, keyword, ok := splitKeywordLocation(ve.AbsoluteKeywordLocation); ok {
		node.Schema = &PointerRef{Pointer: pointer}
		node.Keyword = keyword
	}
	if len(ve.Causes) > 0 {
		node.Reports = make(map[string]*ReportNode, len(ve.Causes))
		for _, cause := range ve.Causes {
			key := cause.KeywordLocation + "@" + cause.InstanceLocation
			node.Reports[key] = convertError(cause)
		}
	}
	return node
}

// splitKeywordLocation splits "res.json#/definitions/wind/minimum" into the
// schema pointer "/definitions/wind" and the keyword "minimum".
func splitKeywordLocation(location string) (pointer, keyword string, ok bool) {
	_, fragment, found := strings.Cut(location, "#")
	if !found || fragment == "" || fragment == "/" {
		return "", "", false
	}
	idx := strings.LastIndex(fragment, "/")
	if idx < 0 {
		return "", "", false
	}
	return fragment[:idx], fragment[idx+1:], true
}
