// Package validator runs the two-pass TAF validation pipeline: structural
// schema validation of the raw document, enrichment with derived aviation
// facts, and validation of the enriched document against a second schema.
// Errors from both passes are translated to human-readable messages keyed by
// instance pointer.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/couchcryptid/taf-validation-service/internal/observability"
	"github.com/couchcryptid/taf-validation-service/internal/schema"
	"github.com/couchcryptid/taf-validation-service/internal/taf"
)

// ErrNilReport signals that the schema engine produced no report at all.
var ErrNilReport = errors.New("validation report was null")

// Document is a domain object that can render itself as TAF JSON.
type Document interface {
	ToJSON() ([]byte, error)
}

// Schema roles resolved through the store.
const (
	roleStructural = "structural"
	roleEnriched   = "enriched"
	roleMeta       = "meta"
)

type cacheEntry struct {
	text     string
	compiled *schema.Compiled
}

// Validator validates TAF documents against the store's schemas. It is safe
// for concurrent use; compiled schemas are cached per role and recompiled
// only when the store serves different text.
type Validator struct {
	store   schema.Store
	logger  *slog.Logger
	metrics *observability.Metrics

	mu    sync.Mutex
	cache map[string]*cacheEntry
}

// New creates a Validator over the given schema store.
func New(store schema.Store, logger *slog.Logger, metrics *observability.Metrics) *Validator {
	return &Validator{
		store:   store,
		logger:  logger,
		metrics: metrics,
		cache:   make(map[string]*cacheEntry),
	}
}

// Validate serializes a domain object and validates the resulting JSON.
func (v *Validator) Validate(doc Document) (*Result, error) {
	raw, err := doc.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("serialize taf: %w", err)
	}
	return v.ValidateJSON(raw)
}

// ValidateJSON validates a raw TAF document. Domain rule violations land in
// the result; only schema store or compilation problems surface as errors.
func (v *Validator) ValidateJSON(raw []byte) (*Result, error) {
	start := time.Now()
	result, err := v.validate(raw)
	if err != nil {
		v.metrics.Validations.WithLabelValues("error").Inc()
		return nil, err
	}
	v.metrics.ValidationDuration.Observe(time.Since(start).Seconds())
	if result.Succeeded {
		v.metrics.Validations.WithLabelValues("accepted").Inc()
	} else {
		v.metrics.Validations.WithLabelValues("rejected").Inc()
	}
	return result, nil
}

func (v *Validator) validate(raw []byte) (*Result, error) {
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		v.logger.Warn("taf does not parse", "error", err)
		return syntheticFailure("Unable to parse TAF: " + err.Error()), nil
	}

	taf.RemoveTrailingEmptyChangeGroup(tree)

	structural, err := v.prepared(roleStructural)
	if err != nil {
		return nil, err
	}
	structuralReport := structural.Validate(tree)
	if structuralReport == nil {
		return syntheticFailure(NullReportMessage), nil
	}

	errorsByPath := map[string][]string{}
	if !structuralReport.IsSuccess() {
		errorsByPath = TranslateReport(structuralReport, structural.Messages)
	}

	enrichStart := time.Now()
	taf.Enrich(tree)
	v.metrics.EnrichmentDuration.Observe(time.Since(enrichStart).Seconds())

	enriched, err := v.prepared(roleEnriched)
	if err != nil {
		return nil, err
	}
	enrichedReport := enriched.Validate(tree)
	if enrichedReport == nil {
		result := syntheticFailure(NullReportMessage)
		result.StructuralReport = structuralReport
		return result, nil
	}

	if !enrichedReport.IsSuccess() {
		for path, messages := range TranslateReport(enrichedReport, enriched.Messages) {
			errorsByPath[path] = mergeMessages(errorsByPath[path], messages)
		}
	}

	var result *Result
	if structuralReport.IsSuccess() && enrichedReport.IsSuccess() {
		result = success()
	} else {
		result = failure(errorsByPath)
	}
	result.StructuralReport = structuralReport
	result.EnrichedReport = enrichedReport
	return result, nil
}

// ValidateSchema reports whether a schema, once its directives are stripped,
// satisfies the store's meta-schema.
func (v *Validator) ValidateSchema(rawSchema []byte) (bool, error) {
	var doc any
	if err := json.Unmarshal(rawSchema, &doc); err != nil {
		return false, fmt.Errorf("parse schema: %w", err)
	}
	schema.StripDirectives(doc)

	meta, err := v.prepared(roleMeta)
	if err != nil {
		return false, err
	}
	report := meta.Validate(doc)
	if report == nil {
		return false, ErrNilReport
	}
	return report.IsSuccess(), nil
}

// prepared returns the cached compiled schema for a role, recompiling when
// the store serves new text.
func (v *Validator) prepared(role string) (*schema.Compiled, error) {
	text, err := v.schemaText(role)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if entry, ok := v.cache[role]; ok && entry.text == text {
		return entry.compiled, nil
	}
	compiled, err := schema.Prepare(role+".json", text)
	if err != nil {
		v.metrics.SchemaCompileErrors.Inc()
		return nil, err
	}
	v.cache[role] = &cacheEntry{text: text, compiled: compiled}
	v.logger.Debug("compiled schema", "role", role)
	return compiled, nil
}

func (v *Validator) schemaText(role string) (string, error) {
	switch role {
	case roleStructural:
		return v.store.LatestStructuralSchema()
	case roleEnriched:
		return v.store.LatestEnrichedSchema()
	default:
		return v.store.MetaSchema()
	}
}

func mergeMessages(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, m := range existing {
		if _, ok := seen[m]; !ok {
			seen[m] = struct{}{}
			merged = append(merged, m)
		}
	}
	for _, m := range incoming {
		if _, ok := seen[m]; !ok {
			seen[m] = struct{}{}
			merged = append(merged, m)
		}
	}
	sort.Strings(merged)
	return merged
}
