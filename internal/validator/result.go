package validator

import (
	"time"

	"github.com/couchcryptid/taf-validation-service/internal/schema"
)

// NullReportMessage is the synthetic failure text used when the schema
// engine produced no report at all.
const NullReportMessage = "Validation report was null"

// Result is the outcome of validating one TAF.
//
// Errors maps instance JSON Pointers to human-readable messages and is
// populated only for failures found by the schemas. Message carries a
// synthetic failure (unparseable input, missing engine report) instead.
type Result struct {
	Succeeded   bool                `json:"succeeded"`
	Errors      map[string][]string `json:"errors,omitempty"`
	Message     string              `json:"message,omitempty"`
	ValidatedAt time.Time           `json:"validatedAt"`

	// Raw per-pass reports, for callers that want to inspect the engine
	// output. Not part of the wire form.
	StructuralReport *schema.Report `json:"-"`
	EnrichedReport   *schema.Report `json:"-"`
}

func success() *Result {
	return &Result{Succeeded: true, ValidatedAt: clock.Now().UTC()}
}

func failure(errors map[string][]string) *Result {
	return &Result{Succeeded: false, Errors: errors, ValidatedAt: clock.Now().UTC()}
}

func syntheticFailure(message string) *Result {
	return &Result{Succeeded: false, Message: message, ValidatedAt: clock.Now().UTC()}
}
