package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/taf-validation-service/internal/validator"
)

// TAFTransformer implements Transformer by running each message through the
// two-pass validator.
type TAFTransformer struct {
	validator *validator.Validator
	logger    *slog.Logger
}

// NewTransformer creates a TAFTransformer.
func NewTransformer(v *validator.Validator, logger *slog.Logger) *TAFTransformer {
	return &TAFTransformer{validator: v, logger: logger}
}

func (t *TAFTransformer) Transform(_ context.Context, raw RawDocument) (OutputReport, error) {
	result, err := t.validator.ValidateJSON(raw.Value)
	if err != nil {
		return OutputReport{}, fmt.Errorf("validate taf: %w", err)
	}

	value, err := json.Marshal(result)
	if err != nil {
		return OutputReport{}, fmt.Errorf("serialize validation result: %w", err)
	}

	return OutputReport{
		Key:   raw.Key,
		Value: value,
		Headers: map[string]string{
			"succeeded":    strconv.FormatBool(result.Succeeded),
			"validated_at": result.ValidatedAt.Format(time.RFC3339),
		},
	}, nil
}
