package services

import (
	"errors"
	"fmt"
	"strings"

	"house-price-predictor/models"
)

// Error kinds reported to callers alongside the message.
const (
	KindUnknownCategory = "unknown_category"
	KindArtifactSchema  = "artifact_schema"
	KindFeatureShape    = "feature_shape"
	KindPrediction      = "prediction"
	KindInvalidInput    = "invalid_input"
	KindInternal        = "internal"
)

// UnknownCategoryError is returned when a categorical value is outside the
// vocabulary its encoder was trained on. The user can correct it.
type UnknownCategoryError struct {
	Attribute string
	Value     string
	Known     []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s %q (expected one of: %s)", e.Attribute, e.Value, strings.Join(e.Known, ", "))
}

func (e *UnknownCategoryError) Kind() string { return KindUnknownCategory }

// ArtifactSchemaError means the loaded artifacts lack or disagree on schema
// metadata. It indicates a broken deployment.
type ArtifactSchemaError struct {
	Artifact string
	Reason   string
	Err      error
}

func (e *ArtifactSchemaError) Error() string {
	msg := fmt.Sprintf("artifact %s: %s", e.Artifact, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ArtifactSchemaError) Unwrap() error { return e.Err }

func (e *ArtifactSchemaError) Kind() string { return KindArtifactSchema }

// FeatureShapeError means a vector reached a positional stage with the wrong
// columns. It indicates a programming error in how stages are composed.
type FeatureShapeError struct {
	Stage string
	Want  int
	Got   int
	Field string
}

func (e *FeatureShapeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: feature shape mismatch at column %d: got %q", e.Stage, e.Got, e.Field)
	}
	return fmt.Sprintf("%s: feature shape mismatch: want %d columns, got %d", e.Stage, e.Want, e.Got)
}

func (e *FeatureShapeError) Kind() string { return KindFeatureShape }

// PredictionError wraps any failure inside model evaluation.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string { return "prediction failed: " + e.Err.Error() }

func (e *PredictionError) Unwrap() error { return e.Err }

func (e *PredictionError) Kind() string { return KindPrediction }

// KindOf returns the category tag for err.
func KindOf(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return KindInvalidInput
	}
	return KindInternal
}

// IsUserError reports whether err can be fixed by changing the input.
func IsUserError(err error) bool {
	switch KindOf(err) {
	case KindUnknownCategory, KindInvalidInput:
		return true
	}
	return false
}
