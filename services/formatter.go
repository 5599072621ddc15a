package services

import (
	"errors"
	"math"

	"house-price-predictor/models"
)

// TargetTransform is the transform applied to prices at training time.
func TargetTransform(price float64) float64 { return math.Log1p(price) }

// InverseTargetTransform undoes TargetTransform.
func InverseTargetTransform(logPrice float64) float64 { return math.Expm1(logPrice) }

// ResponseFormatter turns a raw model output into a price.
type ResponseFormatter struct {
	version string
}

// NewResponseFormatter creates a formatter that stamps results with the
// artifact version.
func NewResponseFormatter(version string) *ResponseFormatter {
	return &ResponseFormatter{version: version}
}

// Format inverts the target transform and packages the diagnostics. The
// price is neither rounded nor clamped.
func (f *ResponseFormatter) Format(encoded, scaled models.FeatureVector, logPrice float64) (*models.PredictionResult, error) {
	price := InverseTargetTransform(logPrice)
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return nil, &PredictionError{Err: errors.New("price overflows after inverse target transform")}
	}
	return &models.PredictionResult{
		Price:           price,
		LogPrice:        logPrice,
		ArtifactVersion: f.version,
		Diagnostics: models.Diagnostics{
			Encoded: encoded,
			Scaled:  scaled,
		},
	}, nil
}
