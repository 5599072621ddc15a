package services

import (
	"house-price-predictor/artifacts"
	"house-price-predictor/models"
)

// Scaler applies the fitted standardization to an aligned vector.
type Scaler struct {
	fitted *artifacts.StandardScaler
	names  []string
}

// NewScaler wraps a fitted scaler.
func NewScaler(fitted *artifacts.StandardScaler) *Scaler {
	return &Scaler{fitted: fitted, names: fitted.FeatureNames()}
}

// Transform scales v. Its columns must match the fitted schema exactly,
// in count and in order.
func (s *Scaler) Transform(v models.FeatureVector) (models.FeatureVector, error) {
	if v.Len() != len(s.names) || len(v.Values) != len(s.names) {
		return models.FeatureVector{}, &FeatureShapeError{Stage: "scaler", Want: len(s.names), Got: v.Len()}
	}
	for i, name := range v.Names {
		if name != s.names[i] {
			return models.FeatureVector{}, &FeatureShapeError{Stage: "scaler", Want: len(s.names), Got: i, Field: name}
		}
	}

	scaled, err := s.fitted.Transform(v.Values)
	if err != nil {
		return models.FeatureVector{}, &FeatureShapeError{Stage: "scaler", Want: len(s.names), Got: len(v.Values)}
	}
	return models.FeatureVector{Names: append([]string(nil), v.Names...), Values: scaled}, nil
}
