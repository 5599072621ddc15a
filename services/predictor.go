package services

import (
	"errors"
	"fmt"
	"math"

	"house-price-predictor/artifacts"
	"house-price-predictor/models"
)

// Predictor evaluates the regression model, yielding a log-price.
type Predictor struct {
	model artifacts.Model
}

// NewPredictor wraps a loaded model.
func NewPredictor(model artifacts.Model) *Predictor {
	return &Predictor{model: model}
}

// Predict returns the model output for the scaled vector v. Any failure,
// including a panic inside the model or a non-finite output, is reported
// as a PredictionError.
func (p *Predictor) Predict(v models.FeatureVector) (y float64, err error) {
	if want := p.model.NumFeatures(); len(v.Values) != want {
		return 0, &FeatureShapeError{Stage: "predictor", Want: want, Got: len(v.Values)}
	}

	defer func() {
		if r := recover(); r != nil {
			y, err = 0, &PredictionError{Err: fmt.Errorf("model panicked: %v", r)}
		}
	}()

	y, err = p.model.Predict(v.Values)
	if err != nil {
		return 0, &PredictionError{Err: err}
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, &PredictionError{Err: errors.New("model returned a non-finite value")}
	}
	return y, nil
}
