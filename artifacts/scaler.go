package artifacts

import (
	"errors"
	"fmt"
)

// ErrNoFeatureNames is returned when a scaler was exported without its
// fitted column list.
var ErrNoFeatureNames = errors.New("scaler: feature_names_in is missing")

// StandardScaler applies (x - mean) / scale column by column.
type StandardScaler struct {
	FeatureNamesIn []string  `json:"feature_names_in"`
	Mean           []float64 `json:"mean"`
	Scale          []float64 `json:"scale"`
}

// FeatureNames returns the fitted column order.
func (s *StandardScaler) FeatureNames() []string {
	return append([]string(nil), s.FeatureNamesIn...)
}

// Transform scales x positionally. len(x) must equal len(FeatureNamesIn).
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.FeatureNamesIn) {
		return nil, fmt.Errorf("scaler: got %d values, fitted on %d", len(x), len(s.FeatureNamesIn))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}

func (s *StandardScaler) validate() error {
	if len(s.FeatureNamesIn) == 0 {
		return ErrNoFeatureNames
	}
	n := len(s.FeatureNamesIn)
	if len(s.Mean) != n || len(s.Scale) != n {
		return fmt.Errorf("scaler: %d feature names but %d means and %d scales", n, len(s.Mean), len(s.Scale))
	}
	seen := make(map[string]struct{}, n)
	for _, name := range s.FeatureNamesIn {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("scaler: duplicate feature name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
