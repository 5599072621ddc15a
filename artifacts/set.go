package artifacts

import (
	"encoding/json"
	"fmt"
)

// Set is one complete, immutable group of trained artifacts.
type Set struct {
	Manifest       *Manifest
	Model          Model
	Scaler         *StandardScaler
	OHETransaction *OneHotEncoder
	OHELocation    *OneHotEncoder
	LblFurnishing  *LabelEncoder
	LblOwnership   *LabelEncoder
}

// Version returns the manifest version, or "" when unknown.
func (s *Set) Version() string {
	if s.Manifest == nil {
		return ""
	}
	return s.Manifest.Version
}

// DecodeLabelEncoder parses and validates a label encoder document.
func DecodeLabelEncoder(data []byte) (*LabelEncoder, error) {
	var e LabelEncoder
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("label encoder: decode: %w", err)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// DecodeOneHotEncoder parses and validates a one-hot encoder document.
func DecodeOneHotEncoder(data []byte) (*OneHotEncoder, error) {
	var e OneHotEncoder
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("one-hot encoder: decode: %w", err)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// DecodeScaler parses and validates a standard scaler document. A scaler
// without feature_names_in yields ErrNoFeatureNames.
func DecodeScaler(data []byte) (*StandardScaler, error) {
	var s StandardScaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scaler: decode: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
