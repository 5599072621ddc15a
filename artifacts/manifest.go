package artifacts

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Artifact keys used in the manifest.
const (
	KeyModel          = "model"
	KeyScaler         = "scaler"
	KeyOHETransaction = "ohe_transaction"
	KeyOHELocation    = "ohe_location"
	KeyLblFurnishing  = "lbl_furnishing"
	KeyLblOwnership   = "lbl_ownership"
)

// RequiredKeys lists every artifact a Set is built from.
var RequiredKeys = []string{
	KeyModel, KeyScaler, KeyOHETransaction, KeyOHELocation, KeyLblFurnishing, KeyLblOwnership,
}

// TargetLog1p is the only target transform the pipeline can invert.
const TargetLog1p = "log1p"

// Manifest describes one exported artifact set.
//
// ReferenceColumns lists scaler columns that no encoder emits by
// construction, such as the dropped reference level of a one-hot encoding.
// They are filled with 0 at inference time. Any other schema column the
// encoders cannot produce is schema drift.
type Manifest struct {
	Version          string            `yaml:"version"`
	TargetTransform  string            `yaml:"target_transform"`
	Artifacts        map[string]string `yaml:"artifacts"`
	ReferenceColumns []string          `yaml:"reference_columns"`
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if m.TargetTransform == "" {
		m.TargetTransform = TargetLog1p
	}
	if m.TargetTransform != TargetLog1p {
		return nil, fmt.Errorf("manifest: unsupported target_transform %q", m.TargetTransform)
	}
	if len(m.Artifacts) == 0 {
		return nil, errors.New("manifest: no artifacts listed")
	}
	for _, k := range RequiredKeys {
		if m.Artifacts[k] == "" {
			return nil, fmt.Errorf("manifest: artifact %q is not listed", k)
		}
	}
	return &m, nil
}

// IsReference reports whether column is a declared reference column.
func (m *Manifest) IsReference(column string) bool {
	for _, c := range m.ReferenceColumns {
		if c == column {
			return true
		}
	}
	return false
}
