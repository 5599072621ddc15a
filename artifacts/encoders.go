package artifacts

import (
	"errors"
	"fmt"
)

// LabelEncoder maps a category to its index in Classes.
type LabelEncoder struct {
	Feature string   `json:"feature"`
	Classes []string `json:"classes"`
}

// Transform returns the trained code for value.
func (e *LabelEncoder) Transform(value string) (int, bool) {
	for i, c := range e.Classes {
		if c == value {
			return i, true
		}
	}
	return 0, false
}

// Vocabulary returns the known categories in code order.
func (e *LabelEncoder) Vocabulary() []string {
	return append([]string(nil), e.Classes...)
}

func (e *LabelEncoder) validate() error {
	if e.Feature == "" {
		return errors.New("label encoder: missing feature name")
	}
	if len(e.Classes) == 0 {
		return fmt.Errorf("label encoder %q: no classes", e.Feature)
	}
	return checkUnique(e.Feature, e.Classes)
}

// OneHotEncoder expands a category into indicator columns named
// "<feature>_<category>". When Drop is set, that category is the reference
// level and has no column of its own.
type OneHotEncoder struct {
	Feature    string   `json:"feature"`
	Categories []string `json:"categories"`
	Drop       string   `json:"drop,omitempty"`
}

// FeatureNames returns the output column names in encoder order.
func (e *OneHotEncoder) FeatureNames() []string {
	names := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		if c == e.Drop {
			continue
		}
		names = append(names, e.Feature+"_"+c)
	}
	return names
}

// DroppedColumn returns the column name the reference level would have had.
func (e *OneHotEncoder) DroppedColumn() (string, bool) {
	if e.Drop == "" {
		return "", false
	}
	return e.Feature + "_" + e.Drop, true
}

// Transform returns the indicator row for value, aligned with FeatureNames.
func (e *OneHotEncoder) Transform(value string) ([]float64, bool) {
	known := false
	row := make([]float64, 0, len(e.Categories))
	for _, c := range e.Categories {
		if c == value {
			known = true
		}
		if c == e.Drop {
			continue
		}
		if c == value {
			row = append(row, 1)
		} else {
			row = append(row, 0)
		}
	}
	if !known {
		return nil, false
	}
	return row, true
}

// Vocabulary returns the known categories, including the dropped one.
func (e *OneHotEncoder) Vocabulary() []string {
	return append([]string(nil), e.Categories...)
}

func (e *OneHotEncoder) validate() error {
	if e.Feature == "" {
		return errors.New("one-hot encoder: missing feature name")
	}
	if len(e.Categories) == 0 {
		return fmt.Errorf("one-hot encoder %q: no categories", e.Feature)
	}
	if err := checkUnique(e.Feature, e.Categories); err != nil {
		return err
	}
	if e.Drop != "" {
		for _, c := range e.Categories {
			if c == e.Drop {
				return nil
			}
		}
		return fmt.Errorf("one-hot encoder %q: drop category %q is not a known category", e.Feature, e.Drop)
	}
	return nil
}

func checkUnique(feature string, values []string) error {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			return fmt.Errorf("encoder %q: duplicate category %q", feature, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}
