package services

import (
	"house-price-predictor/artifacts"
	"house-price-predictor/models"
)

// Numeric and label-encoded columns, in the order the training frame built them.
var baseColumns = []string{"bhk", "bathroom", "balcony", "total_sqft", "furnishing", "ownership"}

// SchemaAligner merges the numeric attributes and encoded categories into
// one vector laid out exactly like the scaler's fitted schema.
//
// Schema columns missing from the merged encoding are filled with 0. The
// store's load-time check guarantees every such column is a declared
// reference column (see CheckSchema), so at request time a zero fill always
// means "reference category".
type SchemaAligner struct {
	expected []string
}

// NewSchemaAligner reads the expected column order from the fitted scaler.
func NewSchemaAligner(scaler *artifacts.StandardScaler) (*SchemaAligner, error) {
	if scaler == nil {
		return nil, &ArtifactSchemaError{Artifact: artifacts.KeyScaler, Reason: "scaler is not loaded"}
	}
	names := scaler.FeatureNames()
	if len(names) == 0 {
		return nil, &ArtifactSchemaError{Artifact: artifacts.KeyScaler, Reason: "expected feature names are missing", Err: artifacts.ErrNoFeatureNames}
	}
	return &SchemaAligner{expected: names}, nil
}

// ExpectedColumns returns a copy of the fitted column order.
func (a *SchemaAligner) ExpectedColumns() []string {
	return append([]string(nil), a.expected...)
}

// Merge concatenates numeric attributes, label codes and one-hot rows.
func (a *SchemaAligner) Merge(in models.RawInput, enc Encoded) models.FeatureVector {
	n := len(baseColumns) + enc.Transaction.Len() + enc.Location.Len()
	v := models.FeatureVector{
		Names:  make([]string, 0, n),
		Values: make([]float64, 0, n),
	}
	v.Names = append(v.Names, baseColumns...)
	v.Values = append(v.Values,
		float64(in.BHK), float64(in.Bathroom), float64(in.Balcony), in.TotalSqft,
		enc.Furnishing, enc.Ownership)
	v.Names = append(v.Names, enc.Transaction.Names...)
	v.Values = append(v.Values, enc.Transaction.Values...)
	v.Names = append(v.Names, enc.Location.Names...)
	v.Values = append(v.Values, enc.Location.Values...)
	return v
}

// Align reorders union to the expected columns, inserting 0 for absent
// columns and dropping columns the schema does not know.
func (a *SchemaAligner) Align(union models.FeatureVector) models.FeatureVector {
	index := make(map[string]int, union.Len())
	for i, name := range union.Names {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	out := models.FeatureVector{
		Names:  a.ExpectedColumns(),
		Values: make([]float64, len(a.expected)),
	}
	for i, name := range a.expected {
		if j, ok := index[name]; ok {
			out.Values[i] = union.Values[j]
		}
	}
	return out
}

// ProducibleColumns lists every column the encoders of set can emit.
func ProducibleColumns(set *artifacts.Set) []string {
	cols := append([]string(nil), baseColumns...)
	cols = append(cols, set.OHETransaction.FeatureNames()...)
	cols = append(cols, set.OHELocation.FeatureNames()...)
	return cols
}

// SchemaReport is the outcome of comparing encoder output with the scaler schema.
type SchemaReport struct {
	// Reference columns are absent by construction and zero-filled.
	Reference []string
	// Drift columns are expected by the scaler but neither produced nor declared.
	Drift []string
	// Extra columns are produced but unknown to the scaler; they are dropped.
	Extra []string
}

// CheckSchema compares the columns set's encoders produce with the scaler
// schema and the manifest's declared reference columns.
func CheckSchema(set *artifacts.Set) SchemaReport {
	produced := make(map[string]struct{})
	for _, c := range ProducibleColumns(set) {
		produced[c] = struct{}{}
	}

	var report SchemaReport
	expected := make(map[string]struct{})
	for _, c := range set.Scaler.FeatureNames() {
		expected[c] = struct{}{}
		if _, ok := produced[c]; ok {
			continue
		}
		if set.Manifest != nil && set.Manifest.IsReference(c) {
			report.Reference = append(report.Reference, c)
		} else {
			report.Drift = append(report.Drift, c)
		}
	}
	for _, c := range ProducibleColumns(set) {
		if _, ok := expected[c]; !ok {
			report.Extra = append(report.Extra, c)
		}
	}
	return report
}
