package models

// FeatureVector is an ordered mapping from feature name to value.
// Names and Values are parallel slices; position is significant.
type FeatureVector struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// Len returns the number of features.
func (v FeatureVector) Len() int { return len(v.Names) }

// Get returns the value for name and whether it is present.
func (v FeatureVector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Diagnostics exposes the intermediate pipeline state for a prediction.
type Diagnostics struct {
	Encoded FeatureVector `json:"encoded"`
	Scaled  FeatureVector `json:"scaled"`
}

// PredictionResult is the outcome of one successful pipeline run.
// Price is never rounded; formatting belongs to the presentation layer.
type PredictionResult struct {
	Price           float64     `json:"price"`
	LogPrice        float64     `json:"log_price"`
	ArtifactVersion string      `json:"artifact_version,omitempty"`
	Diagnostics     Diagnostics `json:"diagnostics"`
}

// Schema describes what the loaded artifacts expect from callers.
type Schema struct {
	Version         string              `json:"version"`
	ExpectedColumns []string            `json:"expected_columns"`
	Vocabulary      map[string][]string `json:"vocabulary"`
}

// BatchRow is one scored row of a batch run. Exactly one of Result and Err is set.
type BatchRow struct {
	Index  int
	Input  RawInput
	Result *PredictionResult
	Err    error
}

// BatchSummary holds aggregate figures over a scored batch.
type BatchSummary struct {
	TotalRows      int
	Succeeded      int
	Failed         int
	FailuresByKind map[string]int
	AveragePrice   float64
	MinPrice       float64
	MaxPrice       float64
	MostExpensive  *BatchRow
	RowsByLocation map[string]int
}
