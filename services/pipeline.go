package services

import (
	"fmt"

	"house-price-predictor/artifacts"
	"house-price-predictor/models"
	"house-price-predictor/utils"
)

// Estimator produces a price for one input.
type Estimator interface {
	Predict(in models.RawInput) (*models.PredictionResult, error)
}

// Pipeline runs the full inference sequence over one immutable artifact set:
// normalize, encode, align, scale, predict, format. It holds no mutable
// state and is safe for concurrent use.
type Pipeline struct {
	set        *artifacts.Set
	normalizer *Normalizer
	codec      *CategoryCodec
	aligner    *SchemaAligner
	scaler     *Scaler
	predictor  *Predictor
	formatter  *ResponseFormatter
	logger     *utils.Logger
}

// NewPipeline wires the pipeline stages to set.
func NewPipeline(set *artifacts.Set, logger *utils.Logger) (*Pipeline, error) {
	if set == nil {
		return nil, &ArtifactSchemaError{Artifact: "set", Reason: "artifacts are not loaded"}
	}
	for key, missing := range map[string]bool{
		artifacts.KeyModel:          set.Model == nil,
		artifacts.KeyOHETransaction: set.OHETransaction == nil,
		artifacts.KeyOHELocation:    set.OHELocation == nil,
		artifacts.KeyLblFurnishing:  set.LblFurnishing == nil,
		artifacts.KeyLblOwnership:   set.LblOwnership == nil,
	} {
		if missing {
			return nil, &ArtifactSchemaError{Artifact: key, Reason: "artifact is not loaded"}
		}
	}

	aligner, err := NewSchemaAligner(set.Scaler)
	if err != nil {
		return nil, err
	}
	if n := set.Model.NumFeatures(); n != len(aligner.expected) {
		return nil, &ArtifactSchemaError{
			Artifact: artifacts.KeyModel,
			Reason:   fmt.Sprintf("model expects %d features, scaler schema has %d", n, len(aligner.expected)),
		}
	}

	return &Pipeline{
		set:        set,
		normalizer: NewNormalizer(set, logger),
		codec:      NewCategoryCodec(set),
		aligner:    aligner,
		scaler:     NewScaler(set.Scaler),
		predictor:  NewPredictor(set.Model),
		formatter:  NewResponseFormatter(set.Version()),
		logger:     logger,
	}, nil
}

// Predict estimates the price of in. On error no result is returned.
func (p *Pipeline) Predict(in models.RawInput) (*models.PredictionResult, error) {
	in = p.normalizer.Normalize(in)

	enc, err := p.codec.Encode(in)
	if err != nil {
		return nil, err
	}

	aligned := p.aligner.Align(p.aligner.Merge(in, enc))

	scaled, err := p.scaler.Transform(aligned)
	if err != nil {
		return nil, err
	}

	logPrice, err := p.predictor.Predict(scaled)
	if err != nil {
		return nil, err
	}

	result, err := p.formatter.Format(aligned, scaled, logPrice)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("[pipeline] %d BHK in %s -> log %.4f, price %.2f", in.BHK, in.Location, logPrice, result.Price)
	return result, nil
}

// Schema describes the expected columns and the accepted vocabularies.
func (p *Pipeline) Schema() models.Schema {
	return models.Schema{
		Version:         p.set.Version(),
		ExpectedColumns: p.aligner.ExpectedColumns(),
		Vocabulary: map[string][]string{
			"transaction": p.set.OHETransaction.Vocabulary(),
			"furnishing":  p.set.LblFurnishing.Vocabulary(),
			"location":    p.set.OHELocation.Vocabulary(),
			"ownership":   p.set.LblOwnership.Vocabulary(),
		},
	}
}

// Version returns the artifact version the pipeline runs on.
func (p *Pipeline) Version() string { return p.set.Version() }
