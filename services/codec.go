package services

import (
	"house-price-predictor/artifacts"
	"house-price-predictor/models"
)

// Encoded holds the categorical attributes of one input in model form.
type Encoded struct {
	Furnishing  float64
	Ownership   float64
	Transaction models.FeatureVector
	Location    models.FeatureVector
}

// CategoryCodec turns categorical values into the codes and indicator rows
// the encoders were fitted with. It never guesses an encoding for a value
// outside the trained vocabulary.
type CategoryCodec struct {
	set *artifacts.Set
}

// NewCategoryCodec creates a CategoryCodec over the given artifacts.
func NewCategoryCodec(set *artifacts.Set) *CategoryCodec {
	return &CategoryCodec{set: set}
}

// Label returns the integer code of value under enc.
func (c *CategoryCodec) Label(attribute string, enc *artifacts.LabelEncoder, value string) (float64, error) {
	code, ok := enc.Transform(value)
	if !ok {
		return 0, &UnknownCategoryError{Attribute: attribute, Value: value, Known: enc.Vocabulary()}
	}
	return float64(code), nil
}

// OneHot returns the named indicator row of value under enc. At most one
// column is 1; the dropped reference level yields all zeros.
func (c *CategoryCodec) OneHot(attribute string, enc *artifacts.OneHotEncoder, value string) (models.FeatureVector, error) {
	row, ok := enc.Transform(value)
	if !ok {
		return models.FeatureVector{}, &UnknownCategoryError{Attribute: attribute, Value: value, Known: enc.Vocabulary()}
	}
	return models.FeatureVector{Names: enc.FeatureNames(), Values: row}, nil
}

// Encode encodes all four categorical attributes of in. The first unknown
// value aborts encoding.
func (c *CategoryCodec) Encode(in models.RawInput) (Encoded, error) {
	var (
		out Encoded
		err error
	)
	if out.Furnishing, err = c.Label("furnishing", c.set.LblFurnishing, in.Furnishing); err != nil {
		return Encoded{}, err
	}
	if out.Ownership, err = c.Label("ownership", c.set.LblOwnership, in.Ownership); err != nil {
		return Encoded{}, err
	}
	if out.Transaction, err = c.OneHot("transaction", c.set.OHETransaction, in.Transaction); err != nil {
		return Encoded{}, err
	}
	if out.Location, err = c.OneHot("location", c.set.OHELocation, in.Location); err != nil {
		return Encoded{}, err
	}
	return out, nil
}
