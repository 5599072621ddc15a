package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-price-predictor/models"
	"house-price-predictor/utils"
)

func TestBatchScorerPreservesOrderAndIsolatesFailures(t *testing.T) {
	p := newFixturePipeline(t)
	scorer := NewBatchScorer(p, 4, 0, utils.NewNopLogger())

	bad := sampleInput()
	bad.Location = "atlantis"
	outOfRange := sampleInput()
	outOfRange.BHK = 9
	pune := sampleInput()
	pune.Location = "pune"

	inputs := []models.RawInput{sampleInput(), bad, outOfRange, pune}
	for i := 0; i < 20; i++ {
		inputs = append(inputs, sampleInput())
	}

	rows := scorer.Score(inputs)
	require.Len(t, rows, len(inputs))
	for i, r := range rows {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, inputs[i], r.Input)
	}

	assert.NoError(t, rows[0].Err)
	assert.InEpsilon(t, goldenPrice, rows[0].Result.Price, 1e-9)
	assert.Equal(t, KindUnknownCategory, KindOf(rows[1].Err))
	assert.Nil(t, rows[1].Result)
	assert.Equal(t, KindInvalidInput, KindOf(rows[2].Err))
	assert.NoError(t, rows[3].Err)
	assert.Less(t, rows[3].Result.Price, rows[0].Result.Price)
}

func TestBatchScorerEmpty(t *testing.T) {
	scorer := NewBatchScorer(newFixturePipeline(t), 2, 0, utils.NewNopLogger())
	assert.Empty(t, scorer.Score(nil))
}
