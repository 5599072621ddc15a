package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecLabelCodes(t *testing.T) {
	set := loadFixture(t)
	c := NewCategoryCodec(set)

	tests := []struct {
		value string
		want  float64
	}{
		{"furnished", 0},
		{"semi-furnished", 1},
		{"unfurnished", 2},
	}
	for _, tt := range tests {
		got, err := c.Label("furnishing", set.LblFurnishing, tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.value)
	}
}

func TestCodecOneHotIndicators(t *testing.T) {
	set := loadFixture(t)
	c := NewCategoryCodec(set)

	for _, loc := range set.OHELocation.Vocabulary() {
		row, err := c.OneHot("location", set.OHELocation, loc)
		require.NoError(t, err)
		require.Equal(t, len(row.Names), len(row.Values))

		ones := 0
		for i, v := range row.Values {
			if v == 1 {
				ones++
				assert.Equal(t, "location_"+loc, row.Names[i])
			} else {
				assert.Zero(t, v)
			}
		}
		if loc == set.OHELocation.Drop {
			assert.Zero(t, ones, "reference level %q has no indicator", loc)
		} else {
			assert.Equal(t, 1, ones, loc)
		}
	}
}

func TestCodecUnknownCategory(t *testing.T) {
	set := loadFixture(t)
	c := NewCategoryCodec(set)

	_, err := c.OneHot("location", set.OHELocation, "atlantis")
	var uc *UnknownCategoryError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, "location", uc.Attribute)
	assert.Equal(t, "atlantis", uc.Value)
	assert.Contains(t, uc.Known, "mumbai")
	assert.Equal(t, KindUnknownCategory, KindOf(err))

	_, err = c.Label("ownership", set.LblOwnership, "cooperative")
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, "ownership", uc.Attribute)
}

func TestCodecEncodeStopsAtFirstUnknown(t *testing.T) {
	c := NewCategoryCodec(loadFixture(t))

	in := sampleInput()
	in.Furnishing = "luxury"
	in.Location = "atlantis"

	_, err := c.Encode(in)
	var uc *UnknownCategoryError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, "furnishing", uc.Attribute)
}
