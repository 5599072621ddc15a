package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"house-price-predictor/artifacts"
	"house-price-predictor/models"
	"house-price-predictor/utils"
)

const fixtureDir = "../testdata/artifacts"

func loadFixture(t *testing.T) *artifacts.Set {
	t.Helper()

	read := func(name string) []byte {
		data, err := os.ReadFile(filepath.Join(fixtureDir, name))
		require.NoError(t, err)
		return data
	}

	manifest, err := artifacts.ParseManifest(read("manifest.yaml"))
	require.NoError(t, err)

	set := &artifacts.Set{Manifest: manifest}
	set.Model, err = artifacts.DecodeModel(read(manifest.Artifacts[artifacts.KeyModel]))
	require.NoError(t, err)
	set.Scaler, err = artifacts.DecodeScaler(read(manifest.Artifacts[artifacts.KeyScaler]))
	require.NoError(t, err)
	set.OHETransaction, err = artifacts.DecodeOneHotEncoder(read(manifest.Artifacts[artifacts.KeyOHETransaction]))
	require.NoError(t, err)
	set.OHELocation, err = artifacts.DecodeOneHotEncoder(read(manifest.Artifacts[artifacts.KeyOHELocation]))
	require.NoError(t, err)
	set.LblFurnishing, err = artifacts.DecodeLabelEncoder(read(manifest.Artifacts[artifacts.KeyLblFurnishing]))
	require.NoError(t, err)
	set.LblOwnership, err = artifacts.DecodeLabelEncoder(read(manifest.Artifacts[artifacts.KeyLblOwnership]))
	require.NoError(t, err)
	return set
}

func newFixturePipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(loadFixture(t), utils.NewNopLogger())
	require.NoError(t, err)
	return p
}

func sampleInput() models.RawInput {
	return models.RawInput{
		BHK:         3,
		Bathroom:    2,
		Balcony:     1,
		TotalSqft:   1200,
		Transaction: "resale",
		Furnishing:  "semi-furnished",
		Location:    "mumbai",
		Ownership:   "freehold",
	}
}
