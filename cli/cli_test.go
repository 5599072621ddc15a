package cli

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ARTIFACT_SOURCE", "file")
	t.Setenv("ARTIFACT_DIR", "../testdata/artifacts")
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPredictCommand(t *testing.T) {
	out, err := runCommand(t, "predict", "--location", "new delhi", "--details")
	require.NoError(t, err)

	assert.Contains(t, out, "Estimated property value: ₹")
	assert.Contains(t, out, "For a 3 BHK in New Delhi")
	assert.Contains(t, out, "location_new delhi")
	assert.Contains(t, out, "Log prediction:")
}

func TestPredictCommandGolden(t *testing.T) {
	out, err := runCommand(t, "predict")
	require.NoError(t, err)
	assert.Contains(t, out, "₹6,158,434.55")
}

func TestPredictCommandUnknownLocation(t *testing.T) {
	_, err := runCommand(t, "predict", "--location", "atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_category")
	assert.Contains(t, err.Error(), "atlantis")
}

func TestPredictCommandOutOfRange(t *testing.T) {
	_, err := runCommand(t, "predict", "--bhk", "9")
	assert.ErrorContains(t, err, "bhk")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(in, []byte(
		"bhk,bathroom,balcony,total_sqft,transaction,furnishing,location,ownership\n"+
			"3,2,1,1200,resale,semi-furnished,mumbai,freehold\n"+
			"2,1,0,800,new property,unfurnished,atlantis,leasehold\n"), 0644))

	_, err := runCommand(t, "batch", "--in", in, "--out", out)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.NotEmpty(t, records[1][8])
	assert.Equal(t, "unknown_category", records[2][11])
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Greater Noida", titleCase("greater noida"))
	assert.Equal(t, "", titleCase(""))
	assert.Equal(t, "Éaux Vives", titleCase("éaux  vives"))
}
