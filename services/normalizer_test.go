package services

import (
	"testing"

	"house-price-predictor/artifacts"
	"house-price-predictor/utils"
)

func TestNormalizerCanonical(t *testing.T) {
	set := loadFixture(t)
	set.OHELocation = &artifacts.OneHotEncoder{
		Feature:    "location",
		Categories: []string{"greater noida", "new delhi", "new-delhi", "Pune"},
	}
	n := NewNormalizer(set, utils.NewNopLogger())

	tests := []struct {
		attr  string
		value string
		want  string
	}{
		{"transaction", "new_property", "new property"},
		{"transaction", "NEW PROPERTY", "new property"},
		{"furnishing", "Semi Furnished", "semi-furnished"},
		{"location", "greater_noida", "greater noida"},
		{"location", "Greater   Noida", "greater noida"},
		{"location", "Pune", "Pune"},
		{"location", "pune", "Pune"},
		// two trained spellings fold to the same key: leave it for the codec
		{"location", "new_delhi", "new_delhi"},
		{"location", "atlantis", "atlantis"},
		{"ownership", "", ""},
	}
	for _, tt := range tests {
		got := n.canonical(tt.attr, tt.value)
		if got != tt.want {
			t.Errorf("canonical(%s, %q) = %q; want %q", tt.attr, tt.value, got, tt.want)
		}
	}
}

func TestNormaliseText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  new   delhi ", "new delhi"},
		{"\tthane\n", "thane"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normaliseText(tt.raw); got != tt.want {
			t.Errorf("normaliseText(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}
