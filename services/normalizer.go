package services

import (
	"strings"
	"unicode"

	"house-price-predictor/artifacts"
	"house-price-predictor/models"
	"house-price-predictor/utils"
)

// Normalizer canonicalizes hand-typed categorical values before encoding.
// It only rewrites a value when exactly one trained category matches it up
// to case, whitespace, '-' and '_'; anything else passes through untouched
// so the codec can reject it.
type Normalizer struct {
	vocab  map[string][]string
	logger *utils.Logger
}

// NewNormalizer builds a Normalizer from the vocabularies in set.
func NewNormalizer(set *artifacts.Set, logger *utils.Logger) *Normalizer {
	return &Normalizer{
		vocab: map[string][]string{
			"transaction": set.OHETransaction.Vocabulary(),
			"furnishing":  set.LblFurnishing.Vocabulary(),
			"location":    set.OHELocation.Vocabulary(),
			"ownership":   set.LblOwnership.Vocabulary(),
		},
		logger: logger,
	}
}

// Normalize returns a copy of in with its categorical fields canonicalized.
func (n *Normalizer) Normalize(in models.RawInput) models.RawInput {
	in.Transaction = n.canonical("transaction", in.Transaction)
	in.Furnishing = n.canonical("furnishing", in.Furnishing)
	in.Location = n.canonical("location", in.Location)
	in.Ownership = n.canonical("ownership", in.Ownership)
	return in
}

func (n *Normalizer) canonical(attribute, value string) string {
	known := n.vocab[attribute]
	if contains(known, value) {
		return value
	}

	cleaned := strings.ToLower(normaliseText(value))
	if contains(known, cleaned) {
		return cleaned
	}

	key := foldKey(cleaned)
	match := ""
	for _, k := range known {
		if foldKey(k) != key {
			continue
		}
		if match != "" {
			n.logger.Debug("[normalizer] %s %q is ambiguous (%q, %q)", attribute, value, match, k)
			return value
		}
		match = k
	}
	if match == "" {
		return value
	}
	n.logger.Debug("[normalizer] %s %q -> %q", attribute, value, match)
	return match
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// foldKey drops separators so "new_property", "new-property" and
// "new property" compare equal.
func foldKey(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
