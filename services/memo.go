package services

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"house-price-predictor/models"
)

// Memo caches successful predictions in an LRU keyed by the raw input.
// Valid only because the wrapped estimator is deterministic. Cached results
// are shared; callers must not modify them.
type Memo struct {
	next  Estimator
	cache *lru.Cache[models.RawInput, *models.PredictionResult]
}

// NewMemo wraps next with a cache holding up to size results.
func NewMemo(next Estimator, size int) (*Memo, error) {
	cache, err := lru.New[models.RawInput, *models.PredictionResult](size)
	if err != nil {
		return nil, fmt.Errorf("memo: %w", err)
	}
	return &Memo{next: next, cache: cache}, nil
}

// Predict returns a cached result or delegates. Errors are never cached.
func (m *Memo) Predict(in models.RawInput) (*models.PredictionResult, error) {
	if res, ok := m.cache.Get(in); ok {
		return res, nil
	}
	res, err := m.next.Predict(in)
	if err != nil {
		return nil, err
	}
	m.cache.Add(in, res)
	return res, nil
}

// Len returns the number of cached results.
func (m *Memo) Len() int { return m.cache.Len() }
