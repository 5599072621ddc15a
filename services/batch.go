package services

import (
	"house-price-predictor/models"
	"house-price-predictor/utils"
)

// BatchScorer prices many inputs concurrently.
type BatchScorer struct {
	est         Estimator
	concurrency int
	rateLimitMs int
	logger      *utils.Logger
}

// NewBatchScorer creates a BatchScorer running up to concurrency predictions at once.
func NewBatchScorer(est Estimator, concurrency, rateLimitMs int, logger *utils.Logger) *BatchScorer {
	return &BatchScorer{est: est, concurrency: concurrency, rateLimitMs: rateLimitMs, logger: logger}
}

// Score validates and prices every input. Rows come back in input order; a
// failing row carries its error and does not affect the others.
func (b *BatchScorer) Score(inputs []models.RawInput) []*models.BatchRow {
	rows := make([]*models.BatchRow, len(inputs))
	pool := utils.NewWorkerPool(b.concurrency, b.rateLimitMs)

	for i, in := range inputs {
		i, in := i, in
		pool.Submit(func() {
			row := &models.BatchRow{Index: i, Input: in}
			if err := in.Validate(); err != nil {
				row.Err = err
			} else {
				row.Result, row.Err = b.est.Predict(in)
			}
			if row.Err != nil {
				b.logger.Warn("[batch] Row %d failed (%s): %v", i, KindOf(row.Err), row.Err)
			}
			rows[i] = row
		})
	}
	pool.Wait()

	return rows
}
