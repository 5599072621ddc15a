package storage

import (
	"context"

	"house-price-predictor/models"
)

// ArtifactSource is the interface any artifact backend must satisfy.
// Fetch returns the raw bytes of the named artifact.
type ArtifactSource interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	Close() error
}

// Snapshotter is implemented by sources whose contents change over time.
// ArtifactStore takes one snapshot per load and fetches every artifact of
// that load from it.
type Snapshotter interface {
	Snapshot(ctx context.Context) (ArtifactSource, error)
}

// InputReader reads a batch of property descriptions.
type InputReader interface {
	ReadAll() ([]models.RawInput, error)
}

// PredictionWriter persists scored batch rows.
type PredictionWriter interface {
	Write(rows []*models.BatchRow) error
	Close() error
}

var (
	_ ArtifactSource   = (*FileSource)(nil)
	_ ArtifactSource   = (*PostgresSource)(nil)
	_ Snapshotter      = (*PostgresSource)(nil)
	_ InputReader      = (*CSVReader)(nil)
	_ PredictionWriter = (*CSVWriter)(nil)
)
