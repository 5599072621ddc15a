package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"

	"house-price-predictor/utils"
)

// PostgresSource serves artifacts stored as rows of the model_artifacts table.
// An ArtifactStore loads through Snapshot, so each load reads a single
// version and a set is never assembled from two different publishes.
type PostgresSource struct {
	db           *sql.DB
	pinned       string
	manifestName string
}

// NewPostgresSource opens a connection to PostgreSQL, retrying the initial
// ping, runs schema migrations, and returns a ready-to-use PostgresSource.
// An empty version follows the most recently published manifest, resolved
// again on every load.
func NewPostgresSource(ctx context.Context, dsn, version, manifestName string, retry *utils.RetryConfig) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresSource{db: db, pinned: version, manifestName: manifestName}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

// Pinned returns the configured version, empty when following the latest.
func (ps *PostgresSource) Pinned() string { return ps.pinned }

// ResolveVersion returns the pinned version, or the version of the most
// recently published manifest.
func (ps *PostgresSource) ResolveVersion(ctx context.Context) (string, error) {
	if ps.pinned != "" {
		return ps.pinned, nil
	}
	var version string
	err := ps.db.QueryRowContext(ctx,
		`SELECT version FROM model_artifacts WHERE name = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
		ps.manifestName).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("postgres: no artifact version has been published")
	}
	if err != nil {
		return "", fmt.Errorf("postgres: resolve latest version: %w", err)
	}
	return version, nil
}

// Snapshot resolves the version once and returns a source that reads only
// that version. Closing the snapshot leaves the connection open.
func (ps *PostgresSource) Snapshot(ctx context.Context) (ArtifactSource, error) {
	version, err := ps.ResolveVersion(ctx)
	if err != nil {
		return nil, err
	}
	return &postgresSnapshot{ps: ps, version: version}, nil
}

func (ps *PostgresSource) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS model_artifacts (
			id          SERIAL PRIMARY KEY,
			name        TEXT         NOT NULL,
			version     VARCHAR(100) NOT NULL,
			payload     BYTEA        NOT NULL,
			created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			UNIQUE (name, version)
		);

		CREATE INDEX IF NOT EXISTS idx_model_artifacts_name_created ON model_artifacts(name, created_at DESC);
	`)
	return err
}

// Fetch returns the payload of the named artifact from the resolved version.
func (ps *PostgresSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	version, err := ps.ResolveVersion(ctx)
	if err != nil {
		return nil, err
	}
	return ps.fetch(ctx, name, version)
}

func (ps *PostgresSource) fetch(ctx context.Context, name, version string) ([]byte, error) {
	var payload []byte
	err := ps.db.QueryRowContext(ctx,
		`SELECT payload FROM model_artifacts WHERE name = $1 AND version = $2`,
		name, version).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("postgres: artifact %q (version %q) not found", name, version)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch %q: %w", name, err)
	}
	return payload, nil
}

type postgresSnapshot struct {
	ps      *PostgresSource
	version string
}

func (s *postgresSnapshot) Fetch(ctx context.Context, name string) ([]byte, error) {
	return s.ps.fetch(ctx, name, s.version)
}

func (s *postgresSnapshot) Close() error { return nil }

// Publish uploads every regular file in dir as one artifact version,
// replacing payloads already stored under the same name and version.
// It returns the uploaded names.
func (ps *PostgresSource) Publish(ctx context.Context, version, dir string) ([]string, error) {
	if version == "" {
		return nil, errors.New("postgres: publish: version is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("postgres: publish: %w", err)
	}

	var (
		names []string
		args  []interface{}
		vals  []string
	)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("postgres: publish: read %q: %w", e.Name(), err)
		}
		base := len(args)
		vals = append(vals, fmt.Sprintf("($%d,$%d,$%d)", base+1, base+2, base+3))
		args = append(args, e.Name(), version, data)
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("postgres: publish: no files in %s", dir)
	}

	query := fmt.Sprintf(`
		INSERT INTO model_artifacts (name, version, payload)
		VALUES %s
		ON CONFLICT (name, version) DO UPDATE SET payload = EXCLUDED.payload, created_at = NOW()
	`, strings.Join(vals, ","))

	if _, err := ps.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("postgres: publish: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}
