package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"house-price-predictor/artifacts"
	"house-price-predictor/services"
	"house-price-predictor/utils"
)

// ArtifactStore loads one artifact set from a source and caches it for the
// life of the process. Concurrent first callers share a single load and all
// see its outcome; Invalidate arms a fresh load for later callers.
type ArtifactStore struct {
	source       ArtifactSource
	manifestName string
	timeout      time.Duration
	strict       bool
	logger       *utils.Logger

	mu   sync.Mutex
	load func() (*artifacts.Set, error)
}

// StoreOptions configures an ArtifactStore.
type StoreOptions struct {
	ManifestName string
	Timeout      time.Duration
	// StrictSchema turns unexplained schema columns into a load failure
	// instead of a warning.
	StrictSchema bool
}

// NewArtifactStore creates a store; nothing is loaded until Get is called.
func NewArtifactStore(source ArtifactSource, opts StoreOptions, logger *utils.Logger) *ArtifactStore {
	if opts.ManifestName == "" {
		opts.ManifestName = "manifest.yaml"
	}
	s := &ArtifactStore{
		source:       source,
		manifestName: opts.ManifestName,
		timeout:      opts.Timeout,
		strict:       opts.StrictSchema,
		logger:       logger,
	}
	s.load = sync.OnceValues(s.loadAll)
	return s
}

// Get returns the cached set, loading it on first use.
func (s *ArtifactStore) Get() (*artifacts.Set, error) {
	s.mu.Lock()
	load := s.load
	s.mu.Unlock()
	return load()
}

// Invalidate discards the cached set. The next Get loads again.
func (s *ArtifactStore) Invalidate() {
	s.mu.Lock()
	s.load = sync.OnceValues(s.loadAll)
	s.mu.Unlock()
	s.logger.Info("[store] Artifact cache invalidated")
}

func (s *ArtifactStore) loadAll() (*artifacts.Set, error) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	source := s.source
	if snap, ok := source.(Snapshotter); ok {
		view, err := snap.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("store: snapshot source: %w", err)
		}
		defer view.Close()
		source = view
	}

	raw, err := source.Fetch(ctx, s.manifestName)
	if err != nil {
		return nil, fmt.Errorf("store: fetch manifest: %w", err)
	}
	manifest, err := artifacts.ParseManifest(raw)
	if err != nil {
		return nil, &services.ArtifactSchemaError{Artifact: s.manifestName, Reason: "invalid manifest", Err: err}
	}

	set := &artifacts.Set{Manifest: manifest}
	g, gctx := errgroup.WithContext(ctx)
	for _, key := range artifacts.RequiredKeys {
		key := key
		g.Go(func() error {
			data, err := source.Fetch(gctx, manifest.Artifacts[key])
			if err != nil {
				return fmt.Errorf("store: fetch %s: %w", key, err)
			}
			// Each goroutine writes a distinct field of set.
			if err := decodeInto(set, key, data); err != nil {
				return &services.ArtifactSchemaError{Artifact: key, Reason: "cannot decode " + manifest.Artifacts[key], Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("[store] Artifact load failed: %v", err)
		return nil, err
	}

	if err := s.checkSchema(set); err != nil {
		s.logger.Error("[store] Artifact schema check failed: %v", err)
		return nil, err
	}

	s.logger.Info("[store] Loaded artifact set %q (%d features) in %v",
		manifest.Version, len(set.Scaler.FeatureNamesIn), time.Since(start).Round(time.Millisecond))
	return set, nil
}

func decodeInto(set *artifacts.Set, key string, data []byte) error {
	var err error
	switch key {
	case artifacts.KeyModel:
		set.Model, err = artifacts.DecodeModel(data)
	case artifacts.KeyScaler:
		set.Scaler, err = artifacts.DecodeScaler(data)
	case artifacts.KeyOHETransaction:
		set.OHETransaction, err = artifacts.DecodeOneHotEncoder(data)
	case artifacts.KeyOHELocation:
		set.OHELocation, err = artifacts.DecodeOneHotEncoder(data)
	case artifacts.KeyLblFurnishing:
		set.LblFurnishing, err = artifacts.DecodeLabelEncoder(data)
	case artifacts.KeyLblOwnership:
		set.LblOwnership, err = artifacts.DecodeLabelEncoder(data)
	default:
		err = errors.New("unknown artifact key")
	}
	return err
}

func (s *ArtifactStore) checkSchema(set *artifacts.Set) error {
	if n := set.Model.NumFeatures(); n != len(set.Scaler.FeatureNamesIn) {
		return &services.ArtifactSchemaError{
			Artifact: artifacts.KeyModel,
			Reason:   fmt.Sprintf("model expects %d features, scaler schema has %d", n, len(set.Scaler.FeatureNamesIn)),
		}
	}

	report := services.CheckSchema(set)
	if len(report.Extra) > 0 {
		s.logger.Warn("[store] Encoder columns unknown to the scaler will be dropped: %s", strings.Join(report.Extra, ", "))
	}
	if len(report.Reference) > 0 {
		s.logger.Debug("[store] Reference columns zero-filled at inference: %s", strings.Join(report.Reference, ", "))
	}
	if len(report.Drift) == 0 {
		return nil
	}

	msg := "scaler expects columns no encoder produces: " + strings.Join(report.Drift, ", ")
	if s.strict {
		return &services.ArtifactSchemaError{Artifact: artifacts.KeyScaler, Reason: msg}
	}
	s.logger.Warn("[store] %s (zero-filled, STRICT_SCHEMA is off)", msg)
	return nil
}
