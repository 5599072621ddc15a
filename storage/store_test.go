package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-price-predictor/artifacts"
	"house-price-predictor/services"
	"house-price-predictor/utils"
)

const fixtureDir = "../testdata/artifacts"

// memSource serves artifacts from memory and counts manifest fetches.
type memSource struct {
	files     map[string][]byte
	manifests int64
	delay     time.Duration
}

func newMemSource(t *testing.T) *memSource {
	t.Helper()
	entries, err := os.ReadDir(fixtureDir)
	require.NoError(t, err)

	files := make(map[string][]byte)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(fixtureDir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = data
	}
	return &memSource{files: files}
}

func (m *memSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if name == "manifest.yaml" {
		atomic.AddInt64(&m.manifests, 1)
		time.Sleep(m.delay)
	}
	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("mem source: %q not found", name)
	}
	return data, nil
}

func (m *memSource) Close() error { return nil }

func TestStoreLoadsFixtureFromDisk(t *testing.T) {
	src, err := NewFileSource(fixtureDir)
	require.NoError(t, err)

	store := NewArtifactStore(src, StoreOptions{Timeout: time.Second, StrictSchema: true}, utils.NewNopLogger())
	set, err := store.Get()
	require.NoError(t, err)

	assert.Equal(t, "2024.06-fixture", set.Version())
	assert.Len(t, set.Scaler.FeatureNamesIn, 29)
	assert.Equal(t, 29, set.Model.NumFeatures())
	assert.Equal(t, "transaction", set.OHETransaction.Feature)
	assert.Equal(t, "location", set.OHELocation.Feature)

	p, err := services.NewPipeline(set, utils.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "2024.06-fixture", p.Version())
}

func TestStoreLoadsOnceUnderConcurrency(t *testing.T) {
	src := newMemSource(t)
	src.delay = 20 * time.Millisecond
	store := NewArtifactStore(src, StoreOptions{StrictSchema: true}, utils.NewNopLogger())

	var wg sync.WaitGroup
	sets := make([]*artifacts.Set, 16)
	for i := range sets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set, err := store.Get()
			assert.NoError(t, err)
			sets[i] = set
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&src.manifests))
	for _, s := range sets {
		assert.Same(t, sets[0], s)
	}
}

func TestStoreFailureReachesEveryCaller(t *testing.T) {
	src := newMemSource(t)
	delete(src.files, "standard_scaler.json")
	store := NewArtifactStore(src, StoreOptions{}, utils.NewNopLogger())

	_, err1 := store.Get()
	_, err2 := store.Get()
	require.Error(t, err1)
	assert.Equal(t, err1, err2)
	assert.EqualValues(t, 1, atomic.LoadInt64(&src.manifests))
}

func TestStoreInvalidateReloads(t *testing.T) {
	src := newMemSource(t)
	store := NewArtifactStore(src, StoreOptions{}, utils.NewNopLogger())

	first, err := store.Get()
	require.NoError(t, err)
	store.Invalidate()
	second, err := store.Get()
	require.NoError(t, err)

	assert.EqualValues(t, 2, src.manifests)
	assert.NotSame(t, first, second)
}

// publishedSource keeps several versions and snapshots the latest one.
type publishedSource struct {
	mu        sync.Mutex
	versions  map[string]*memSource
	latest    string
	snapshots int
}

func (p *publishedSource) publish(version string, files *memSource) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.versions == nil {
		p.versions = make(map[string]*memSource)
	}
	p.versions[version] = files
	p.latest = version
}

func (p *publishedSource) Snapshot(ctx context.Context) (ArtifactSource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots++
	return p.versions[p.latest], nil
}

func (p *publishedSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	return nil, errors.New("published source: fetch outside a snapshot")
}

func (p *publishedSource) Close() error { return nil }

func TestStoreReloadPicksUpNewPublish(t *testing.T) {
	src := &publishedSource{}
	src.publish("v1", newMemSource(t))
	store := NewArtifactStore(src, StoreOptions{StrictSchema: true}, utils.NewNopLogger())

	first, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "2024.06-fixture", first.Version())

	next := newMemSource(t)
	next.files["manifest.yaml"] = []byte(strings.Replace(string(next.files["manifest.yaml"]),
		`version: "2024.06-fixture"`, `version: "2024.07-fixture"`, 1))
	src.publish("v2", next)

	again, err := store.Get()
	require.NoError(t, err)
	assert.Same(t, first, again)

	store.Invalidate()
	second, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "2024.07-fixture", second.Version())
	assert.Equal(t, 2, src.snapshots)
}

func TestStoreMissingScalerSchema(t *testing.T) {
	src := newMemSource(t)
	src.files["standard_scaler.json"] = []byte(`{"mean":[1],"scale":[1]}`)
	store := NewArtifactStore(src, StoreOptions{}, utils.NewNopLogger())

	_, err := store.Get()
	var se *services.ArtifactSchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "scaler", se.Artifact)
	assert.Equal(t, services.KindArtifactSchema, services.KindOf(err))
}

func TestStoreSchemaDrift(t *testing.T) {
	undeclared := []byte(`version: drift
artifacts:
  model: random_forest_model.json
  scaler: standard_scaler.json
  ohe_transaction: transaction_ohe.json
  ohe_location: location_ohe.json
  lbl_furnishing: furnishing_label_encoder.json
  lbl_ownership: ownership_label_encoder.json
reference_columns:
  - location_ahmedabad
`)

	src := newMemSource(t)
	src.files["manifest.yaml"] = undeclared
	_, err := NewArtifactStore(src, StoreOptions{StrictSchema: true}, utils.NewNopLogger()).Get()
	var se *services.ArtifactSchemaError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "transaction_new property")

	lenient := NewArtifactStore(src, StoreOptions{StrictSchema: false}, utils.NewNopLogger())
	set, err := lenient.Get()
	require.NoError(t, err)
	assert.Equal(t, "drift", set.Version())
}

func TestStoreModelWidthMismatch(t *testing.T) {
	src := newMemSource(t)
	src.files["random_forest_model.json"] = []byte(`{"kind":"linear","coef":[1,2],"intercept":0}`)

	_, err := NewArtifactStore(src, StoreOptions{}, utils.NewNopLogger()).Get()
	assert.Equal(t, services.KindArtifactSchema, services.KindOf(err))
}

func TestStoreTimeout(t *testing.T) {
	store := NewArtifactStore(blockingSource{}, StoreOptions{Timeout: 10 * time.Millisecond}, utils.NewNopLogger())
	_, err := store.Get()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type blockingSource struct{}

func (blockingSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingSource) Close() error { return nil }

func TestFileSourceRejectsEscapingNames(t *testing.T) {
	src, err := NewFileSource(fixtureDir)
	require.NoError(t, err)

	_, err = src.Fetch(context.Background(), "../../go.mod")
	assert.Error(t, err)

	_, err = NewFileSource(filepath.Join(fixtureDir, "manifest.yaml"))
	assert.Error(t, err)
}
