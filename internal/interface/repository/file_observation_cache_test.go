package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheObservations() []entity.Observation {
	return []entity.Observation{
		{
			Origin:      "WRO",
			Destination: "BCN",
			Departure:   time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC),
			Return:      time.Date(2026, 6, 8, 20, 0, 0, 0, time.UTC),
			Price:       300,
		},
		{
			Origin:      "KTW",
			Destination: "ROM",
			Departure:   time.Date(2026, 6, 6, 7, 30, 0, 0, time.UTC),
			Return:      time.Date(2026, 6, 9, 21, 15, 0, 0, time.UTC),
			Price:       149.99,
		},
	}
}

func TestFileObservationCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.json")
	cache := NewFileObservationCache(path, logger.NewNop())
	ctx := context.Background()

	observations := cacheObservations()
	require.NoError(t, cache.Save(ctx, observations))

	loaded, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, observations, loaded, "load returns the saved set in order")
}

func TestFileObservationCacheMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.json")
	cache := NewFileObservationCache(path, logger.NewNop())

	_, err := cache.Load(context.Background())
	require.ErrorIs(t, err, entity.ErrNoCachedData)
}

func TestFileObservationCacheEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.json")
	cache := NewFileObservationCache(path, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, nil))

	_, err := cache.Load(ctx)
	require.ErrorIs(t, err, entity.ErrNoCachedData)
}

func TestFileObservationCacheOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.json")
	cache := NewFileObservationCache(path, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, cacheObservations()))

	replacement := cacheObservations()[:1]
	require.NoError(t, cache.Save(ctx, replacement))

	loaded, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, replacement, loaded)
}

func TestFileObservationCacheCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cache := NewFileObservationCache(path, logger.NewNop())
	_, err := cache.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrNoCachedData)
}

func TestFileObservationCacheLeavesNoStagingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "observations.json")
	cache := NewFileObservationCache(path, logger.NewNop())

	require.NoError(t, cache.Save(context.Background(), cacheObservations()))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "staging file must be renamed away")
}

func TestFileObservationCacheCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.json")
	cache := NewFileObservationCache(path, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, cache.Save(ctx, cacheObservations()), context.Canceled)
	_, err := cache.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
