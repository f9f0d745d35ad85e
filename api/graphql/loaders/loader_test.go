package loaders

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/interfaces/mocks"
	tracker_errors "github.com/canada-ca/tracker-sub010/internal/errors"
	"github.com/canada-ca/tracker-sub010/internal/models"
)

type recordingFetch struct {
	mu      sync.Mutex
	batches [][]string
	err     error
}

func (f *recordingFetch) fetch(_ context.Context, keys []string) (map[string]string, error) {
	f.mu.Lock()
	f.batches = append(f.batches, append([]string(nil), keys...))
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	values := make(map[string]string, len(keys))
	for _, key := range keys {
		if key != "missing" {
			values[key] = "value-" + key
		}
	}
	return values, nil
}

func (f *recordingFetch) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func TestLoader_BatchesConcurrentLoads(t *testing.T) {
	f := &recordingFetch{}
	loader := NewLoader(f.fetch, 20*time.Millisecond, 100)

	var wg sync.WaitGroup
	results := make([]string, 3)
	for i, key := range []string{"a", "b", "missing"} {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			value, err := loader.Load(context.Background(), key)
			assert.NoError(t, err)
			results[i] = value
		}(i, key)
	}
	wg.Wait()

	assert.Equal(t, []string{"value-a", "value-b", ""}, results)
	assert.Equal(t, 1, f.batchCount())
	assert.ElementsMatch(t, []string{"a", "b", "missing"}, f.batches[0])
}

func TestLoader_CachesValues(t *testing.T) {
	f := &recordingFetch{}
	loader := NewLoader(f.fetch, time.Millisecond, 100)

	first, err := loader.Load(context.Background(), "a")
	require.NoError(t, err)
	second, err := loader.Load(context.Background(), "a")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.batchCount())
}

func TestLoader_MaxBatch(t *testing.T) {
	f := &recordingFetch{}
	loader := NewLoader(f.fetch, time.Hour, 2)

	values, err := loader.LoadAll(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"value-a", "value-b"}, values)
	assert.Equal(t, 1, f.batchCount())
}

func TestLoader_ErrorReachesEveryWaiterAndIsNotCached(t *testing.T) {
	f := &recordingFetch{err: assert.AnError}
	loader := NewLoader(f.fetch, 10*time.Millisecond, 100)

	var failures int32
	var wg sync.WaitGroup
	for _, key := range []string{"a", "b"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			if _, err := loader.Load(context.Background(), key); err != nil {
				atomic.AddInt32(&failures, 1)
			}
		}(key)
	}
	wg.Wait()
	assert.Equal(t, int32(2), failures)

	f.mu.Lock()
	f.err = nil
	f.mu.Unlock()

	value, err := loader.Load(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "value-a", value)
}

func TestLoader_LoadAllUsesCache(t *testing.T) {
	f := &recordingFetch{}
	loader := NewLoader(f.fetch, time.Millisecond, 100)

	_, err := loader.Load(context.Background(), "a")
	require.NoError(t, err)

	values, err := loader.LoadAll(context.Background(), []string{"a", "b", "missing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"value-a", "value-b", ""}, values)
	require.Equal(t, 2, f.batchCount())
	assert.Equal(t, []string{"b", "missing"}, f.batches[1])
}

func TestLoader_LoadAllError(t *testing.T) {
	f := &recordingFetch{err: assert.AnError}
	loader := NewLoader(f.fetch, time.Millisecond, 100)

	_, err := loader.LoadAll(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoaders_Context(t *testing.T) {
	_, err := For(context.Background())
	assert.ErrorIs(t, err, tracker_errors.ErrLoadersNotSet)

	repos := mocks.NewRepositories()
	repos.Organization.On("GetBySlugs", mock.Anything, []string{"tbs"}).
		Return([]*models.Organization{{ID: "org_1", Slug: "tbs"}}, nil)

	ctx := WithLoaders(context.Background(), NewLoaders(repos.Repositories()))
	loaders, err := For(ctx)
	require.NoError(t, err)

	org, err := loaders.OrgBySlug.Load(ctx, "tbs")
	require.NoError(t, err)
	assert.Equal(t, "org_1", org.ID)
}
