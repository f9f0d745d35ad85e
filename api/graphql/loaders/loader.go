package loaders

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"
)

// BatchFunc fetches the values of keys in one call. Keys missing from the
// returned map resolve to the zero value.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) (map[K]V, error)

// Loader batches the keys requested within wait, or until maxBatch keys are
// pending, into one fetch and caches the results for its lifetime. Failed
// loads are evicted so the next load retries them. A loader is meant to live
// for one request.
type Loader[K comparable, V any] struct {
	loader *dataloader.Loader[K, V]
}

func NewLoader[K comparable, V any](fetch BatchFunc[K, V], wait time.Duration, maxBatch int) *Loader[K, V] {
	batch := func(ctx context.Context, keys []K) []*dataloader.Result[V] {
		results := make([]*dataloader.Result[V], len(keys))
		values, err := fetch(ctx, keys)
		for i, key := range keys {
			if err != nil {
				results[i] = &dataloader.Result[V]{Error: err}
				continue
			}
			results[i] = &dataloader.Result[V]{Data: values[key]}
		}
		return results
	}

	return &Loader[K, V]{
		loader: dataloader.NewBatchedLoader(batch,
			dataloader.WithWait[K, V](wait),
			dataloader.WithBatchCapacity[K, V](maxBatch),
			dataloader.WithCache[K, V](dataloader.NewCache[K, V]()),
		),
	}
}

// Load returns the value of key, joining the pending batch when there is one.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	value, err := l.loader.Load(ctx, key)()
	if err != nil {
		l.loader.Clear(ctx, key)
	}
	return value, err
}

// LoadAll loads every key in one batch and returns the values in key order.
func (l *Loader[K, V]) LoadAll(ctx context.Context, keys []K) ([]V, error) {
	values, errs := l.loader.LoadMany(ctx, keys)()
	var first error
	for i, err := range errs {
		if err == nil {
			continue
		}
		l.loader.Clear(ctx, keys[i])
		if first == nil {
			first = err
		}
	}
	if first != nil {
		return nil, first
	}
	return values, nil
}
