package curse

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ParallelMap applies fn to every element concurrently and collects the
// results. The number of simultaneous invocations is bounded by the CPU
// count. The first error returned by any invocation is surfaced to the caller
// verbatim and no results are returned; panics inside fn are re-raised by the
// mapper, never converted into an error. The order of the results is
// unspecified.
func ParallelMap[E, R any](elements []E, fn func(E) (R, error)) ([]R, error) {
	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	results := make([]R, 0, len(elements))

	for _, element := range elements {
		group.Go(func() error {
			result, err := fn(element)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			results = append(results, result)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ParallelMapToMap applies the key and value functions to every element
// concurrently and pairs the outcomes into a map. Two elements producing the
// same key is an error. Error and panic semantics match ParallelMap.
func ParallelMapToMap[E any, K comparable, V any](
	elements []E,
	keyFn func(E) (K, error),
	valueFn func(E) (V, error),
) (map[K]V, error) {
	type entry struct {
		key   K
		value V
	}
	entries, err := ParallelMap(elements, func(element E) (entry, error) {
		key, err := keyFn(element)
		if err != nil {
			return entry{}, err
		}
		value, err := valueFn(element)
		if err != nil {
			return entry{}, err
		}
		return entry{key, value}, nil
	})
	if err != nil {
		return nil, err
	}

	result := make(map[K]V, len(entries))
	for _, e := range entries {
		if _, dup := result[e.key]; dup {
			return nil, fmt.Errorf("duplicate key: %v", e.key)
		}
		result[e.key] = e.value
	}
	return result, nil
}
