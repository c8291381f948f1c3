package gh

import "sync"

// memoTable is a process-lifetime memoization table. Entries are written once
// after a fully successful fetch and never evicted; remote refs and blobs are
// treated as immutable within a single run.
type memoTable[V any] struct {
	mu sync.Mutex
	m  map[string]V
}

func newMemoTable[V any]() *memoTable[V] {
	return &memoTable[V]{m: make(map[string]V)}
}

// getOrFill returns the cached value for key, calling fill under the table
// lock on a miss so concurrent callers cannot race duplicate fetches into the
// same key. A fill error caches nothing.
func (t *memoTable[V]) getOrFill(key string, fill func() (V, error)) (V, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.m[key]; ok {
		return v, nil
	}
	v, err := fill()
	if err != nil {
		var zero V
		return zero, err
	}
	t.m[key] = v
	return v, nil
}

// treeMatches is the cached result of one recursive tree fetch filtered by a
// glob pattern.
type treeMatches struct {
	matches   []string
	truncated bool
}
