package gazetteer

// defaultCacheSize is set far above the distinct-token cardinality of
// typical corpora, so eviction is rare in practice.
const defaultCacheSize = 100000

// Cache is a capacity-bounded memoization store keyed by query string.
// Eviction is FIFO: at capacity the earliest-inserted key is dropped, and
// reads do not protect a key from eviction. That is deliberately simpler
// than LRU for a workload where the capacity exceeds the expected key
// cardinality. Not safe for concurrent use; each goroutine that wants
// memoization owns a private Cache.
type Cache[V any] struct {
	store   map[string]V
	order   []string
	maxSize int
}

// NewCache returns an empty cache holding at most maxSize entries. A
// non-positive maxSize falls back to the default capacity.
func NewCache[V any](maxSize int) *Cache[V] {
	if maxSize <= 0 {
		maxSize = defaultCacheSize
	}
	return &Cache[V]{
		store:   make(map[string]V),
		maxSize: maxSize,
	}
}

// Get returns the cached value for key, or def on a miss. A miss is normal
// control flow, not an error.
func (c *Cache[V]) Get(key string, def V) V {
	if v, ok := c.store[key]; ok {
		return v
	}
	return def
}

// Lookup returns the cached value for key and whether it was present.
func (c *Cache[V]) Lookup(key string) (V, bool) {
	v, ok := c.store[key]
	return v, ok
}

// Set stores value under key. Overwriting an existing key keeps its
// original insertion position. Inserting a new key at capacity evicts the
// earliest-inserted entry first.
func (c *Cache[V]) Set(key string, value V) {
	if _, ok := c.store[key]; ok {
		c.store[key] = value
		return
	}
	if len(c.store) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.store, oldest)
	}
	c.store[key] = value
	c.order = append(c.order, key)
}

// Clear empties the cache.
func (c *Cache[V]) Clear() {
	c.store = make(map[string]V)
	c.order = nil
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int { return len(c.store) }
