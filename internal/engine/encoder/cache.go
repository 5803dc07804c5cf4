// Package encoder builds the serialized action-graph container from a build
// graph, interning every repeated sub-object so it is materialized exactly
// once and referenced by id everywhere else.
package encoder

import "sync"

// ConstructFunc builds the serialized form of key using the id assigned to
// it. It must be deterministic for a given key and id, and must not have
// externally visible side effects other than nested DataToID calls on other
// cache instances.
type ConstructFunc[K comparable, V any] func(key K, id uint32) (V, error)

// PublishFunc appends a constructed value to the shared output sink. It is
// called exactly once per unique key, immediately after construction.
type PublishFunc[V any] func(v V) error

// Cache interns semantically equal keys: the first request for a key
// constructs and publishes its serialized form and assigns the next dense id;
// every later request for an equal key returns the same id without
// constructing or publishing anything.
//
// A single mutex is held across the whole get-or-construct-or-publish
// sequence, so concurrent first-time requests for the same key serialize and
// exactly one of them constructs. Construct functions may call DataToID on
// other cache instances, but must never call back into their own cache: the
// cache graph must be acyclic, and a reentrant call deadlocks on the
// instance lock. This is a documented precondition, not enforced at runtime.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	table     identityTable[K]
	construct ConstructFunc[K, V]
	publish   PublishFunc[V]
}

// NewCache creates a cache bound to the given construct and publish functions.
func NewCache[K comparable, V any](construct ConstructFunc[K, V], publish PublishFunc[V]) *Cache[K, V] {
	return &Cache[K, V]{
		construct: construct,
		publish:   publish,
	}
}

// DataToID returns the id interned for key, constructing and publishing its
// serialized form if the key has not been seen before.
//
// Recording the id and publishing the value are one atomic unit: if either
// construction or publication fails, no id is assigned, nothing is recorded,
// and a later request for the same key is treated as first-seen.
func (c *Cache[K, V]) DataToID(key K) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, isNew := c.table.getOrAssign(key)
	if !isNew {
		return id, nil
	}

	v, err := c.construct(key, id)
	if err != nil {
		c.table.rollback(key)
		return 0, err
	}

	if err := c.publish(v); err != nil {
		c.table.rollback(key)
		return 0, err
	}

	return id, nil
}

// Size returns the number of unique keys interned so far.
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.size()
}
