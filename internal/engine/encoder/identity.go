package encoder

// identityTable assigns dense sequential ids to distinct keys, starting at 1.
// Id 0 is reserved to mean "unset" and is never assigned. The table is a pure
// mapping: it is not safe for concurrent use on its own and is guarded by the
// owning cache's mutex.
//
// Keys must not be mutated in a way that changes their equality after first
// use; doing so is a caller error with undefined lookup behavior.
type identityTable[K comparable] struct {
	ids  map[K]uint32
	next uint32
}

// getOrAssign returns the id recorded for key, or assigns the next sequential
// id when the key has not been seen before. isNew reports whether the id was
// freshly assigned by this call.
func (t *identityTable[K]) getOrAssign(key K) (id uint32, isNew bool) {
	if t.ids == nil {
		t.ids = make(map[K]uint32)
	}
	if id, ok := t.ids[key]; ok {
		return id, false
	}
	t.next++
	t.ids[key] = t.next
	return t.next, true
}

// rollback removes the entry for key if it holds the most recently assigned
// id, making the id available again. It undoes a getOrAssign whose follow-up
// work failed; under the cache lock the freshly assigned key is always the
// most recent one.
func (t *identityTable[K]) rollback(key K) {
	if id, ok := t.ids[key]; ok && id == t.next {
		delete(t.ids, key)
		t.next--
	}
}

// size returns the number of keys currently recorded.
func (t *identityTable[K]) size() int {
	return len(t.ids)
}
