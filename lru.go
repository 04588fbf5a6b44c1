package atlas

// lru is a generic least-recently-used map with an intrusive doubly-linked
// list for O(1) promotion and eviction. It has no capacity of its own; the
// atlas evicts based on packing pressure, not entry count.
//
// Not safe for concurrent use. The atlas owns it under its single-threaded
// access contract.
type lru[K comparable, V any] struct {
	entries map[K]*lruEntry[K, V]
	head    *lruEntry[K, V] // most recently used
	tail    *lruEntry[K, V] // least recently used
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
	prev  *lruEntry[K, V]
	next  *lruEntry[K, V]
}

func newLRU[K comparable, V any]() *lru[K, V] {
	return &lru[K, V]{
		entries: make(map[K]*lruEntry[K, V]),
	}
}

// get returns the value for key and promotes it to most recently used.
func (l *lru[K, V]) get(key K) (V, bool) {
	e, ok := l.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	l.moveToFront(e)
	return e.value, true
}

// put inserts or replaces the value for key and marks it most recently used.
func (l *lru[K, V]) put(key K, value V) {
	if e, ok := l.entries[key]; ok {
		e.value = value
		l.moveToFront(e)
		return
	}
	e := &lruEntry[K, V]{key: key, value: value}
	l.entries[key] = e
	l.pushFront(e)
}

// peekLRU returns the least recently used entry without removing or
// promoting it.
func (l *lru[K, V]) peekLRU() (K, V, bool) {
	if l.tail == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	return l.tail.key, l.tail.value, true
}

// popLRU removes and returns the least recently used entry.
func (l *lru[K, V]) popLRU() (K, V, bool) {
	if l.tail == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	e := l.tail
	l.unlink(e)
	delete(l.entries, e.key)
	return e.key, e.value, true
}

// remove deletes key from the cache. Returns false if absent.
func (l *lru[K, V]) remove(key K) bool {
	e, ok := l.entries[key]
	if !ok {
		return false
	}
	l.unlink(e)
	delete(l.entries, key)
	return true
}

// len returns the number of cached entries.
func (l *lru[K, V]) len() int {
	return len(l.entries)
}

// each visits entries from most to least recently used, stopping early if
// fn returns false. fn must not mutate the cache.
func (l *lru[K, V]) each(fn func(K, V) bool) {
	for e := l.head; e != nil; e = e.next {
		if !fn(e.key, e.value) {
			return
		}
	}
}

func (l *lru[K, V]) pushFront(e *lruEntry[K, V]) {
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
}

func (l *lru[K, V]) unlink(e *lruEntry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (l *lru[K, V]) moveToFront(e *lruEntry[K, V]) {
	if l.head == e {
		return
	}
	l.unlink(e)
	l.pushFront(e)
}
