package state

import (
	"bytes"
	"sort"
	"sync"
)

// Tx is a view of the store within a single transaction. Values returned by
// Get and passed to Scan callbacks are copies owned by the caller.
type Tx interface {
	// Get returns the value stored under key, or nil if absent.
	Get(bucket, key []byte) []byte

	// Put stores value under key, creating the bucket if needed.
	Put(bucket, key, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(bucket, key []byte) error

	// Scan visits keys with the given prefix in ascending order, starting
	// strictly after `after` when it is non-nil. Iteration stops when fn
	// returns false.
	Scan(bucket, prefix, after []byte, fn func(key, value []byte) bool) error
}

// Store is a transactional key/value store. Update runs fn in a read-write
// transaction that commits only if fn returns nil; writers are serialized.
type Store interface {
	View(fn func(tx Tx) error) error
	Update(fn func(tx Tx) error) error
	Close() error
}

// MemStore is an in-memory implementation of Store for testing.
// Writes made inside Update are staged and applied only on success.
type MemStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
	closed  bool
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates a new empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{buckets: make(map[string]map[string][]byte)}
}

// View runs fn in a read-only transaction.
func (s *MemStore) View(fn func(tx Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return fn(&memTx{store: s})
}

// Update runs fn in a read-write transaction. Staged writes are discarded
// if fn returns an error or panics.
func (s *MemStore) Update(fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	tx := &memTx{store: s, writable: true, staged: make(map[string]map[string]*[]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// Close marks the store closed. Subsequent transactions fail with ErrClosed.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// memTx overlays staged writes on the committed buckets. A nil entry in
// staged marks a deletion.
type memTx struct {
	store    *MemStore
	writable bool
	staged   map[string]map[string]*[]byte
}

func (tx *memTx) Get(bucket, key []byte) []byte {
	if shard, ok := tx.staged[string(bucket)]; ok {
		if v, ok := shard[string(key)]; ok {
			if v == nil {
				return nil
			}
			return bytes.Clone(*v)
		}
	}
	v, ok := tx.store.buckets[string(bucket)][string(key)]
	if !ok {
		return nil
	}
	return bytes.Clone(v)
}

func (tx *memTx) Put(bucket, key, value []byte) error {
	if !tx.writable {
		return ErrReadOnly
	}
	if len(bucket) == 0 || len(key) == 0 {
		return ErrEmptyKey
	}
	v := bytes.Clone(value)
	if v == nil {
		v = []byte{}
	}
	tx.shard(bucket)[string(key)] = &v
	return nil
}

func (tx *memTx) Delete(bucket, key []byte) error {
	if !tx.writable {
		return ErrReadOnly
	}
	if len(bucket) == 0 || len(key) == 0 {
		return ErrEmptyKey
	}
	tx.shard(bucket)[string(key)] = nil
	return nil
}

func (tx *memTx) Scan(bucket, prefix, after []byte, fn func(key, value []byte) bool) error {
	keys := make(map[string]struct{})
	for k := range tx.store.buckets[string(bucket)] {
		keys[k] = struct{}{}
	}
	for k := range tx.staged[string(bucket)] {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		if !bytes.HasPrefix([]byte(k), prefix) {
			continue
		}
		if after != nil && bytes.Compare([]byte(k), after) <= 0 {
			continue
		}
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	for _, k := range sorted {
		v := tx.Get(bucket, []byte(k))
		if v == nil {
			continue
		}
		if !fn([]byte(k), v) {
			break
		}
	}
	return nil
}

func (tx *memTx) shard(bucket []byte) map[string]*[]byte {
	shard, ok := tx.staged[string(bucket)]
	if !ok {
		shard = make(map[string]*[]byte)
		tx.staged[string(bucket)] = shard
	}
	return shard
}

func (tx *memTx) commit() {
	for bucket, shard := range tx.staged {
		committed, ok := tx.store.buckets[bucket]
		if !ok {
			committed = make(map[string][]byte)
			tx.store.buckets[bucket] = committed
		}
		for k, v := range shard {
			if v == nil {
				delete(committed, k)
				continue
			}
			committed[k] = *v
		}
	}
}
