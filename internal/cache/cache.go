// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache implements the in-memory, query-capable mirror of a
// collection: decrypted records keyed by id with point lookup, full
// enumeration, predicate selection, and key-ordered range queries.
//
// The cache is a derived projection of the durable store. It may be
// discarded and rebuilt at any time without data loss; the coordinator is
// responsible for keeping it behind, never ahead of, durable truth. All
// operations are synchronous and never perform I/O.
package cache

import (
	"sync"

	"github.com/google/btree"

	"github.com/MKhiriev/go-vault-cache/models"
)

// btreeDegree balances node fan-out against rebalance cost for collections
// in the hundreds-to-millions range.
const btreeDegree = 32

// Collection is the in-memory mirror for records of type T. Point
// operations are O(1) on the id map; ordered and range queries are
// O(log n + k) on the btree id index. Safe for concurrent use.
type Collection[T models.Keyed] struct {
	mu    sync.RWMutex
	items map[string]T
	index *btree.BTreeG[string]
}

// New constructs an empty [Collection].
func New[T models.Keyed]() *Collection[T] {
	return &Collection[T]{
		items: make(map[string]T),
		index: btree.NewG(btreeDegree, func(a, b string) bool { return a < b }),
	}
}

// Put upserts record under its key. A record with an empty key is rejected:
// it could never correspond to a durable envelope, so accepting it would
// silently break the mirror.
func (c *Collection[T]) Put(record T) error {
	id := record.Key()
	if id == "" {
		return ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[id]; !exists {
		c.index.ReplaceOrInsert(id)
	}
	c.items[id] = record

	return nil
}

// Delete removes the record under id. Unknown ids are a no-op.
func (c *Collection[T]) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[id]; exists {
		delete(c.items, id)
		c.index.Delete(id)
	}
}

// GetByID returns the record under id and whether it exists.
func (c *Collection[T]) GetByID(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.items[id]
	return record, ok
}

// GetAll returns a snapshot of every record ordered by key. The slice is a
// copy: callers can never observe a torn state during concurrent mutation.
func (c *Collection[T]) GetAll() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.items))
	c.index.Ascend(func(id string) bool {
		out = append(out, c.items[id])
		return true
	})
	return out
}

// Select returns a snapshot of every record satisfying pred, ordered by key.
func (c *Collection[T]) Select(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	c.index.Ascend(func(id string) bool {
		if record := c.items[id]; pred(record) {
			out = append(out, record)
		}
		return true
	})
	return out
}

// Range returns a snapshot of records with fromID <= key < toID, ordered by
// key. An empty toID means "to the end".
func (c *Collection[T]) Range(fromID, toID string) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	collect := func(id string) bool {
		out = append(out, c.items[id])
		return true
	}

	if toID == "" {
		c.index.AscendGreaterOrEqual(fromID, collect)
	} else {
		c.index.AscendRange(fromID, toID, collect)
	}
	return out
}

// Len returns the number of cached records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Replace atomically swaps the entire contents for records, dropping
// whatever was cached before. Used by the coordinator's rebuild path.
// Records with empty keys are rejected and nothing is changed.
func (c *Collection[T]) Replace(records []T) error {
	items := make(map[string]T, len(records))
	index := btree.NewG(btreeDegree, func(a, b string) bool { return a < b })
	for _, record := range records {
		id := record.Key()
		if id == "" {
			return ErrEmptyKey
		}
		if _, exists := items[id]; !exists {
			index.ReplaceOrInsert(id)
		}
		items[id] = record
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = items
	c.index = index

	return nil
}
