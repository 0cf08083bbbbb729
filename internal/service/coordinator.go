// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-vault-cache/internal/cache"
	"github.com/MKhiriev/go-vault-cache/internal/crypto"
	"github.com/MKhiriev/go-vault-cache/internal/logger"
	"github.com/MKhiriev/go-vault-cache/internal/store"
	"github.com/MKhiriev/go-vault-cache/internal/validators"
	"github.com/MKhiriev/go-vault-cache/models"
)

// State is the lifecycle state of a collection.
type State int32

const (
	// StateUninitialized is the zero state: Init has never completed.
	StateUninitialized State = iota
	// StateInitializing is transient: the durable store is being scanned.
	StateInitializing
	// StateReady is the only state in which mutations are accepted.
	StateReady
	// StateStale means a cache-side failure occurred after a durable
	// commit; Reload is required before mutations are accepted again.
	StateStale
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateStale:
		return "stale"
	}
	return "unknown"
}

// Coordinator keeps one collection's durable encrypted store and in-memory
// cache consistent, exposing the collection's whole CRUD surface. One
// Coordinator instance owns one collection exclusively; no two Coordinators
// may manage the same collection concurrently.
type Coordinator[T models.Keyed] struct {
	collection string
	repo       store.EnvelopeRepository
	cipher     crypto.Cipher
	validator  validators.Validator[T]
	cache      *cache.Collection[T]
	logger     *logger.Logger
	opTimeout  time.Duration

	state atomic.Int32
	// initMu serializes Init/Reload against each other; reloadMu excludes a
	// rebuild's scan-and-swap from in-flight mutations (read-held across a
	// mutation's commit-then-apply, write-held across loadFromDurable), so a
	// snapshot taken before a durable commit can never overwrite that
	// commit's cache entry.
	initMu   sync.Mutex
	reloadMu sync.RWMutex
	keys     *keyedMutex
}

// NewCoordinator constructs a [Coordinator] for one collection. opTimeout
// bounds every durable store operation; zero means no bound. The coordinator
// starts in [StateUninitialized]; call [Coordinator.Init] before mutating.
func NewCoordinator[T models.Keyed](
	collection string,
	repo store.EnvelopeRepository,
	cipher crypto.Cipher,
	validator validators.Validator[T],
	log *logger.Logger,
	opTimeout time.Duration,
) *Coordinator[T] {
	return &Coordinator[T]{
		collection: collection,
		repo:       repo,
		cipher:     cipher,
		validator:  validator,
		cache:      cache.New[T](),
		logger:     log,
		opTimeout:  opTimeout,
		keys:       newKeyedMutex(),
	}
}

// State reports the collection's current lifecycle state.
func (c *Coordinator[T]) State() State {
	return State(c.state.Load())
}

// Collection reports the collection name this coordinator manages.
func (c *Coordinator[T]) Collection() string {
	return c.collection
}

// Init scans the durable store, decrypts every envelope, loads the survivors
// into the cache and transitions the collection to [StateReady].
//
// Recovery is best effort: an envelope that fails to decrypt or deserialize
// is skipped and logged, never fatal — one corrupted record must not block
// the whole collection from becoming usable. Init is idempotent-safe: once
// Ready, further calls are a no-op.
func (c *Coordinator[T]) Init(ctx context.Context) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	if c.State() == StateReady {
		return nil
	}

	return c.loadFromDurable(ctx)
}

// Reload rebuilds the cache from the durable store regardless of the current
// state. It is the recovery path for a [StateStale] collection and the body
// of the background rebuild job. Rebuilding a [StateReady] collection leaves
// it Ready throughout; mutations issued during the rebuild block until the
// new cache is swapped in, never fail spuriously.
func (c *Coordinator[T]) Reload(ctx context.Context) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	return c.loadFromDurable(ctx)
}

// loadFromDurable is the shared scan-decrypt-load sequence. Callers must
// hold initMu.
func (c *Coordinator[T]) loadFromDurable(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	// Only a collection that is not yet usable goes through Initializing; a
	// background rebuild of a Ready collection stays Ready, so concurrent
	// mutations wait on reloadMu instead of being rejected.
	prev := c.State()
	if prev != StateReady {
		c.state.Store(int32(StateInitializing))
	}

	opCtx, cancel := c.boundDurable(ctx)
	defer cancel()

	envelopes, err := c.repo.GetAllEnvelopes(opCtx)
	if err != nil {
		// Nothing was changed; fall back to the previous state so a failed
		// background reload does not brick a Ready collection.
		c.state.Store(int32(prev))
		return c.asStorageErr(fmt.Errorf("enumerate envelopes: %w", err))
	}

	records := make([]T, 0, len(envelopes))
	skipped := 0
	for _, envelope := range envelopes {
		var record T
		if openErr := c.cipher.Open(envelope.Ciphertext, &record); openErr != nil {
			skipped++
			c.logger.Warn().
				Str("func", "Coordinator.loadFromDurable").
				Str("collection", c.collection).
				Str("id", envelope.ID).
				Err(openErr).
				Msg("skipping corrupted envelope during load")
			continue
		}
		if record.Key() != envelope.ID {
			// The envelope id is the join key; a mismatch means the payload
			// does not belong under this id. Treated like corruption.
			skipped++
			c.logger.Warn().
				Str("func", "Coordinator.loadFromDurable").
				Str("collection", c.collection).
				Str("id", envelope.ID).
				Str("record_key", record.Key()).
				Msg("skipping envelope whose payload key does not match its id")
			continue
		}
		records = append(records, record)
	}

	if err := c.cache.Replace(records); err != nil {
		c.state.Store(int32(StateStale))
		return fmt.Errorf("load cache: %w: %w", ErrCacheCorruption, err)
	}

	c.state.Store(int32(StateReady))
	c.logger.Info().
		Str("func", "Coordinator.loadFromDurable").
		Str("collection", c.collection).
		Int("loaded", len(records)).
		Int("skipped", skipped).
		Msg("collection loaded from durable store")

	return nil
}

// Add validates, encrypts and stores record, then mirrors it into the cache.
// Adding an id that already exists replaces the stored record.
func (c *Coordinator[T]) Add(ctx context.Context, record T) error {
	return c.upsert(ctx, record, "add")
}

// Update replaces the record stored under record's key. Records are
// immutable snapshots, so an update is a whole-record replacement; Update
// shares Add's upsert pipeline.
func (c *Coordinator[T]) Update(ctx context.Context, record T) error {
	return c.upsert(ctx, record, "update")
}

func (c *Coordinator[T]) upsert(ctx context.Context, record T, op string) error {
	if err := c.requireReady(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// 1. Validate. A rejected candidate touches neither store.
	if err := c.validator.Validate(ctx, record); err != nil {
		return fmt.Errorf("%s: validate record: %w", op, err)
	}

	id := record.Key()
	if id == "" {
		return fmt.Errorf("%s: validate record: %w", op,
			&validators.ValidationError{Violations: []string{"key: record key is required"}})
	}

	c.keys.Lock(id)
	defer c.keys.Unlock(id)

	c.reloadMu.RLock()
	defer c.reloadMu.RUnlock()

	// The collection may have gone stale while we waited for the locks.
	if err := c.requireReady(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// 2. Encrypt.
	blob, err := c.cipher.Seal(record)
	if err != nil {
		return fmt.Errorf("%s: encrypt record: %w", op, err)
	}

	// 3. Commit durable-first. On failure the cache is untouched: it lags
	// behind durable truth, never runs ahead of it.
	opCtx, cancel := c.boundDurable(ctx)
	defer cancel()

	if err := c.repo.SaveEnvelope(opCtx, models.Envelope{ID: id, Ciphertext: blob}); err != nil {
		return c.asStorageErr(fmt.Errorf("%s: commit envelope: %w", op, err))
	}

	// 4. Mirror into the cache. A failure here cannot lose data — the
	// durable store already holds the record — but the mirror is broken
	// until a reload, so the collection is marked stale.
	if err := c.cache.Put(record); err != nil {
		c.state.Store(int32(StateStale))
		c.logger.Error().
			Str("func", "Coordinator.upsert").
			Str("collection", c.collection).
			Str("id", id).
			Err(err).
			Msg("cache upsert failed after durable commit, collection marked stale")
		return fmt.Errorf("%s: %w: %w", op, ErrCacheCorruption, err)
	}

	return nil
}

// Delete removes the record under id from the durable store, then from the
// cache. On durable failure the cache entry is left intact — no phantom
// deletions. Deleting an unknown id returns [store.ErrEnvelopeNotFound].
func (c *Coordinator[T]) Delete(ctx context.Context, id string) error {
	if err := c.requireReady(); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	c.keys.Lock(id)
	defer c.keys.Unlock(id)

	c.reloadMu.RLock()
	defer c.reloadMu.RUnlock()

	if err := c.requireReady(); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	opCtx, cancel := c.boundDurable(ctx)
	defer cancel()

	if err := c.repo.DeleteEnvelope(opCtx, id); err != nil {
		return c.asStorageErr(fmt.Errorf("delete: remove envelope: %w", err))
	}

	c.cache.Delete(id)
	return nil
}

// GetAll returns a snapshot of every cached record ordered by key. It never
// touches the durable store and never waits on in-flight mutations; before
// Init completes it returns an empty slice.
func (c *Coordinator[T]) GetAll() []T {
	return c.cache.GetAll()
}

// GetByID returns the cached record under id and whether it exists.
func (c *Coordinator[T]) GetByID(id string) (T, bool) {
	return c.cache.GetByID(id)
}

// Select returns a snapshot of every cached record satisfying pred, ordered
// by key.
func (c *Coordinator[T]) Select(pred func(T) bool) []T {
	return c.cache.Select(pred)
}

// Range returns a snapshot of cached records with fromID <= key < toID,
// ordered by key. An empty toID means "to the end".
func (c *Coordinator[T]) Range(fromID, toID string) []T {
	return c.cache.Range(fromID, toID)
}

// Count returns the number of cached records.
func (c *Coordinator[T]) Count() int {
	return c.cache.Len()
}

func (c *Coordinator[T]) requireReady() error {
	switch c.State() {
	case StateReady:
		return nil
	case StateStale:
		return ErrCacheCorruption
	default:
		return ErrNotInitialized
	}
}

// boundDurable derives the context for one durable store operation,
// applying the configured timeout when one is set.
func (c *Coordinator[T]) boundDurable(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opTimeout > 0 {
		return context.WithTimeout(ctx, c.opTimeout)
	}
	return context.WithCancel(ctx)
}

// asStorageErr folds context expiry into the storage-unavailable class: a
// timed-out durable operation is indistinguishable, from the caller's point
// of view, from an unavailable store.
func (c *Coordinator[T]) asStorageErr(err error) error {
	if errors.Is(err, store.ErrStorageUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", store.ErrStorageUnavailable, err)
	}
	return err
}
