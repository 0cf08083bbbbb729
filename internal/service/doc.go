// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the sync coordinator: the single CRUD surface
// that keeps one collection's durable encrypted store and its in-memory
// queryable cache consistent.
//
// The coordinator owns the write pipeline. Every mutation is validated,
// encrypted, committed to the durable store, and only then applied to the
// cache — in that order. Durable-first ordering means any failure or crash
// leaves the cache lagging behind durable truth, which is always safe to
// repair by rebuilding from the durable store; the cache can never run ahead
// with state that has no durable counterpart.
//
// Concurrency discipline: mutations for the same record id are serialized by
// a per-id mutex held across the whole commit-then-apply sequence, so the
// cache for an id never reflects an older durable state than the last
// completed commit. Mutations for different ids, and all read queries,
// proceed concurrently. Reads are served from the cache only and never wait
// on in-flight mutations. A cache rebuild excludes all mutations for the
// duration of its scan-and-swap, so a rebuilt snapshot can never roll the
// cache back behind a mutation that committed while the scan was running.
package service
