// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models defines the data types shared between the storage, crypto
// and service layers: the record identity constraint, the persisted encrypted
// envelope, and a sample credential record used by the demo binary and tests.
package models

// Keyed is the constraint every cached record type must satisfy: a stable,
// unique, non-empty string identifier. The identifier is the join key between
// the durable store and the in-memory cache, so it must never change over the
// lifetime of a record — mutating a record is always "replace the record for
// this key", never an in-place edit.
type Keyed interface {
	Key() string
}
