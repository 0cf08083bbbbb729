// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the durable half of the engine: an encrypted
// envelope repository over database/sql with interchangeable SQLite and
// PostgreSQL backends.
//
// The durable store is the system of record. Every successful write here is
// assumed to survive process restarts; the in-memory cache is only ever a
// projection of what this package has committed. All I/O failures surface as
// [ErrStorageUnavailable] so callers can treat the whole class uniformly.
package store

import (
	"context"

	"github.com/MKhiriev/go-vault-cache/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// EnvelopeRepository is the durable store contract for one collection's
// encrypted envelopes. SaveEnvelope is an upsert keyed by envelope id.
// Enumeration order of GetAllEnvelopes is unspecified; callers must not
// depend on it.
type EnvelopeRepository interface {
	SaveEnvelope(ctx context.Context, envelope models.Envelope) error
	DeleteEnvelope(ctx context.Context, id string) error
	GetAllEnvelopes(ctx context.Context) ([]models.Envelope, error)
}

// ErrorClassificator classifies driver errors as retryable or not.
// Implementations are driver-specific.
type ErrorClassificator interface {

	// Classify inspects err and reports whether the failed operation may
	// succeed if attempted again.
	Classify(err error) ErrorClassification
}
