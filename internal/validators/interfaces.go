// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides the schema-validation gate that every record
// must pass before it is allowed to mutate a collection.
//
// Core concepts:
//   - Validator: generic interface to validate a candidate record.
//   - Rule: one named check; rules compose into a RuleValidator.
//   - ValidationError: the rejection result, carrying every violated rule so
//     callers can report all problems at once instead of the first.
//
// Validators are pure: no side effects, no I/O. A rejected candidate leaves
// both stores untouched — the coordinator consults the validator before
// touching anything else.
package validators

import "context"

// Validator validates a candidate record of type T before a mutation.
// Implementations must be pure and safe for concurrent use.
type Validator[T any] interface {

	// Validate returns nil when candidate is acceptable, or a
	// *ValidationError describing every violated rule. Any other error type
	// signals a validator malfunction, not a rejection.
	Validate(ctx context.Context, candidate T) error
}
