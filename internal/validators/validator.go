// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
)

// Rule is one named schema check for a candidate of type T. Check returns
// nil when the candidate satisfies the rule, or an error describing the
// violation. Rules must not perform I/O.
type Rule[T any] struct {
	Name  string
	Check func(candidate T) error
}

// RuleValidator composes an ordered set of rules into a [Validator]. All
// rules are evaluated even after the first failure so the resulting
// *ValidationError lists every violation.
type RuleValidator[T any] struct {
	rules []Rule[T]
}

// NewRuleValidator constructs a [RuleValidator] over the given rules.
func NewRuleValidator[T any](rules ...Rule[T]) *RuleValidator[T] {
	return &RuleValidator[T]{rules: rules}
}

// Validate implements [Validator].
func (v *RuleValidator[T]) Validate(_ context.Context, candidate T) error {
	var violations []string
	for _, r := range v.rules {
		if err := r.Check(candidate); err != nil {
			violations = append(violations, fmt.Sprintf("%s: %s", r.Name, err))
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
