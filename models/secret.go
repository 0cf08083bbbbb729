// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Secret is a credential-shaped record: the concrete instantiation of the
// engine used by the demo binary and the test suites. The engine itself is
// parametric over [Keyed] and never inspects fields beyond the key.
type Secret struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Login     string     `json:"login,omitempty"`
	Password  string     `json:"password,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Key implements [Keyed].
func (s Secret) Key() string {
	return s.ID
}
