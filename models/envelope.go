// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Envelope is the durable store's unit: one encrypted record. Ciphertext is a
// Base64 blob of nonce ‖ AES-GCM ciphertext as produced by the crypto layer,
// so the envelope itself carries everything needed for decryption except the
// key. ID must equal the Key() of the record sealed inside — it is the join
// key between the durable store and the in-memory cache.
type Envelope struct {
	ID         string
	Ciphertext string
	UpdatedAt  *time.Time
}
