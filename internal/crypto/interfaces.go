// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the engine's crypto provider: a keychain that
// derives the collection key from a passphrase, and an AES-256-GCM cipher
// that seals serialized records into opaque blobs.
//
// Encryption is non-deterministic: every Seal call draws a fresh random
// nonce, so sealing identical records twice yields different blobs and
// ciphertext equality leaks nothing about plaintext equality. Decryption
// failures of any kind (framing, authentication tag, post-decrypt
// deserialization) surface as [ErrCorruptPayload].
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyChainService derives and generates key material for a collection.
// It knows nothing about storage or records; its only job is keys.
type KeyChainService interface {
	// GenerateSalt generates a random 16-byte (128-bit) salt. The salt is
	// not a secret and may be persisted next to the collection.
	GenerateSalt() ([]byte, error)

	// DeriveKey derives a 256-bit collection key from passphrase and salt
	// via Argon2id. The key exists only in process memory and is never
	// persisted.
	DeriveKey(passphrase string, salt []byte) []byte
}

// Cipher seals records into opaque blobs and opens them back. One Cipher is
// constructed per collection key; it holds no per-record state, so calls are
// safe for concurrent use.
type Cipher interface {
	// Seal serializes record to JSON and encrypts it with the collection
	// key. Returns a base64-encoded blob (nonce ‖ ciphertext).
	Seal(record any) (string, error)

	// Open decrypts a base64-encoded blob and unmarshals the plaintext into
	// target (same contract as json.Unmarshal: non-nil pointer). Malformed
	// or tampered blobs return an error matching [ErrCorruptPayload].
	Open(blob string, target any) error
}
