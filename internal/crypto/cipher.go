// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// aesCipher is the private implementation of [Cipher]: AES-256-GCM over
// JSON-serialized records, nonce prepended to the ciphertext.
type aesCipher struct {
	key []byte
}

// NewAESCipher constructs a [Cipher] around a 32-byte AES-256 key, typically
// produced by [KeyChainService.DeriveKey]. The key is copied, so the caller
// may zero its own slice afterwards.
func NewAESCipher(key []byte) (Cipher, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: %d bytes, want 32", ErrInvalidKeyLength, len(key))
	}
	return &aesCipher{key: append([]byte(nil), key...)}, nil
}

// Seal implements [Cipher]. It marshals record to JSON, then encrypts it
// with AES-256-GCM. The output is a Base64 (standard encoding) string of the
// blob: nonce (12 bytes) ‖ ciphertext. Returns an error if marshalling,
// cipher creation, or nonce generation fails.
func (c *aesCipher) Seal(record any) (string, error) {
	// 1. Serialize to JSON
	plaintext, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	// 2. Build AES-GCM cipher from the collection key
	gcm, err := c.gcm()
	if err != nil {
		return "", err
	}

	// 3. Generate a random nonce
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// 4. Encrypt: nonce || ciphertext
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [Cipher]. It Base64-decodes blob, splits out the nonce,
// decrypts the ciphertext with AES-256-GCM, and unmarshals the resulting
// JSON into target. Every failure mode on the untrusted-input path (decode,
// framing, authentication tag, unmarshal) is wrapped in [ErrCorruptPayload]
// so callers can treat a damaged envelope as one condition.
func (c *aesCipher) Open(blob string, target any) error {
	// 1. Decode base64 blob
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return fmt.Errorf("%w: decode base64: %w", ErrCorruptPayload, err)
	}

	// 2. Build AES-GCM cipher from the collection key
	gcm, err := c.gcm()
	if err != nil {
		return err
	}

	// 3. Split nonce and ciphertext
	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		return fmt.Errorf("%w: ciphertext too short", ErrCorruptPayload)
	}
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	// 4. Decrypt and verify auth tag
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("%w: decrypt: %w", ErrCorruptPayload, err)
	}

	// 5. Unmarshal JSON into target
	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("%w: unmarshal record: %w", ErrCorruptPayload, err)
	}

	return nil
}

func (c *aesCipher) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
