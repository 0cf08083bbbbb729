package crypto

import "errors"

var (
	// ErrCorruptPayload is returned by [Cipher.Open] when a blob cannot be
	// decoded, fails AES-GCM authentication, or decrypts to bytes that do
	// not deserialize. Callers should use [errors.Is] to match it.
	ErrCorruptPayload = errors.New("corrupt payload")

	// ErrInvalidKeyLength is returned when a Cipher is constructed with a
	// key that is not 32 bytes (AES-256).
	ErrInvalidKeyLength = errors.New("invalid key length")
)
