package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid durable store settings
	// (for example, empty DSN or an unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidCryptoConfigs indicates invalid key-derivation settings
	// (for example, a missing passphrase or undecodable salt).
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidSyncConfigs indicates invalid coordinator timing settings
	// (for example, a negative operation timeout).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
