// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for one
// collection of the cache-sync engine. It aggregates all sub-configurations
// and is populated by merging values from environment variables,
// command-line flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Collection holds identity settings for the managed collection.
	Collection Collection `envPrefix:"COLLECTION_"`

	// Storage holds configuration for the durable envelope store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Crypto holds the key-derivation inputs for the collection cipher.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Sync holds timing settings for the sync coordinator.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged under the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Collection holds identity settings for the managed collection.
type Collection struct {
	// Name identifies the collection in logs. One coordinator instance
	// manages exactly one collection.
	// Env: COLLECTION_NAME
	Name string `env:"NAME"`
}

// Storage groups the configuration for the durable envelope store.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the durable store backend.
type DB struct {
	// Driver selects the backend: "sqlite3" or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name for the selected driver: a file path for
	// sqlite3, a postgres:// URI for pgx.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Crypto holds the key-derivation inputs for the collection cipher. The key
// itself is derived in memory and never appears in configuration.
type Crypto struct {
	// Passphrase is the secret the collection key is derived from via
	// Argon2id. Must be kept confidential; env-only, no flag.
	// Env: CRYPTO_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`

	// Salt is the Base64-encoded key-derivation salt. Not a secret; it is
	// generated once per collection and persisted alongside it.
	// Env: CRYPTO_SALT
	Salt string `env:"SALT"`
}

// Sync holds timing settings for the sync coordinator.
type Sync struct {
	// OpTimeout bounds every durable store operation. A timed-out
	// operation is reported as storage unavailability (e.g. "5s", "1m").
	// Env: SYNC_OP_TIMEOUT
	OpTimeout time.Duration `env:"OP_TIMEOUT"`

	// RebuildInterval is the optional period of the background
	// rebuild-from-durable job. Zero disables the job.
	// Env: SYNC_REBUILD_INTERVAL
	RebuildInterval time.Duration `env:"REBUILD_INTERVAL"`
}

// GetConfig assembles the engine configuration from environment variables,
// command-line flags, an optional JSON file and built-in defaults, then
// validates the merged result.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
