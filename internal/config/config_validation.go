// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "encoding/base64"

// validate checks that the final merged [StructuredConfig] satisfies all
// engine invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.DB.Driver != "sqlite3" && cfg.Storage.DB.Driver != "pgx" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Crypto.Passphrase == "" {
		return ErrInvalidCryptoConfigs
	}

	if cfg.Crypto.Salt != "" {
		if _, err := base64.StdEncoding.DecodeString(cfg.Crypto.Salt); err != nil {
			return ErrInvalidCryptoConfigs
		}
	}

	if cfg.Sync.OpTimeout < 0 || cfg.Sync.RebuildInterval < 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
