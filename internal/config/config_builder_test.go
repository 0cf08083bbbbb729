package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBase() *StructuredConfig {
	return &StructuredConfig{
		Collection: Collection{Name: "secrets"},
		Storage:    Storage{DB: DB{Driver: "sqlite3", DSN: "/tmp/vault.db"}},
		Crypto:     Crypto{Passphrase: "hunter2"},
		Sync:       Sync{OpTimeout: 5 * time.Second},
	}
}

func TestBuild_SingleSource(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validBase())

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "secrets", cfg.Collection.Name)
	assert.Equal(t, "/tmp/vault.db", cfg.Storage.DB.DSN)
}

func TestBuild_EarlierSourceWins(t *testing.T) {
	higher := validBase()
	higher.Storage.DB.DSN = "/from/env.db"

	lower := validBase()
	lower.Storage.DB.DSN = "/from/json.db"
	lower.Sync.RebuildInterval = 10 * time.Minute

	b := newConfigBuilder()
	b.configs = append(b.configs, higher, lower)

	cfg, err := b.build()
	require.NoError(t, err)

	// mergo fills only fields the earlier source left empty
	assert.Equal(t, "/from/env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 10*time.Minute, cfg.Sync.RebuildInterval)
}

func TestBuild_DefaultsFillGaps(t *testing.T) {
	partial := &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "/tmp/vault.db"}},
		Crypto:  Crypto{Passphrase: "hunter2"},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, partial)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Collection.Name)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, 5*time.Second, cfg.Sync.OpTimeout)
}

func TestBuild_AccumulatedErrorSurfaces(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	_, err := b.build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := validBase()
	cfg.Storage.DB.DSN = ""

	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validBase()
	cfg.Storage.DB.Driver = "oracle"

	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestValidate_MissingPassphrase(t *testing.T) {
	cfg := validBase()
	cfg.Crypto.Passphrase = ""

	assert.ErrorIs(t, cfg.validate(), ErrInvalidCryptoConfigs)
}

func TestValidate_BadSaltEncoding(t *testing.T) {
	cfg := validBase()
	cfg.Crypto.Salt = "%%% not base64 %%%"

	assert.ErrorIs(t, cfg.validate(), ErrInvalidCryptoConfigs)
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := validBase()
	cfg.Sync.OpTimeout = -time.Second

	assert.ErrorIs(t, cfg.validate(), ErrInvalidSyncConfigs)
}

func TestValidate_ValidConfig(t *testing.T) {
	require.NoError(t, validBase().validate())
}
