package store

import (
	"database/sql"

	"github.com/MKhiriev/go-vault-cache/internal/logger"
	"github.com/MKhiriev/go-vault-cache/migrations"
)

// Driver names accepted by the connectors. They double as goose dialects.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	dialect            string
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
