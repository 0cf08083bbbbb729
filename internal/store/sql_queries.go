package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-cache/models"
)

const envelopesTable = "envelopes"

// Dollar placeholders are understood by both pgx and mattn/go-sqlite3, so a
// single set of builders serves both backends.
var queryBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildUpsertEnvelope(envelope models.Envelope, now time.Time) (string, []any, error) {
	return queryBuilder.
		Insert(envelopesTable).
		Columns("id", "ciphertext", "updated_at").
		Values(envelope.ID, envelope.Ciphertext, now).
		Suffix("ON CONFLICT (id) DO UPDATE SET ciphertext = excluded.ciphertext, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteEnvelope(id string) (string, []any, error) {
	return queryBuilder.
		Delete(envelopesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSelectAllEnvelopes() (string, []any, error) {
	return queryBuilder.
		Select("id", "ciphertext", "updated_at").
		From(envelopesTable).
		ToSql()
}
