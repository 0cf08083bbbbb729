// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-cache/internal/logger"
	"github.com/MKhiriev/go-vault-cache/models"
)

type envelopeRepository struct {
	*DB
	logger *logger.Logger
}

// NewEnvelopeRepository constructs the SQL-backed [EnvelopeRepository] for
// one collection's envelopes table.
func NewEnvelopeRepository(db *DB, logger *logger.Logger) EnvelopeRepository {
	return &envelopeRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *envelopeRepository) SaveEnvelope(ctx context.Context, envelope models.Envelope) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertEnvelope(envelope, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "envelopeRepository.SaveEnvelope").
			Str("id", envelope.ID).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to execute upsert for envelope")
		return storageFailure(fmt.Sprintf("save envelope (id=%s)", envelope.ID), err)
	}

	return nil
}

func (r *envelopeRepository) DeleteEnvelope(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteEnvelope(id)
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "envelopeRepository.DeleteEnvelope").
			Str("id", id).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to execute delete for envelope")
		return storageFailure(fmt.Sprintf("delete envelope (id=%s)", id), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "envelopeRepository.DeleteEnvelope").
			Str("id", id).
			Msg("failed to get rows affected after delete")
		return storageFailure(fmt.Sprintf("delete envelope (id=%s)", id), err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "envelopeRepository.DeleteEnvelope").
			Str("id", id).
			Msg("no rows affected during delete: envelope not found")
		return fmt.Errorf("delete envelope (id=%s): %w", id, ErrEnvelopeNotFound)
	}

	return nil
}

func (r *envelopeRepository) GetAllEnvelopes(ctx context.Context) ([]models.Envelope, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllEnvelopes()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "envelopeRepository.GetAllEnvelopes").
			Msg("failed to execute query for getting all envelopes")
		return nil, storageFailure("get all envelopes", err)
	}
	defer rows.Close()

	var envelopes []models.Envelope

	for rows.Next() {
		var envelope models.Envelope

		scanErr := rows.Scan(
			&envelope.ID,
			&envelope.Ciphertext,
			&envelope.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "envelopeRepository.GetAllEnvelopes").
				Msg("failed to scan envelope row")
			return nil, storageFailure("scan envelope row", scanErr)
		}

		envelopes = append(envelopes, envelope)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "envelopeRepository.GetAllEnvelopes").
			Msg("error occurred during rows iteration")
		return nil, storageFailure("iterate envelope rows", rowsErr)
	}

	return envelopes, nil
}
