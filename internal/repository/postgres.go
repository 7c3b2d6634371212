package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rkbisoi/demo-loan-app-api/internal/models"
	"github.com/sirupsen/logrus"
)

// PostgresStore keeps each application record as a JSONB row, ordered by a
// serial position so LoadAll preserves insertion order. SaveAll rewrites the
// whole table in one transaction, matching the save-all contract.
type PostgresStore struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewPostgresStore initializes a Postgres-backed store
func NewPostgresStore(db *sql.DB, log *logrus.Logger) *PostgresStore {
	return &PostgresStore{db: db, log: log}
}

// EnsureSchema creates the applications table. Safe to call repeatedly.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS applications (
			position SERIAL PRIMARY KEY,
			id TEXT NOT NULL,
			payload JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create applications table: %w", err)
	}
	return nil
}

// LoadAll reads the full collection in insertion order. Query failures are
// logged and degrade to an empty collection; a malformed row is skipped
// rather than failing the whole read.
func (s *PostgresStore) LoadAll(ctx context.Context) []models.ApplicationRecord {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM applications ORDER BY position`)
	if err != nil {
		s.log.Errorf("Failed to load applications from postgres: %v", err)
		return nil
	}
	defer rows.Close()

	var records []models.ApplicationRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			s.log.Errorf("Failed to scan application row: %v", err)
			continue
		}
		var record models.ApplicationRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			s.log.Errorf("Skipping malformed application row: %v", err)
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		s.log.Errorf("Failed to iterate application rows: %v", err)
	}
	return records
}

// SaveAll overwrites the persisted collection with the given records.
func (s *PostgresStore) SaveAll(ctx context.Context, records []models.ApplicationRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM applications`); err != nil {
		return fmt.Errorf("failed to clear applications: %w", err)
	}

	for _, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode application %s: %w", record.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO applications (id, payload) VALUES ($1, $2)`,
			record.ID, payload,
		); err != nil {
			return fmt.Errorf("failed to insert application %s: %w", record.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit applications: %w", err)
	}
	return nil
}
