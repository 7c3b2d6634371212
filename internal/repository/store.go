package repository

import (
	"context"

	"github.com/rkbisoi/demo-loan-app-api/internal/models"
)

// Store is the persistence contract for the application collection.
//
// LoadAll returns every persisted record in insertion order; missing or
// unreadable data degrades to an empty collection (logged, never raised).
// SaveAll overwrites the whole collection and reports failure to the caller,
// which decides whether to surface it.
type Store interface {
	LoadAll(ctx context.Context) []models.ApplicationRecord
	SaveAll(ctx context.Context, records []models.ApplicationRecord) error
}
