package history

import (
	"context"

	"nutridiary/internal/models"
)

// Repository tracks the products a user has recently scanned, searched or
// logged, one row per (user, product).
type Repository interface {
	Touch(ctx context.Context, e *models.HistoryEntry) error
	ListRecent(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error)
	Clear(ctx context.Context, userID string) error
}
