package weights

import (
	"context"

	"nutridiary/internal/models"
)

// Repository persists body-weight measurements, one per user per day.
type Repository interface {
	Upsert(ctx context.Context, w *models.WeightLog) error
	GetByUserDay(ctx context.Context, userID, day string) (*models.WeightLog, error)
	Range(ctx context.Context, userID, fromDay, toDay string) ([]models.WeightLog, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.WeightLog, error)
	DeleteByDay(ctx context.Context, userID, day string) error
}
