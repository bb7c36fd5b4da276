package stats

import (
	"context"

	"nutridiary/internal/models"
)

// Repository reads the daily rollups maintained by the meals repository.
type Repository interface {
	GetByUserDay(ctx context.Context, userID, day string) (*models.DailyStats, error)
	Range(ctx context.Context, userID, fromDay, toDay string) ([]models.DailyStats, error)
	TallyGrades(ctx context.Context, userID, day string) (*models.GradeTally, error)
}
