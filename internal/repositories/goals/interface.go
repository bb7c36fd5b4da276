package goals

import (
	"context"

	"nutridiary/internal/models"
)

// Repository describes persistence for the onboarding profile and daily
// targets, one row per user.
type Repository interface {
	// Upsert inserts or replaces the user's goals row.
	Upsert(ctx context.Context, g *models.UserGoals) error

	// GetByUserID returns the user's goals, or common.ErrNotFound when
	// onboarding has not completed yet.
	GetByUserID(ctx context.Context, userID string) (*models.UserGoals, error)
}
