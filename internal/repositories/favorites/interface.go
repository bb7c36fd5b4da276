package favorites

import (
	"context"

	"nutridiary/internal/models"
)

// Repository persists the user's favorite products.
type Repository interface {
	Add(ctx context.Context, f *models.Favorite) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]models.Favorite, error)
	IsFavorite(ctx context.Context, userID, productID string) (bool, error)
}
