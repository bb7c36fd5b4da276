package meals

import (
	"context"

	"nutridiary/internal/models"
)

// Repository persists meals and their items. Create and the item mutations
// take whatever DBTX the repository was built with, so callers compose them
// with the aggregate recalculation inside one transaction.
type Repository interface {
	Create(ctx context.Context, m *models.Meal) error
	GetByID(ctx context.Context, id string) (*models.Meal, error)
	GetByUserDayType(ctx context.Context, userID, day string, mt models.MealType) (*models.Meal, error)
	ListByUserDay(ctx context.Context, userID, day string) ([]models.Meal, error)
	DeleteByID(ctx context.Context, id string) error

	InsertItem(ctx context.Context, item *models.MealItem) error
	UpdateItem(ctx context.Context, item *models.MealItem) error
	DeleteItem(ctx context.Context, itemID string) error
	GetItem(ctx context.Context, itemID string) (*models.MealItem, error)
	ListItems(ctx context.Context, mealID string) ([]models.MealItem, error)

	RecalcMealTotals(ctx context.Context, mealID string) error
	RecalcDailyStats(ctx context.Context, userID, day string) error
}
