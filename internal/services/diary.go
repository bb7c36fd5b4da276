package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nutridiary/internal/common"
	"nutridiary/internal/dbx"
	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
	"nutridiary/internal/repositories/repomanager"
)

// DiaryService handles meal and item mutations. Every mutation runs in one
// transaction that also re-sums the parent meal's totals and the day's
// rollup, so the stored aggregates never drift from the item rows.
type DiaryService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewDiaryService constructs a DiaryService.
func NewDiaryService(db *sql.DB, repos repomanager.RepositoryManager) *DiaryService {
	return &DiaryService{db: db, repos: repos}
}

// AddItem logs a product into the given meal slot, creating the meal row on
// first use. The nutrient snapshot is computed from the product's per-100g
// baseline at logging time. Returns the stored item.
func (s *DiaryService) AddItem(ctx context.Context, userID, day string, mt models.MealType, productID string, unit nutrition.Unit, quantity float64) (*models.MealItem, error) {
	product, err := s.repos.Products(s.db).GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	snapshot, err := nutrition.ForQuantity(product.Per100g, unit, quantity, product.PieceWeightG)
	if err != nil {
		return nil, err
	}

	item := &models.MealItem{
		ID:         uuid.NewString(),
		ProductID:  product.ID,
		Name:       product.Name,
		Unit:       unit,
		Quantity:   quantity,
		Nutrients:  snapshot,
		NutriScore: product.NutriScore,
		CreatedAt:  time.Now(),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		mealsRepo := s.repos.Meals(tx)

		meal, err := mealsRepo.GetByUserDayType(ctx, userID, day, mt)
		if errors.Is(err, common.ErrNotFound) {
			meal = &models.Meal{
				ID:        uuid.NewString(),
				UserID:    userID,
				Day:       day,
				Type:      mt,
				CreatedAt: time.Now(),
			}
			err = mealsRepo.Create(ctx, meal)
		}
		if err != nil {
			return err
		}

		item.MealID = meal.ID
		if err := mealsRepo.InsertItem(ctx, item); err != nil {
			return err
		}
		if err := mealsRepo.RecalcMealTotals(ctx, meal.ID); err != nil {
			return err
		}
		if err := mealsRepo.RecalcDailyStats(ctx, userID, day); err != nil {
			return err
		}

		entry := &models.HistoryEntry{
			UserID:     userID,
			ProductID:  product.ID,
			Source:     models.HistorySourceDiary,
			LastSeenAt: time.Now(),
		}
		return s.repos.History(tx).Touch(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// EditItem changes an item's quantity (and unit) and recomputes its nutrient
// snapshot from the referenced product's current baseline.
func (s *DiaryService) EditItem(ctx context.Context, userID, itemID string, unit nutrition.Unit, quantity float64) (*models.MealItem, error) {
	var updated *models.MealItem

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		mealsRepo := s.repos.Meals(tx)

		item, meal, err := s.ownedItem(ctx, tx, userID, itemID)
		if err != nil {
			return err
		}

		product, err := s.repos.Products(tx).GetByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		snapshot, err := nutrition.ForQuantity(product.Per100g, unit, quantity, product.PieceWeightG)
		if err != nil {
			return err
		}

		item.Unit = unit
		item.Quantity = quantity
		item.Nutrients = snapshot
		if err := mealsRepo.UpdateItem(ctx, item); err != nil {
			return err
		}
		if err := mealsRepo.RecalcMealTotals(ctx, meal.ID); err != nil {
			return err
		}
		if err := mealsRepo.RecalcDailyStats(ctx, meal.UserID, meal.Day); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveItem deletes an item and re-sums its meal and day. The meal row
// stays even when its last item goes, with zeroed totals.
func (s *DiaryService) RemoveItem(ctx context.Context, userID, itemID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		mealsRepo := s.repos.Meals(tx)

		item, meal, err := s.ownedItem(ctx, tx, userID, itemID)
		if err != nil {
			return err
		}
		if err := mealsRepo.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		if err := mealsRepo.RecalcMealTotals(ctx, meal.ID); err != nil {
			return err
		}
		return mealsRepo.RecalcDailyStats(ctx, meal.UserID, meal.Day)
	})
}

// DeleteMeal removes a whole meal with its items and re-sums the day.
func (s *DiaryService) DeleteMeal(ctx context.Context, userID, day string, mt models.MealType) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		mealsRepo := s.repos.Meals(tx)

		meal, err := mealsRepo.GetByUserDayType(ctx, userID, day, mt)
		if err != nil {
			return err
		}
		if err := mealsRepo.DeleteByID(ctx, meal.ID); err != nil {
			return err
		}
		return mealsRepo.RecalcDailyStats(ctx, userID, day)
	})
}

// GetMeal returns one meal slot with its items.
func (s *DiaryService) GetMeal(ctx context.Context, userID, day string, mt models.MealType) (*models.Meal, error) {
	mealsRepo := s.repos.Meals(s.db)
	meal, err := mealsRepo.GetByUserDayType(ctx, userID, day, mt)
	if err != nil {
		return nil, err
	}
	meal.Items, err = mealsRepo.ListItems(ctx, meal.ID)
	if err != nil {
		return nil, err
	}
	return meal, nil
}

// GetDay returns the day's meals in diary order, items included.
func (s *DiaryService) GetDay(ctx context.Context, userID, day string) ([]models.Meal, error) {
	mealsRepo := s.repos.Meals(s.db)
	dayMeals, err := mealsRepo.ListByUserDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	for i := range dayMeals {
		dayMeals[i].Items, err = mealsRepo.ListItems(ctx, dayMeals[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return dayMeals, nil
}

// ownedItem loads an item and its parent meal, refusing items that belong
// to another user's diary.
func (s *DiaryService) ownedItem(ctx context.Context, db dbx.DBTX, userID, itemID string) (*models.MealItem, *models.Meal, error) {
	mealsRepo := s.repos.Meals(db)

	item, err := mealsRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	meal, err := mealsRepo.GetByID(ctx, item.MealID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load parent meal: %w", err)
	}
	if meal.UserID != userID {
		return nil, nil, common.ErrNotFound
	}
	return item, meal, nil
}
