package meals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nutridiary/internal/common"
	"nutridiary/internal/dbx"
	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const mealColumns = `id, user_id, day, type,
			energy_kcal, proteins, carbs, sugars, fat, sat_fat, fiber, salt, created_at`

const itemColumns = `id, meal_id, product_id, name, unit, quantity,
			energy_kcal, proteins, carbs, sugars, fat, sat_fat, fiber, salt, nutri_score, created_at`

// Create inserts an empty meal row. The (user_id, day, type) unique
// constraint guarantees at most one meal per slot.
func (r *SQLiteRepository) Create(ctx context.Context, m *models.Meal) error {
	query := `INSERT INTO meals (id, user_id, day, type, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.UserID, m.Day, string(m.Type), m.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create meal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = ?`
	return scanMeal(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) GetByUserDayType(ctx context.Context, userID, day string, mt models.MealType) (*models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE user_id = ? AND day = ? AND type = ?`
	return scanMeal(r.db.QueryRowContext(ctx, query, userID, day, string(mt)))
}

// ListByUserDay returns the day's meals in diary order, breakfast first.
func (r *SQLiteRepository) ListByUserDay(ctx context.Context, userID, day string) ([]models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE user_id = ? AND day = ?
			ORDER BY CASE type
				WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 WHEN 'dinner' THEN 2 ELSE 3
			END`
	rows, err := r.db.QueryContext(ctx, query, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	var result []models.Meal
	for rows.Next() {
		var m models.Meal
		if err := scanMealInto(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}
	return result, nil
}

// DeleteByID removes the meal; items follow via ON DELETE CASCADE.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) InsertItem(ctx context.Context, item *models.MealItem) error {
	query := `INSERT INTO meal_items (` + itemColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.MealID, item.ProductID, item.Name, string(item.Unit), item.Quantity,
		item.Nutrients.EnergyKcal, item.Nutrients.Proteins, item.Nutrients.Carbs, item.Nutrients.Sugars,
		item.Nutrients.Fat, item.Nutrients.SatFat, item.Nutrients.Fiber, item.Nutrients.Salt,
		item.NutriScore, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert meal item: %w", err)
	}
	return nil
}

// UpdateItem rewrites the quantity and the nutrient snapshot. The product
// reference and the meal it belongs to never change on edit.
func (r *SQLiteRepository) UpdateItem(ctx context.Context, item *models.MealItem) error {
	query := `UPDATE meal_items SET unit = ?, quantity = ?,
			energy_kcal = ?, proteins = ?, carbs = ?, sugars = ?,
			fat = ?, sat_fat = ?, fiber = ?, salt = ?
			WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(item.Unit), item.Quantity,
		item.Nutrients.EnergyKcal, item.Nutrients.Proteins, item.Nutrients.Carbs, item.Nutrients.Sugars,
		item.Nutrients.Fat, item.Nutrients.SatFat, item.Nutrients.Fiber, item.Nutrients.Salt,
		item.ID)
	if err != nil {
		return fmt.Errorf("failed to update meal item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteItem(ctx context.Context, itemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_items WHERE id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete meal item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) GetItem(ctx context.Context, itemID string) (*models.MealItem, error) {
	query := `SELECT ` + itemColumns + ` FROM meal_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, itemID)

	item := &models.MealItem{}
	if err := scanItemInto(row, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan meal item: %w", err)
	}
	return item, nil
}

func (r *SQLiteRepository) ListItems(ctx context.Context, mealID string) ([]models.MealItem, error) {
	query := `SELECT ` + itemColumns + ` FROM meal_items WHERE meal_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal items: %w", err)
	}
	defer rows.Close()

	var result []models.MealItem
	for rows.Next() {
		var item models.MealItem
		if err := scanItemInto(rows, &item); err != nil {
			return nil, fmt.Errorf("failed to scan meal item: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal items: %w", err)
	}
	return result, nil
}

// RecalcMealTotals re-sums the meal's aggregate columns from its items.
// Totals are stored, not derived at read time, so every item mutation must
// be followed by this call inside the same transaction.
func (r *SQLiteRepository) RecalcMealTotals(ctx context.Context, mealID string) error {
	query := `UPDATE meals SET
			(energy_kcal, proteins, carbs, sugars, fat, sat_fat, fiber, salt) =
			(SELECT COALESCE(SUM(energy_kcal), 0), COALESCE(SUM(proteins), 0),
				COALESCE(SUM(carbs), 0), COALESCE(SUM(sugars), 0),
				COALESCE(SUM(fat), 0), COALESCE(SUM(sat_fat), 0),
				COALESCE(SUM(fiber), 0), COALESCE(SUM(salt), 0)
			 FROM meal_items WHERE meal_id = meals.id)
			WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, mealID); err != nil {
		return fmt.Errorf("failed to recalc meal totals: %w", err)
	}
	return nil
}

// RecalcDailyStats overwrites the (user, day) rollup with fresh sums over
// the day's meals and items. Days with no meals left get their row removed
// so history queries do not report empty days.
func (r *SQLiteRepository) RecalcDailyStats(ctx context.Context, userID, day string) error {
	query := `INSERT INTO daily_stats
			(user_id, day, energy_kcal, proteins, carbs, sugars, fat, sat_fat, fiber, salt, meal_count, item_count)
			SELECT ?, ?,
				COALESCE(SUM(m.energy_kcal), 0), COALESCE(SUM(m.proteins), 0),
				COALESCE(SUM(m.carbs), 0), COALESCE(SUM(m.sugars), 0),
				COALESCE(SUM(m.fat), 0), COALESCE(SUM(m.sat_fat), 0),
				COALESCE(SUM(m.fiber), 0), COALESCE(SUM(m.salt), 0),
				COUNT(m.id),
				COALESCE((SELECT COUNT(*) FROM meal_items mi
					JOIN meals m2 ON m2.id = mi.meal_id
					WHERE m2.user_id = ? AND m2.day = ?), 0)
			FROM meals m WHERE m.user_id = ? AND m.day = ?
			ON CONFLICT(user_id, day) DO UPDATE SET
				energy_kcal = excluded.energy_kcal,
				proteins = excluded.proteins,
				carbs = excluded.carbs,
				sugars = excluded.sugars,
				fat = excluded.fat,
				sat_fat = excluded.sat_fat,
				fiber = excluded.fiber,
				salt = excluded.salt,
				meal_count = excluded.meal_count,
				item_count = excluded.item_count`
	if _, err := r.db.ExecContext(ctx, query, userID, day, userID, day, userID, day); err != nil {
		return fmt.Errorf("failed to recalc daily stats: %w", err)
	}

	cleanup := `DELETE FROM daily_stats WHERE user_id = ? AND day = ? AND meal_count = 0`
	if _, err := r.db.ExecContext(ctx, cleanup, userID, day); err != nil {
		return fmt.Errorf("failed to prune empty daily stats: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMealInto(s rowScanner, m *models.Meal) error {
	var mt string
	err := s.Scan(&m.ID, &m.UserID, &m.Day, &mt,
		&m.Totals.EnergyKcal, &m.Totals.Proteins, &m.Totals.Carbs, &m.Totals.Sugars,
		&m.Totals.Fat, &m.Totals.SatFat, &m.Totals.Fiber, &m.Totals.Salt, &m.CreatedAt)
	if err != nil {
		return err
	}
	m.Type = models.MealType(mt)
	return nil
}

func scanMeal(row *sql.Row) (*models.Meal, error) {
	m := &models.Meal{}
	if err := scanMealInto(row, m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan meal: %w", err)
	}
	return m, nil
}

func scanItemInto(s rowScanner, item *models.MealItem) error {
	var unit string
	err := s.Scan(&item.ID, &item.MealID, &item.ProductID, &item.Name, &unit, &item.Quantity,
		&item.Nutrients.EnergyKcal, &item.Nutrients.Proteins, &item.Nutrients.Carbs, &item.Nutrients.Sugars,
		&item.Nutrients.Fat, &item.Nutrients.SatFat, &item.Nutrients.Fiber, &item.Nutrients.Salt,
		&item.NutriScore, &item.CreatedAt)
	if err != nil {
		return err
	}
	item.Unit = nutrition.Unit(unit)
	return nil
}
