package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
)

// Driver-level failures must surface to the caller instead of being
// swallowed or mistranslated into not-found errors.

func TestAddItem_ProductQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT").WillReturnError(boom)

	s := NewDiaryService(db, newRepos())
	_, err = s.AddItem(context.Background(), "u1", "2025-09-01", models.MealBreakfast,
		"p1", nutrition.UnitGram, 50)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItem_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{
		"id", "barcode", "owner_user_id", "name", "brand", "quantity",
		"categories", "countries", "nutri_score", "nutri_score_score", "nova_group",
		"energy_kcal_100g", "proteins_100g", "carbs_100g", "sugars_100g",
		"fat_100g", "sat_fat_100g", "fiber_100g", "salt_100g", "piece_weight_g",
	}
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(cols).AddRow(
		"p1", "5601", "", "Aveia", "", "", "", "", "A", 0, 0,
		380.0, 12.0, 60.0, 1.0, 7.0, 1.2, 10.0, 0.02, 0.0))

	boom := errors.New("database is locked")
	mock.ExpectBegin().WillReturnError(boom)

	s := NewDiaryService(db, newRepos())
	_, err = s.AddItem(context.Background(), "u1", "2025-09-01", models.MealBreakfast,
		"p1", nutrition.UnitGram, 50)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveItem_RollbackOnRecalcError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("constraint failed")

	mock.ExpectBegin()
	itemCols := []string{
		"id", "meal_id", "product_id", "name", "unit", "quantity",
		"energy_kcal", "proteins", "carbs", "sugars", "fat", "sat_fat",
		"fiber", "salt", "nutri_score", "created_at",
	}
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(itemCols).AddRow(
		"i1", "m1", "p1", "Aveia", "g", 50.0,
		190.0, 6.0, 30.0, 0.5, 3.5, 0.6, 5.0, 0.01, "A", time.Now()))
	mealCols := []string{
		"id", "user_id", "day", "type",
		"energy_kcal", "proteins", "carbs", "sugars", "fat", "sat_fat",
		"fiber", "salt", "created_at",
	}
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(mealCols).AddRow(
		"m1", "u1", "2025-09-01", "breakfast",
		190.0, 6.0, 30.0, 0.5, 3.5, 0.6, 5.0, 0.01, time.Now()))
	mock.ExpectExec("DELETE FROM meal_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE meals").WillReturnError(boom)
	mock.ExpectRollback()

	s := NewDiaryService(db, newRepos())
	err = s.RemoveItem(context.Background(), "u1", "i1")
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
