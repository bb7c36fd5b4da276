package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nutridiary/internal/common"
	"nutridiary/internal/dbx"
	"nutridiary/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const statsColumns = `user_id, day, energy_kcal, proteins, carbs, sugars,
			fat, sat_fat, fiber, salt, meal_count, item_count`

func (r *SQLiteRepository) GetByUserDay(ctx context.Context, userID, day string) (*models.DailyStats, error) {
	query := `SELECT ` + statsColumns + ` FROM daily_stats WHERE user_id = ? AND day = ?`
	row := r.db.QueryRowContext(ctx, query, userID, day)

	s := &models.DailyStats{}
	if err := scanStatsInto(row, s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan daily stats: %w", err)
	}
	return s, nil
}

// Range returns rollups for days in [fromDay, toDay], oldest first. Days
// without logged meals have no row and are simply absent.
func (r *SQLiteRepository) Range(ctx context.Context, userID, fromDay, toDay string) ([]models.DailyStats, error) {
	query := `SELECT ` + statsColumns + ` FROM daily_stats
			WHERE user_id = ? AND day >= ? AND day <= ? ORDER BY day`
	rows, err := r.db.QueryContext(ctx, query, userID, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var result []models.DailyStats
	for rows.Next() {
		var s models.DailyStats
		if err := scanStatsInto(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily stats: %w", err)
	}
	return result, nil
}

// TallyGrades counts the day's logged items per Nutri-Score grade from the
// grade snapshots taken at logging time.
func (r *SQLiteRepository) TallyGrades(ctx context.Context, userID, day string) (*models.GradeTally, error) {
	query := `SELECT mi.nutri_score, COUNT(*)
			FROM meal_items mi
			JOIN meals m ON m.id = mi.meal_id
			WHERE m.user_id = ? AND m.day = ?
			GROUP BY mi.nutri_score`
	rows, err := r.db.QueryContext(ctx, query, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query grade tally: %w", err)
	}
	defer rows.Close()

	tally := &models.GradeTally{}
	for rows.Next() {
		var grade string
		var count int
		if err := rows.Scan(&grade, &count); err != nil {
			return nil, fmt.Errorf("failed to scan grade tally: %w", err)
		}
		switch grade {
		case "A":
			tally.A = count
		case "B":
			tally.B = count
		case "C":
			tally.C = count
		case "D":
			tally.D = count
		case "E":
			tally.E = count
		default:
			tally.Unknown += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate grade tally: %w", err)
	}
	return tally, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStatsInto(s rowScanner, d *models.DailyStats) error {
	return s.Scan(&d.UserID, &d.Day,
		&d.Totals.EnergyKcal, &d.Totals.Proteins, &d.Totals.Carbs, &d.Totals.Sugars,
		&d.Totals.Fat, &d.Totals.SatFat, &d.Totals.Fiber, &d.Totals.Salt,
		&d.MealCount, &d.ItemCount)
}
