package weights

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

// Upsert records the day's weight, overwriting an earlier measurement for
// the same day.
func (r *SQLiteRepository) Upsert(ctx context.Context, w *models.WeightLog) error {
	query := `INSERT INTO weight_log (user_id, day, weight_kg, note, created_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(user_id, day) DO UPDATE SET
				weight_kg = excluded.weight_kg,
				note = excluded.note,
				created_at = excluded.created_at`
	_, err := r.db.ExecContext(ctx, query, w.UserID, w.Day, w.WeightKg, w.Note, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert weight: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByUserDay(ctx context.Context, userID, day string) (*models.WeightLog, error) {
	query := `SELECT user_id, day, weight_kg, note, created_at
			FROM weight_log WHERE user_id = ? AND day = ?`
	row := r.db.QueryRowContext(ctx, query, userID, day)

	w := &models.WeightLog{}
	err := row.Scan(&w.UserID, &w.Day, &w.WeightKg, &w.Note, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan weight: %w", err)
	}
	return w, nil
}

// Range returns measurements in [fromDay, toDay], oldest first.
func (r *SQLiteRepository) Range(ctx context.Context, userID, fromDay, toDay string) ([]models.WeightLog, error) {
	query := `SELECT user_id, day, weight_kg, note, created_at FROM weight_log
			WHERE user_id = ? AND day >= ? AND day <= ? ORDER BY day`
	return r.list(ctx, query, userID, fromDay, toDay)
}

// ListByUser returns the newest measurements first, at most limit rows.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.WeightLog, error) {
	query := `SELECT user_id, day, weight_kg, note, created_at FROM weight_log
			WHERE user_id = ? ORDER BY day DESC LIMIT ?`
	return r.list(ctx, query, userID, limit)
}

func (r *SQLiteRepository) DeleteByDay(ctx context.Context, userID, day string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM weight_log WHERE user_id = ? AND day = ?`, userID, day)
	if err != nil {
		return fmt.Errorf("failed to delete weight: %w", err)
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

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.WeightLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weights: %w", err)
	}
	defer rows.Close()

	var result []models.WeightLog
	for rows.Next() {
		var w models.WeightLog
		if err := rows.Scan(&w.UserID, &w.Day, &w.WeightKg, &w.Note, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weight: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weights: %w", err)
	}
	return result, nil
}
