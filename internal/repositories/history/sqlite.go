package history

import (
	"context"
	"fmt"

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

// Touch records a lookup, bumping last_seen_at and the source if the product
// was seen before.
func (r *SQLiteRepository) Touch(ctx context.Context, e *models.HistoryEntry) error {
	query := `INSERT INTO product_history (user_id, product_id, source, last_seen_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(user_id, product_id) DO UPDATE SET
				source = excluded.source,
				last_seen_at = excluded.last_seen_at`
	_, err := r.db.ExecContext(ctx, query, e.UserID, e.ProductID, string(e.Source), e.LastSeenAt)
	if err != nil {
		return fmt.Errorf("failed to touch history: %w", err)
	}
	return nil
}

// ListRecent returns history entries newest first, joined with the product
// name and grade for display. Entries whose product was deleted are skipped.
func (r *SQLiteRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	query := `SELECT h.user_id, h.product_id, h.source, h.last_seen_at,
				p.name, COALESCE(p.nutri_score, '')
			FROM product_history h
			JOIN products p ON p.id = h.product_id
			WHERE h.user_id = ?
			ORDER BY h.last_seen_at DESC, h.product_id
			LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var result []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var source string
		err := rows.Scan(&e.UserID, &e.ProductID, &source, &e.LastSeenAt, &e.ProductName, &e.NutriScore)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Source = models.HistorySource(source)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM product_history WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
