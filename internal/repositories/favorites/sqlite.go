package favorites

import (
	"context"
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

// Add marks a product as favorite. Adding twice is a no-op.
func (r *SQLiteRepository) Add(ctx context.Context, f *models.Favorite) error {
	query := `INSERT INTO favorites (user_id, product_id, created_at) VALUES (?, ?, ?)
			ON CONFLICT(user_id, product_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, f.UserID, f.ProductID, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, userID, productID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND product_id = ?`, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
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

// List returns favorites newest first, joined with the product name and
// grade for display.
func (r *SQLiteRepository) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	query := `SELECT f.user_id, f.product_id, f.created_at,
				p.name, COALESCE(p.nutri_score, '')
			FROM favorites f
			JOIN products p ON p.id = f.product_id
			WHERE f.user_id = ?
			ORDER BY f.created_at DESC, f.product_id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var result []models.Favorite
	for rows.Next() {
		var f models.Favorite
		err := rows.Scan(&f.UserID, &f.ProductID, &f.CreatedAt, &f.ProductName, &f.NutriScore)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) IsFavorite(ctx context.Context, userID, productID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND product_id = ?`,
		userID, productID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}
