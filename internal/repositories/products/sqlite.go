package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nutridiary/internal/common"
	"nutridiary/internal/dbx"
	"nutridiary/internal/models"
)

// productColumns is the select list shared by every query; nullable feed
// columns are coalesced so rows scan into plain Go values.
const productColumns = `id, COALESCE(barcode,''), owner_user_id, name, brand, quantity,
	categories, countries,
	COALESCE(nutri_score,''), COALESCE(nutri_score_score,0), COALESCE(nova_group,0),
	COALESCE(energy_kcal_100g,0), COALESCE(proteins_100g,0), COALESCE(carbs_100g,0),
	COALESCE(sugars_100g,0), COALESCE(fat_100g,0), COALESCE(sat_fat_100g,0),
	COALESCE(fiber_100g,0), COALESCE(salt_100g,0), COALESCE(piece_weight_g,0)`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, p *models.Product) error {
	query := `INSERT INTO products
			(id, barcode, owner_user_id, name, brand, quantity, categories, countries,
			 nutri_score, nutri_score_score, nova_group,
			 energy_kcal_100g, proteins_100g, carbs_100g, sugars_100g,
			 fat_100g, sat_fat_100g, fiber_100g, salt_100g, piece_weight_g, created_at)
			VALUES (?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Barcode, p.OwnerUserID, p.Name, p.Brand, p.Quantity, p.Categories, p.Countries,
		p.NutriScore, p.NutriScoreScore, p.NovaGroup,
		p.Per100g.EnergyKcal, p.Per100g.Proteins, p.Per100g.Carbs, p.Per100g.Sugars,
		p.Per100g.Fat, p.Per100g.SatFat, p.Per100g.Fiber, p.Per100g.Salt,
		p.PieceWeightG, p.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) GetByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = ?`
	return scanProduct(r.db.QueryRowContext(ctx, query, barcode))
}

func (r *SQLiteRepository) Search(ctx context.Context, userID, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + query + "%"
	prefix := query + "%"
	q := `SELECT ` + productColumns + `
		FROM products
		WHERE (owner_user_id = '' OR owner_user_id = ?)
		  AND (name LIKE ? OR brand LIKE ?)
		ORDER BY CASE WHEN name LIKE ? THEN 0 ELSE 1 END, name
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, userID, pattern, pattern, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return scanProducts(rows)
}

func (r *SQLiteRepository) ListCustom(ctx context.Context, userID string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE owner_user_id = ? ORDER BY created_at DESC, name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom foods: %w", err)
	}
	return scanProducts(rows)
}

func (r *SQLiteRepository) DeleteCustom(ctx context.Context, userID, id string) error {
	query := `DELETE FROM products WHERE id = ? AND owner_user_id = ? AND owner_user_id <> ''`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete custom food: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInto(s rowScanner, p *models.Product) error {
	return s.Scan(
		&p.ID, &p.Barcode, &p.OwnerUserID, &p.Name, &p.Brand, &p.Quantity,
		&p.Categories, &p.Countries,
		&p.NutriScore, &p.NutriScoreScore, &p.NovaGroup,
		&p.Per100g.EnergyKcal, &p.Per100g.Proteins, &p.Per100g.Carbs,
		&p.Per100g.Sugars, &p.Per100g.Fat, &p.Per100g.SatFat,
		&p.Per100g.Fiber, &p.Per100g.Salt, &p.PieceWeightG,
	)
}

func scanProduct(row *sql.Row) (*models.Product, error) {
	p := &models.Product{}
	if err := scanInto(row, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return p, nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	defer rows.Close()

	var result []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanInto(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
