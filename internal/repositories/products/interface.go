// Package products persists the food catalog: seed-bundle rows with unique
// barcodes plus user-created custom foods.
package products

import (
	"context"

	"nutridiary/internal/models"
)

// Repository describes catalog queries and custom-food CRUD.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Insert adds a product row. A duplicate barcode yields
	// common.ErrAlreadyExists.
	Insert(ctx context.Context, p *models.Product) error

	// GetByID returns a product by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Product, error)

	// GetByBarcode returns the catalog product with the given barcode, or
	// common.ErrNotFound. This is the scanner path.
	GetByBarcode(ctx context.Context, barcode string) (*models.Product, error)

	// Search matches the query against name and brand, over catalog rows
	// plus the user's own custom foods, name-prefix matches first.
	Search(ctx context.Context, userID, query string, limit int) ([]models.Product, error)

	// ListCustom returns the user's custom foods, newest first.
	ListCustom(ctx context.Context, userID string) ([]models.Product, error)

	// DeleteCustom removes one of the user's custom foods. Deleting a
	// catalog product or someone else's food yields common.ErrNotFound.
	DeleteCustom(ctx context.Context, userID, id string) error
}
