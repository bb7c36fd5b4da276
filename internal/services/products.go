package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"nutridiary/internal/common"
	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
	"nutridiary/internal/repositories/repomanager"
)

const defaultSearchLimit = 25

// ProductService handles catalog lookups, custom foods, product history
// and favorites.
type ProductService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewProductService constructs a ProductService.
func NewProductService(db *sql.DB, repos repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repos: repos}
}

// Scan looks up a catalog product by barcode and records the lookup in the
// user's history. An unknown barcode yields common.ErrNotFound and leaves
// history untouched.
func (s *ProductService) Scan(ctx context.Context, userID, barcode string) (*models.Product, error) {
	barcode = strings.TrimSpace(barcode)
	product, err := s.repos.Products(s.db).GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	entry := &models.HistoryEntry{
		UserID:     userID,
		ProductID:  product.ID,
		Source:     models.HistorySourceScan,
		LastSeenAt: time.Now(),
	}
	if err := s.repos.History(s.db).Touch(ctx, entry); err != nil {
		return nil, err
	}
	return product, nil
}

// Search matches the query against product names and brands, over the
// catalog plus the user's own custom foods.
func (s *ProductService) Search(ctx context.Context, userID, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.repos.Products(s.db).Search(ctx, userID, query, defaultSearchLimit)
}

// Get returns a product by id and records it as searched in the history.
func (s *ProductService) Get(ctx context.Context, userID, productID string) (*models.Product, error) {
	product, err := s.repos.Products(s.db).GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	entry := &models.HistoryEntry{
		UserID:     userID,
		ProductID:  product.ID,
		Source:     models.HistorySourceSearch,
		LastSeenAt: time.Now(),
	}
	if err := s.repos.History(s.db).Touch(ctx, entry); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateCustom adds a user-scoped custom food. Custom foods have no barcode
// and are only visible to their owner.
func (s *ProductService) CreateCustom(ctx context.Context, userID, name, brand string, per100g nutrition.Nutrients, pieceWeightG float64) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrEmptyName
	}

	product := &models.Product{
		ID:           uuid.NewString(),
		OwnerUserID:  userID,
		Name:         name,
		Brand:        strings.TrimSpace(brand),
		Per100g:      per100g,
		PieceWeightG: pieceWeightG,
		CreatedAt:    time.Now(),
	}
	if err := s.repos.Products(s.db).Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListCustom returns the user's custom foods, newest first.
func (s *ProductService) ListCustom(ctx context.Context, userID string) ([]models.Product, error) {
	return s.repos.Products(s.db).ListCustom(ctx, userID)
}

// DeleteCustom removes one of the user's custom foods. Diary items that
// reference it keep their snapshots.
func (s *ProductService) DeleteCustom(ctx context.Context, userID, productID string) error {
	return s.repos.Products(s.db).DeleteCustom(ctx, userID, productID)
}

// AddFavorite marks a product as favorite, idempotently.
func (s *ProductService) AddFavorite(ctx context.Context, userID, productID string) error {
	if _, err := s.repos.Products(s.db).GetByID(ctx, productID); err != nil {
		return err
	}
	f := &models.Favorite{UserID: userID, ProductID: productID, CreatedAt: time.Now()}
	return s.repos.Favorites(s.db).Add(ctx, f)
}

// IsFavorite reports whether the user has marked the product as favorite.
func (s *ProductService) IsFavorite(ctx context.Context, userID, productID string) (bool, error) {
	return s.repos.Favorites(s.db).IsFavorite(ctx, userID, productID)
}

// RemoveFavorite unmarks a favorite.
func (s *ProductService) RemoveFavorite(ctx context.Context, userID, productID string) error {
	return s.repos.Favorites(s.db).Remove(ctx, userID, productID)
}

// ListFavorites returns the user's favorites, newest first.
func (s *ProductService) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	return s.repos.Favorites(s.db).List(ctx, userID)
}

// History returns the most recently seen products, newest first.
func (s *ProductService) History(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return s.repos.History(s.db).ListRecent(ctx, userID, limit)
}

// ClearHistory wipes the user's product history.
func (s *ProductService) ClearHistory(ctx context.Context, userID string) error {
	return s.repos.History(s.db).Clear(ctx, userID)
}
