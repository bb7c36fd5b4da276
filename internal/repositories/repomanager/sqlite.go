// Package repomanager provides a concrete RepositoryManager for the local
// SQLite database, wiring together the per-entity repository constructors.
package repomanager

import (
	"nutridiary/internal/dbx"
	"nutridiary/internal/repositories/favorites"
	"nutridiary/internal/repositories/goals"
	"nutridiary/internal/repositories/history"
	"nutridiary/internal/repositories/meals"
	"nutridiary/internal/repositories/products"
	"nutridiary/internal/repositories/stats"
	"nutridiary/internal/repositories/users"
	"nutridiary/internal/repositories/weights"
)

// SQLiteRepositoryManager vends SQLite-backed repository implementations.
type SQLiteRepositoryManager struct{}

// NewSQLiteRepositoryManager constructs a SQLite-backed RepositoryManager.
func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// Goals returns a goals.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Goals(db dbx.DBTX) goals.Repository {
	return goals.NewSQLiteRepository(db)
}

// Products returns a products.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Products(db dbx.DBTX) products.Repository {
	return products.NewSQLiteRepository(db)
}

// Meals returns a meals.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Meals(db dbx.DBTX) meals.Repository {
	return meals.NewSQLiteRepository(db)
}

// Stats returns a stats.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Stats(db dbx.DBTX) stats.Repository {
	return stats.NewSQLiteRepository(db)
}

// Weights returns a weights.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Weights(db dbx.DBTX) weights.Repository {
	return weights.NewSQLiteRepository(db)
}

// History returns a history.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) History(db dbx.DBTX) history.Repository {
	return history.NewSQLiteRepository(db)
}

// Favorites returns a favorites.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Favorites(db dbx.DBTX) favorites.Repository {
	return favorites.NewSQLiteRepository(db)
}
