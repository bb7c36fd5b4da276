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

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code against the shared connection or inside a
// transaction opened with dbx.WithTx.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Goals(db dbx.DBTX) goals.Repository
	Products(db dbx.DBTX) products.Repository
	Meals(db dbx.DBTX) meals.Repository
	Stats(db dbx.DBTX) stats.Repository
	Weights(db dbx.DBTX) weights.Repository
	History(db dbx.DBTX) history.Repository
	Favorites(db dbx.DBTX) favorites.Repository
}
