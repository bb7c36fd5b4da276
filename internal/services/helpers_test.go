package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
	"nutridiary/internal/repositories/repomanager"

	_ "modernc.org/sqlite"
)

// setupDB opens an in-memory database with the full schema the services
// touch.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL DEFAULT '',
  password_hash BLOB NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE user_goals (
  user_id TEXT PRIMARY KEY,
  sex TEXT NOT NULL,
  birth_year INTEGER NOT NULL,
  height_cm REAL NOT NULL,
  activity_level INTEGER NOT NULL,
  weight_target_kg REAL NOT NULL DEFAULT 0,
  calories_target REAL NOT NULL DEFAULT 0,
  protein_target_g REAL NOT NULL DEFAULT 0,
  carbs_target_g REAL NOT NULL DEFAULT 0,
  fat_target_g REAL NOT NULL DEFAULT 0,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE products (
  id TEXT PRIMARY KEY,
  barcode TEXT,
  owner_user_id TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  quantity TEXT NOT NULL DEFAULT '',
  categories TEXT NOT NULL DEFAULT '',
  countries TEXT NOT NULL DEFAULT '',
  nutri_score TEXT,
  nutri_score_score INTEGER,
  nova_group INTEGER,
  energy_kcal_100g REAL,
  proteins_100g REAL,
  carbs_100g REAL,
  sugars_100g REAL,
  fat_100g REAL,
  sat_fat_100g REAL,
  fiber_100g REAL,
  salt_100g REAL,
  sodium_100g REAL,
  piece_weight_g REAL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX idx_products_barcode ON products(barcode)
  WHERE barcode IS NOT NULL AND barcode <> '';
CREATE TABLE meals (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  day TEXT NOT NULL,
  type TEXT NOT NULL,
  energy_kcal REAL NOT NULL DEFAULT 0,
  proteins REAL NOT NULL DEFAULT 0,
  carbs REAL NOT NULL DEFAULT 0,
  sugars REAL NOT NULL DEFAULT 0,
  fat REAL NOT NULL DEFAULT 0,
  sat_fat REAL NOT NULL DEFAULT 0,
  fiber REAL NOT NULL DEFAULT 0,
  salt REAL NOT NULL DEFAULT 0,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (user_id, day, type)
);
CREATE TABLE meal_items (
  id TEXT PRIMARY KEY,
  meal_id TEXT NOT NULL REFERENCES meals(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit TEXT NOT NULL,
  quantity REAL NOT NULL,
  energy_kcal REAL NOT NULL DEFAULT 0,
  proteins REAL NOT NULL DEFAULT 0,
  carbs REAL NOT NULL DEFAULT 0,
  sugars REAL NOT NULL DEFAULT 0,
  fat REAL NOT NULL DEFAULT 0,
  sat_fat REAL NOT NULL DEFAULT 0,
  fiber REAL NOT NULL DEFAULT 0,
  salt REAL NOT NULL DEFAULT 0,
  nutri_score TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE daily_stats (
  user_id TEXT NOT NULL,
  day TEXT NOT NULL,
  energy_kcal REAL NOT NULL DEFAULT 0,
  proteins REAL NOT NULL DEFAULT 0,
  carbs REAL NOT NULL DEFAULT 0,
  sugars REAL NOT NULL DEFAULT 0,
  fat REAL NOT NULL DEFAULT 0,
  sat_fat REAL NOT NULL DEFAULT 0,
  fiber REAL NOT NULL DEFAULT 0,
  salt REAL NOT NULL DEFAULT 0,
  meal_count INTEGER NOT NULL DEFAULT 0,
  item_count INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (user_id, day)
);
CREATE TABLE weight_log (
  user_id TEXT NOT NULL,
  day TEXT NOT NULL,
  weight_kg REAL NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, day)
);
CREATE TABLE product_history (
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  source TEXT NOT NULL DEFAULT 'search',
  last_seen_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, product_id)
);
CREATE TABLE favorites (
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, product_id)
);
`)
	require.NoError(t, err)

	return db
}

func newRepos() repomanager.RepositoryManager {
	return repomanager.NewSQLiteRepositoryManager()
}

// seedProduct inserts a catalog or custom product directly.
func seedProduct(t *testing.T, db *sql.DB, p *models.Product) {
	t.Helper()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	err := newRepos().Products(db).Insert(context.Background(), p)
	require.NoError(t, err)
}

func oatmeal(barcode string) *models.Product {
	return &models.Product{
		Barcode:    barcode,
		Name:       "Flocos de aveia",
		Brand:      "Nacional",
		NutriScore: "A",
		Per100g: nutrition.Nutrients{
			EnergyKcal: 380, Proteins: 12, Carbs: 60, Sugars: 1,
			Fat: 7, SatFat: 1.2, Fiber: 10, Salt: 0.02,
		},
		PieceWeightG: 0,
	}
}
