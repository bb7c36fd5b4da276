package favorites

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutridiary/internal/common"
	"nutridiary/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  nutri_score TEXT
);
CREATE TABLE favorites (
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, product_id)
);
`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO products (id, name, nutri_score) VALUES
			('p1', 'Grão de bico', 'A'),
			('p2', 'Chocolate', 'E')`)
	require.NoError(t, err)

	return db
}

func fav(userID, productID string, hour int) *models.Favorite {
	return &models.Favorite{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Date(2025, 9, 1, hour, 0, 0, 0, time.UTC),
	}
}

func TestAddIsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, fav("u1", "p1", 8)))
	require.NoError(t, r.Add(ctx, fav("u1", "p1", 9)))

	got, err := r.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Grão de bico", got[0].ProductName)
	assert.Equal(t, "A", got[0].NutriScore)
	// the original timestamp survives the repeated add
	assert.Equal(t, 8, got[0].CreatedAt.Hour())
}

func TestListNewestFirst(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, fav("u1", "p1", 8)))
	require.NoError(t, r.Add(ctx, fav("u1", "p2", 10)))
	require.NoError(t, r.Add(ctx, fav("u2", "p1", 9)))

	got, err := r.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ProductID)
	assert.Equal(t, "p1", got[1].ProductID)
}

func TestRemoveAndIsFavorite(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, fav("u1", "p1", 8)))

	ok, err := r.IsFavorite(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, r.Remove(ctx, "u1", "p1"))

	ok, err = r.IsFavorite(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.ErrorIs(t, r.Remove(ctx, "u1", "p1"), common.ErrNotFound)
}
