package stats

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutridiary/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE meals (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  day TEXT NOT NULL,
  type TEXT NOT NULL
);
CREATE TABLE meal_items (
  id TEXT PRIMARY KEY,
  meal_id TEXT NOT NULL,
  nutri_score TEXT NOT NULL DEFAULT ''
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
`)
	require.NoError(t, err)

	return db
}

func insertStats(t *testing.T, db *sql.DB, userID, day string, kcal float64) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO daily_stats (user_id, day, energy_kcal, meal_count, item_count)
			VALUES (?, ?, ?, 1, 1)`, userID, day, kcal)
	require.NoError(t, err)
}

func TestGetByUserDay(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	insertStats(t, db, "u1", "2025-09-01", 1850)

	got, err := r.GetByUserDay(ctx, "u1", "2025-09-01")
	require.NoError(t, err)
	assert.InDelta(t, 1850, got.Totals.EnergyKcal, 1e-9)
	assert.Equal(t, 1, got.MealCount)

	_, err = r.GetByUserDay(ctx, "u1", "2025-09-02")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestRange(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	insertStats(t, db, "u1", "2025-08-30", 1700)
	insertStats(t, db, "u1", "2025-09-01", 1850)
	insertStats(t, db, "u1", "2025-09-03", 2100)
	insertStats(t, db, "u2", "2025-09-01", 999)

	got, err := r.Range(ctx, "u1", "2025-08-31", "2025-09-03")
	require.NoError(t, err)
	require.Len(t, got, 2, "days without rows are absent, other users excluded")
	assert.Equal(t, "2025-09-01", got[0].Day)
	assert.Equal(t, "2025-09-03", got[1].Day)
}

func TestTallyGrades(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO meals (id, user_id, day, type) VALUES
			('m1', 'u1', '2025-09-01', 'breakfast'),
			('m2', 'u1', '2025-09-01', 'lunch'),
			('m3', 'u1', '2025-09-02', 'lunch')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO meal_items (id, meal_id, nutri_score) VALUES
			('i1', 'm1', 'A'),
			('i2', 'm1', 'A'),
			('i3', 'm2', 'C'),
			('i4', 'm2', ''),
			('i5', 'm3', 'E')`)
	require.NoError(t, err)

	got, err := r.TallyGrades(ctx, "u1", "2025-09-01")
	require.NoError(t, err)
	assert.Equal(t, 2, got.A)
	assert.Equal(t, 1, got.C)
	assert.Equal(t, 1, got.Unknown)
	assert.Zero(t, got.E, "other days do not leak in")
}
