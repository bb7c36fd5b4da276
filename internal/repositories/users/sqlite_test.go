package users

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
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL DEFAULT '',
  password_hash BLOB NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`)
	require.NoError(t, err)

	return db
}

func TestCreateAndGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	u := &models.User{
		ID:           "u1",
		Email:        "ana@example.pt",
		Name:         "Ana",
		PasswordHash: []byte("$2a$fakehash"),
		CreatedAt:    time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.Create(ctx, u))

	byEmail, err := r.GetByEmail(ctx, "ana@example.pt")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)
	assert.Equal(t, "Ana", byEmail.Name)
	assert.Equal(t, []byte("$2a$fakehash"), byEmail.PasswordHash)

	byID, err := r.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.pt", byID.Email)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	u := &models.User{ID: "u1", Email: "dup@example.pt", PasswordHash: []byte("h"), CreatedAt: time.Now()}
	require.NoError(t, r.Create(ctx, u))

	u2 := &models.User{ID: "u2", Email: "dup@example.pt", PasswordHash: []byte("h"), CreatedAt: time.Now()}
	err := r.Create(ctx, u2)
	require.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestGet_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.GetByEmail(ctx, "nobody@example.pt")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = r.GetByID(ctx, "nope")
	require.ErrorIs(t, err, common.ErrNotFound)
}
