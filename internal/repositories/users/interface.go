package users

import (
	"context"

	"nutridiary/internal/models"
)

// Repository describes persistence for diary accounts.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Create inserts a new user. A duplicate email yields
	// common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) error

	// GetByEmail returns the user with the given email, or
	// common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
