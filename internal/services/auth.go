// Package services contains the diary's business logic on top of the
// repositories. Services take a *sql.DB plus a RepositoryManager so
// multi-statement operations can run inside one transaction via dbx.WithTx.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"nutridiary/internal/auth"
	"nutridiary/internal/common"
	"nutridiary/internal/models"
	"nutridiary/internal/repositories/repomanager"
	"nutridiary/internal/securestore"
)

// AuthService handles registration, login, session resume and logout. The
// session token is an HS256 JWT signed with the random key from the secure
// store, so tokens are only ever valid on the device that issued them.
type AuthService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	store      *securestore.Store
	sessionTTL time.Duration
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *sql.DB, repos repomanager.RepositoryManager, store *securestore.Store, sessionTTL time.Duration) *AuthService {
	return &AuthService{db: db, repos: repos, store: store, sessionTTL: sessionTTL}
}

// Register creates a new account. A duplicate email yields
// common.ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, common.ErrUnauthorized
	}

	hash, err := auth.HashPassword([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.repos.Users(s.db).Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials, mints a session token and persists the
// encrypted session. Wrong email and wrong password are indistinguishable to
// the caller, both come back as common.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, []byte(password))
	if err != nil || !ok {
		return nil, common.ErrUnauthorized
	}

	secret, err := s.store.SessionKey()
	if err != nil {
		return nil, fmt.Errorf("failed to load session key: %w", err)
	}
	token, err := auth.GenerateToken(user.ID, secret, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	session := &securestore.Session{UserID: user.ID, Token: token, IssuedAt: time.Now()}
	if err := s.store.SaveSession(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return user, nil
}

// Resume restores the logged-in user from the persisted session. A missing,
// invalid or expired session yields common.ErrUnauthorized.
func (s *AuthService) Resume(ctx context.Context) (*models.User, error) {
	session, err := s.store.LoadSession()
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	secret, err := s.store.SessionKey()
	if err != nil {
		return nil, fmt.Errorf("failed to load session key: %w", err)
	}
	userID, err := auth.GetUserIDFromToken(session.Token, secret)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// Logout removes the persisted session. Logging out while logged out is not
// an error.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.store.ClearSession()
}
