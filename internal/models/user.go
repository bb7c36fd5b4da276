package models

import "time"

// User is a diary account. Everything else in the database is scoped by
// UserID. PasswordHash is a bcrypt hash and never leaves the auth layer.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
}
