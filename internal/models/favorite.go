package models

import "time"

// Favorite marks a product as a user favorite, keyed by (UserID, ProductID).
type Favorite struct {
	UserID    string
	ProductID string
	CreatedAt time.Time

	// Denormalized for listing without a second query.
	ProductName string
	NutriScore  string
}
