package models

import (
	"time"

	"nutridiary/internal/nutrition"
)

// Product is a food catalog entry. Catalog rows come from the seed bundle
// and carry a unique barcode; custom foods are user-created rows with an
// empty barcode and a non-empty OwnerUserID. The nutrient profile is always
// per 100g (millilitres for liquids).
type Product struct {
	ID          string
	Barcode     string // empty for custom foods
	OwnerUserID string // empty for catalog products
	Name        string
	Brand       string
	Quantity    string // package size as labelled, e.g. "330 ml"
	Categories  string
	Countries   string

	NutriScore      string // A–E, empty when unknown
	NutriScoreScore int
	NovaGroup       int

	// Per100g values; fields missing from the feed are zero.
	Per100g nutrition.Nutrients

	// PieceWeightG is the weight of one piece/serving in grams, used when an
	// item is logged in pieces. Zero when unknown.
	PieceWeightG float64

	CreatedAt time.Time
}

// IsCustom reports whether the product is a user-created custom food.
func (p Product) IsCustom() bool {
	return p.OwnerUserID != ""
}
