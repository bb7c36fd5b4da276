package models

import (
	"time"

	"nutridiary/internal/nutrition"
)

// MealType classifies a meal within the day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// ParseMealType validates a meal type string.
func ParseMealType(s string) (MealType, bool) {
	switch MealType(s) {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return MealType(s), true
	default:
		return "", false
	}
}

// Meal is one diary meal. Totals are aggregate columns re-summed from the
// child items on every item mutation, never computed at read time.
type Meal struct {
	ID     string
	UserID string
	Day    string // YYYY-MM-DD
	Type   MealType

	Totals nutrition.Nutrients

	CreatedAt time.Time
	Items     []MealItem
}

// MealItem is a logged food. Nutrients is the snapshot computed from the
// product's per-100g baseline at logging time, so meal and day totals are a
// plain SUM over item rows even if the catalog changes later.
type MealItem struct {
	ID        string
	MealID    string
	ProductID string
	Name      string // product name snapshot

	Unit     nutrition.Unit
	Quantity float64

	Nutrients nutrition.Nutrients

	NutriScore string // grade snapshot for the day's score tally
	CreatedAt  time.Time
}
