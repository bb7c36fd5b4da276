package models

import "nutridiary/internal/nutrition"

// DailyStats is the per-day rollup, keyed by (UserID, Day). It mirrors the
// sum of the day's meal totals and is overwritten whenever any of the day's
// meals change.
type DailyStats struct {
	UserID string
	Day    string

	Totals    nutrition.Nutrients
	MealCount int
	ItemCount int
}

// GradeTally counts eaten products per Nutri-Score grade for one day.
// Products without a grade land in Unknown.
type GradeTally struct {
	A, B, C, D, E int
	Unknown       int
}
