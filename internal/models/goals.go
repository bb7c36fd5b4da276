package models

import (
	"time"

	"nutridiary/internal/nutrition"
)

// UserGoals holds the onboarding profile and the daily targets derived from
// it (one row per user). Targets can be overridden manually, so they are
// stored rather than recomputed on every read.
type UserGoals struct {
	UserID        string
	Sex           nutrition.Sex
	BirthYear     int
	HeightCm      float64
	ActivityLevel int

	WeightTargetKg float64

	CaloriesTarget float64
	ProteinTargetG float64
	CarbsTargetG   float64
	FatTargetG     float64

	UpdatedAt time.Time
}

// Age returns the user's age in years as of now (birth year granularity,
// which is all onboarding collects).
func (g UserGoals) Age() int {
	age := time.Now().Year() - g.BirthYear
	if age < 0 {
		return 0
	}
	return age
}
