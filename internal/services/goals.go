package services

import (
	"context"
	"database/sql"
	"time"

	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
	"nutridiary/internal/repositories/repomanager"
)

// Profile is the onboarding input used to derive daily targets.
type Profile struct {
	Sex            nutrition.Sex
	BirthYear      int
	HeightCm       float64
	WeightKg       float64
	ActivityLevel  int
	WeightTargetKg float64
}

// GoalsService manages the onboarding profile and the daily targets.
type GoalsService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewGoalsService constructs a GoalsService.
func NewGoalsService(db *sql.DB, repos repomanager.RepositoryManager) *GoalsService {
	return &GoalsService{db: db, repos: repos}
}

// SaveProfile stores the profile and the targets computed from it, and logs
// the reported weight as today's measurement so trends start immediately.
func (s *GoalsService) SaveProfile(ctx context.Context, userID string, p Profile) (*models.UserGoals, error) {
	age := time.Now().Year() - p.BirthYear
	targets := nutrition.DailyTargets(p.Sex, age, p.HeightCm, p.WeightKg, p.ActivityLevel)

	g := &models.UserGoals{
		UserID:         userID,
		Sex:            p.Sex,
		BirthYear:      p.BirthYear,
		HeightCm:       p.HeightCm,
		ActivityLevel:  p.ActivityLevel,
		WeightTargetKg: p.WeightTargetKg,
		CaloriesTarget: targets.Calories,
		ProteinTargetG: targets.ProteinG,
		CarbsTargetG:   targets.CarbsG,
		FatTargetG:     targets.FatG,
		UpdatedAt:      time.Now(),
	}
	if err := s.repos.Goals(s.db).Upsert(ctx, g); err != nil {
		return nil, err
	}

	if p.WeightKg > 0 {
		w := &models.WeightLog{
			UserID:    userID,
			Day:       models.Today(),
			WeightKg:  p.WeightKg,
			CreatedAt: time.Now(),
		}
		if err := s.repos.Weights(s.db).Upsert(ctx, w); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// OverrideTargets replaces the computed daily targets with manual values,
// keeping the rest of the profile.
func (s *GoalsService) OverrideTargets(ctx context.Context, userID string, calories, proteinG, carbsG, fatG float64) (*models.UserGoals, error) {
	g, err := s.repos.Goals(s.db).GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	g.CaloriesTarget = calories
	g.ProteinTargetG = proteinG
	g.CarbsTargetG = carbsG
	g.FatTargetG = fatG
	g.UpdatedAt = time.Now()
	if err := s.repos.Goals(s.db).Upsert(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Get returns the user's goals, or common.ErrNotFound before onboarding.
func (s *GoalsService) Get(ctx context.Context, userID string) (*models.UserGoals, error) {
	return s.repos.Goals(s.db).GetByUserID(ctx, userID)
}
