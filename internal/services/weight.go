package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"nutridiary/internal/common"
	"nutridiary/internal/models"
	"nutridiary/internal/repositories/repomanager"
)

// WeightService handles body-weight logging and trends.
type WeightService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewWeightService constructs a WeightService.
func NewWeightService(db *sql.DB, repos repomanager.RepositoryManager) *WeightService {
	return &WeightService{db: db, repos: repos}
}

// Log records the day's weight, overwriting an earlier value for the same
// day. Non-positive weights yield common.ErrInvalidQuantity.
func (s *WeightService) Log(ctx context.Context, userID, day string, weightKg float64, note string) error {
	if weightKg <= 0 {
		return common.ErrInvalidQuantity
	}
	w := &models.WeightLog{
		UserID:    userID,
		Day:       day,
		WeightKg:  weightKg,
		Note:      note,
		CreatedAt: time.Now(),
	}
	return s.repos.Weights(s.db).Upsert(ctx, w)
}

// List returns the newest measurements first, at most limit rows.
func (s *WeightService) List(ctx context.Context, userID string, limit int) ([]models.WeightLog, error) {
	if limit <= 0 {
		limit = 30
	}
	return s.repos.Weights(s.db).ListByUser(ctx, userID, limit)
}

// Delete removes the measurement for the given day.
func (s *WeightService) Delete(ctx context.Context, userID, day string) error {
	return s.repos.Weights(s.db).DeleteByDay(ctx, userID, day)
}

// Trend describes recent weight movement against the goal.
type Trend struct {
	CurrentKg float64
	CurrentAt string // day of the latest measurement

	Change7dKg  float64
	Change30dKg float64

	TargetKg     float64 // zero when no goal is set
	ToTargetKg   float64 // current minus target, zero without a goal
	Measurements int
}

// Trend computes the change over the last 7 and 30 days and the distance to
// the goal weight. No measurements at all yields common.ErrNotFound.
func (s *WeightService) Trend(ctx context.Context, userID string) (*Trend, error) {
	today := models.Today()
	from := models.DayOf(time.Now().AddDate(0, 0, -30))

	logs, err := s.repos.Weights(s.db).Range(ctx, userID, from, today)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, common.ErrNotFound
	}

	latest := logs[len(logs)-1]
	trend := &Trend{
		CurrentKg:    latest.WeightKg,
		CurrentAt:    latest.Day,
		Measurements: len(logs),
	}

	sevenAgo := models.DayOf(time.Now().AddDate(0, 0, -7))
	trend.Change7dKg = latest.WeightKg - oldestSince(logs, sevenAgo).WeightKg
	trend.Change30dKg = latest.WeightKg - logs[0].WeightKg

	goals, err := s.repos.Goals(s.db).GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if goals != nil && goals.WeightTargetKg > 0 {
		trend.TargetKg = goals.WeightTargetKg
		trend.ToTargetKg = latest.WeightKg - goals.WeightTargetKg
	}
	return trend, nil
}

// oldestSince returns the earliest measurement on or after day, falling back
// to the latest one when the window is empty. logs are ordered oldest first.
func oldestSince(logs []models.WeightLog, day string) models.WeightLog {
	for _, w := range logs {
		if w.Day >= day {
			return w
		}
	}
	return logs[len(logs)-1]
}
