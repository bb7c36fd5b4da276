package services

import (
	"context"
	"database/sql"
	"errors"

	"nutridiary/internal/common"
	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
	"nutridiary/internal/repositories/repomanager"
)

// DaySummary is one day's intake against the user's targets.
type DaySummary struct {
	Day    string
	Totals nutrition.Nutrients

	MealCount int
	ItemCount int

	// Progress ratios 0..1 against the daily targets, zero when
	// onboarding has not run yet.
	CaloriesProgress float64
	ProteinProgress  float64
	CarbsProgress    float64
	FatProgress      float64

	Breakdown nutrition.MacroBreakdown
	Grades    models.GradeTally
}

// StatsService produces read-only daily and range reports from the rollups
// maintained by the diary service.
type StatsService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewStatsService constructs a StatsService.
func NewStatsService(db *sql.DB, repos repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repos: repos}
}

// Day summarizes one day. A day without logged meals comes back zeroed, not
// as an error, so the diary view can always render.
func (s *StatsService) Day(ctx context.Context, userID, day string) (*DaySummary, error) {
	summary := &DaySummary{Day: day}

	rollup, err := s.repos.Stats(s.db).GetByUserDay(ctx, userID, day)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if rollup != nil {
		summary.Totals = rollup.Totals
		summary.MealCount = rollup.MealCount
		summary.ItemCount = rollup.ItemCount
	}

	goals, err := s.repos.Goals(s.db).GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if goals != nil {
		summary.CaloriesProgress = nutrition.Progress(summary.Totals.EnergyKcal, goals.CaloriesTarget)
		summary.ProteinProgress = nutrition.Progress(summary.Totals.Proteins, goals.ProteinTargetG)
		summary.CarbsProgress = nutrition.Progress(summary.Totals.Carbs, goals.CarbsTargetG)
		summary.FatProgress = nutrition.Progress(summary.Totals.Fat, goals.FatTargetG)
	}

	summary.Breakdown = nutrition.EnergyBreakdown(summary.Totals)

	grades, err := s.repos.Stats(s.db).TallyGrades(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	summary.Grades = *grades

	return summary, nil
}

// RangeReport is the rollup over a day range plus the per-day series.
type RangeReport struct {
	FromDay string
	ToDay   string

	Totals    nutrition.Nutrients
	Days      []models.DailyStats
	AvgPerDay nutrition.Nutrients
}

// Range reports totals and the per-day series for days in [fromDay, toDay].
// The average is over days with logged meals, not calendar days.
func (s *StatsService) Range(ctx context.Context, userID, fromDay, toDay string) (*RangeReport, error) {
	days, err := s.repos.Stats(s.db).Range(ctx, userID, fromDay, toDay)
	if err != nil {
		return nil, err
	}

	report := &RangeReport{FromDay: fromDay, ToDay: toDay, Days: days}
	for _, d := range days {
		report.Totals = report.Totals.Add(d.Totals)
	}
	if len(days) > 0 {
		report.AvgPerDay = report.Totals.Scale(1 / float64(len(days)))
	}
	return report, nil
}
