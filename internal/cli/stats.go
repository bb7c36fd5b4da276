package cli

import (
	"context"
	"fmt"

	"nutridiary/internal/models"
	"nutridiary/internal/services"
)

// Report prints totals and per-day lines for a date range. Without
// arguments it covers the last 7 days.
func (a *App) Report(ctx context.Context, args []string) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}

	var from, to string
	switch len(args) {
	case 0:
		to = models.Today()
		from = models.DayOf(timeNow().AddDate(0, 0, -6))
	case 2:
		if from, err = models.ParseDay(args[0]); err != nil {
			return err
		}
		if to, err = models.ParseDay(args[1]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("usage: report [<from> <to>]")
	}

	report, err := a.stats.Range(ctx, userID, from, to)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Report %s .. %s\n", report.FromDay, report.ToDay)
	if len(report.Days) == 0 {
		fmt.Fprintln(a.out, "  nothing logged in this range")
		return nil
	}
	for _, d := range report.Days {
		fmt.Fprintf(a.out, "  %s  %6.0f kcal  %5.1fP %5.1fC %5.1fF\n",
			d.Day, d.Totals.EnergyKcal, d.Totals.Proteins, d.Totals.Carbs, d.Totals.Fat)
	}
	fmt.Fprintf(a.out, "Total:   %6.0f kcal over %d days\n",
		report.Totals.EnergyKcal, len(report.Days))
	fmt.Fprintf(a.out, "Average: %6.0f kcal per logged day\n", report.AvgPerDay.EnergyKcal)
	return nil
}

// printSummary prints the day totals against the targets.
func (a *App) printSummary(s *services.DaySummary) {
	fmt.Fprintf(a.out, "Totals: %.0f kcal, %.1f g protein, %.1f g carbs, %.1f g fat\n",
		s.Totals.EnergyKcal, s.Totals.Proteins, s.Totals.Carbs, s.Totals.Fat)
	if s.CaloriesProgress > 0 || s.ProteinProgress > 0 {
		fmt.Fprintf(a.out, "Goals:  %s kcal  %s protein  %s carbs  %s fat\n",
			progressBar(s.CaloriesProgress), progressBar(s.ProteinProgress),
			progressBar(s.CarbsProgress), progressBar(s.FatProgress))
	}
	if tally := s.Grades; tally.A+tally.B+tally.C+tally.D+tally.E+tally.Unknown > 0 {
		fmt.Fprintf(a.out, "Scores: A:%d B:%d C:%d D:%d E:%d ?:%d\n",
			tally.A, tally.B, tally.C, tally.D, tally.E, tally.Unknown)
	}
}

// progressBar renders a ratio 0..1 as a ten-segment bar with a percentage.
func progressBar(ratio float64) string {
	filled := int(ratio * 10)
	if filled > 10 {
		filled = 10
	}
	bar := ""
	for i := 0; i < 10; i++ {
		if i < filled {
			bar += "#"
		} else {
			bar += "-"
		}
	}
	return fmt.Sprintf("[%s] %3.0f%%", bar, ratio*100)
}
