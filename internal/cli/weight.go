package cli

import (
	"context"
	"fmt"

	"nutridiary/internal/models"
)

// LogWeight records today's (or a given day's) body weight.
func (a *App) LogWeight(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}

	dayText, err := getSimpleText(a.reader, "Day (YYYY-MM-DD, empty for today)", a.out)
	if err != nil {
		return err
	}
	day := models.Today()
	if dayText != "" {
		if day, err = models.ParseDay(dayText); err != nil {
			return err
		}
	}

	kg, err := GetFloat(a.reader, "Weight (kg)", 0, a.out)
	if err != nil {
		return err
	}
	note, err := getSimpleText(a.reader, "Note (optional)", a.out)
	if err != nil {
		return err
	}

	if err := a.weight.Log(ctx, userID, day, kg, note); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Recorded %.1f kg for %s.\n", kg, day)
	return nil
}

// ListWeights prints the recent measurements, newest first.
func (a *App) ListWeights(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	logs, err := a.weight.List(ctx, userID, 30)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Fprintln(a.out, "No measurements yet, use 'weight' to log one.")
		return nil
	}
	for _, w := range logs {
		line := fmt.Sprintf("%s  %.1f kg", w.Day, w.WeightKg)
		if w.Note != "" {
			line += "  (" + w.Note + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// DeleteWeight removes one day's measurement.
func (a *App) DeleteWeight(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}

	dayText, err := getSimpleText(a.reader, "Day (YYYY-MM-DD, empty for today)", a.out)
	if err != nil {
		return err
	}
	day := models.Today()
	if dayText != "" {
		if day, err = models.ParseDay(dayText); err != nil {
			return err
		}
	}

	if err := a.weight.Delete(ctx, userID, day); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed the measurement for %s.\n", day)
	return nil
}

// Trend prints the weight movement over the last weeks and the distance to
// the goal.
func (a *App) Trend(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	trend, err := a.weight.Trend(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Current: %.1f kg (%s)\n", trend.CurrentKg, trend.CurrentAt)
	fmt.Fprintf(a.out, "Change:  %+.1f kg over 7 days, %+.1f kg over 30 days\n",
		trend.Change7dKg, trend.Change30dKg)
	if trend.TargetKg > 0 {
		fmt.Fprintf(a.out, "Goal:    %.1f kg (%+.1f kg to go)\n", trend.TargetKg, -trend.ToTargetKg)
	}
	return nil
}
