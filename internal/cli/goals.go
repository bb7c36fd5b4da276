package cli

import (
	"context"
	"fmt"
	"strings"

	"nutridiary/internal/nutrition"
	"nutridiary/internal/services"
)

// Onboard walks through the profile questions and stores the computed daily
// targets.
func (a *App) Onboard(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}

	sexText, err := getSimpleText(a.reader, "Sex (m/f)", a.out)
	if err != nil {
		return err
	}
	sex := nutrition.SexFemale
	if strings.HasPrefix(strings.ToLower(sexText), "m") {
		sex = nutrition.SexMale
	}

	birthYear, err := GetInt(a.reader, "Birth year", 0, a.out)
	if err != nil {
		return err
	}
	height, err := GetFloat(a.reader, "Height (cm)", 0, a.out)
	if err != nil {
		return err
	}
	weight, err := GetFloat(a.reader, "Current weight (kg)", 0, a.out)
	if err != nil {
		return err
	}
	activity, err := GetInt(a.reader, "Activity level 1-5 (1 sedentary, 5 athlete)", 1, a.out)
	if err != nil {
		return err
	}
	target, err := GetFloat(a.reader, "Goal weight (kg, empty to skip)", 0, a.out)
	if err != nil {
		return err
	}

	goals, err := a.goals.SaveProfile(ctx, userID, services.Profile{
		Sex:            sex,
		BirthYear:      birthYear,
		HeightCm:       height,
		WeightKg:       weight,
		ActivityLevel:  activity,
		WeightTargetKg: target,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Daily targets: %.0f kcal, %.0f g protein, %.0f g carbs, %.0f g fat\n",
		goals.CaloriesTarget, goals.ProteinTargetG, goals.CarbsTargetG, goals.FatTargetG)
	return nil
}

// ShowGoals prints the stored profile and targets.
func (a *App) ShowGoals(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	g, err := a.goals.Get(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Profile: %s, born %d, %.0f cm, activity %d\n",
		g.Sex, g.BirthYear, g.HeightCm, g.ActivityLevel)
	if g.WeightTargetKg > 0 {
		fmt.Fprintf(a.out, "Goal weight: %.1f kg\n", g.WeightTargetKg)
	}
	fmt.Fprintf(a.out, "Daily targets: %.0f kcal, %.0f g protein, %.0f g carbs, %.0f g fat\n",
		g.CaloriesTarget, g.ProteinTargetG, g.CarbsTargetG, g.FatTargetG)
	return nil
}

// SetTargets overrides the computed daily targets with manual values.
func (a *App) SetTargets(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	current, err := a.goals.Get(ctx, userID)
	if err != nil {
		return err
	}

	calories, err := GetFloat(a.reader, fmt.Sprintf("Calories (now %.0f)", current.CaloriesTarget), current.CaloriesTarget, a.out)
	if err != nil {
		return err
	}
	protein, err := GetFloat(a.reader, fmt.Sprintf("Protein g (now %.0f)", current.ProteinTargetG), current.ProteinTargetG, a.out)
	if err != nil {
		return err
	}
	carbs, err := GetFloat(a.reader, fmt.Sprintf("Carbs g (now %.0f)", current.CarbsTargetG), current.CarbsTargetG, a.out)
	if err != nil {
		return err
	}
	fat, err := GetFloat(a.reader, fmt.Sprintf("Fat g (now %.0f)", current.FatTargetG), current.FatTargetG, a.out)
	if err != nil {
		return err
	}

	if _, err := a.goals.OverrideTargets(ctx, userID, calories, protein, carbs, fat); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Targets updated.")
	return nil
}
