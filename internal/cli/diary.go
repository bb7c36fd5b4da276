package cli

import (
	"context"
	"errors"
	"fmt"

	"nutridiary/internal/common"
	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
)

// resolveDay picks the day from the arguments or defaults to today.
func resolveDay(args []string) (string, error) {
	if len(args) == 0 {
		return models.Today(), nil
	}
	return models.ParseDay(args[0])
}

// askMealType prompts for a meal slot.
func (a *App) askMealType() (models.MealType, error) {
	text, err := getSimpleText(a.reader, "Meal (breakfast/lunch/dinner/snack)", a.out)
	if err != nil {
		return "", err
	}
	mt, ok := models.ParseMealType(text)
	if !ok {
		return "", fmt.Errorf("unknown meal type %q", text)
	}
	return mt, nil
}

// ShowDay prints the day's meals with items and the summary against the
// targets.
func (a *App) ShowDay(ctx context.Context, args []string) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	day, err := resolveDay(args)
	if err != nil {
		return err
	}

	meals, err := a.diary.GetDay(ctx, userID, day)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Diary for %s\n", day)
	if len(meals) == 0 {
		fmt.Fprintln(a.out, "  nothing logged yet")
	}
	for _, m := range meals {
		fmt.Fprintf(a.out, "%s  %.0f kcal\n", m.Type, m.Totals.EnergyKcal)
		for _, item := range m.Items {
			fmt.Fprintf(a.out, "  [%s] %s  %.0f %s  %.0f kcal%s\n",
				shortID(item.ID), item.Name, item.Quantity, item.Unit,
				item.Nutrients.EnergyKcal, gradeSuffix(item.NutriScore))
		}
	}

	summary, err := a.stats.Day(ctx, userID, day)
	if err != nil {
		return err
	}
	a.printSummary(summary)
	return nil
}

// AddItem logs a food into a meal. The product is picked by barcode, by a
// search result number or by history/favorites shortcuts shown beforehand.
func (a *App) AddItem(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}

	product, err := a.pickProduct(ctx, userID)
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

	mt, err := a.askMealType()
	if err != nil {
		return err
	}

	unit, quantity, err := a.askQuantity(product)
	if err != nil {
		return err
	}

	item, err := a.diary.AddItem(ctx, userID, day, mt, product.ID, unit, quantity)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged %s: %.0f kcal\n", item.Name, item.Nutrients.EnergyKcal)
	return nil
}

// askQuantity prompts for the unit and amount, defaulting to grams. Pieces
// are only offered when the product has a known piece weight.
func (a *App) askQuantity(p *models.Product) (nutrition.Unit, float64, error) {
	prompt := "Unit (g/ml"
	if p.PieceWeightG > 0 {
		prompt += "/piece"
	}
	prompt += ", empty for g)"

	unitText, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", 0, err
	}
	unit := nutrition.UnitGram
	if unitText != "" {
		if unit, err = nutrition.ParseUnit(unitText); err != nil {
			return "", 0, err
		}
	}

	quantity, err := GetFloat(a.reader, "Amount", 0, a.out)
	if err != nil {
		return "", 0, err
	}
	return unit, quantity, nil
}

// EditItem changes the amount of a logged food.
func (a *App) EditItem(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}

	itemID, err := a.askItemID(ctx, userID)
	if err != nil {
		return err
	}

	unitText, err := getSimpleText(a.reader, "Unit (g/ml/piece, empty for g)", a.out)
	if err != nil {
		return err
	}
	unit := nutrition.UnitGram
	if unitText != "" {
		if unit, err = nutrition.ParseUnit(unitText); err != nil {
			return err
		}
	}
	quantity, err := GetFloat(a.reader, "New amount", 0, a.out)
	if err != nil {
		return err
	}

	item, err := a.diary.EditItem(ctx, userID, itemID, unit, quantity)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s: %.0f kcal\n", item.Name, item.Nutrients.EnergyKcal)
	return nil
}

// RemoveItem deletes a logged food.
func (a *App) RemoveItem(ctx context.Context) error {
	userID, err := a.currentUser()
	if err != nil {
		return err
	}
	itemID, err := a.askItemID(ctx, userID)
	if err != nil {
		return err
	}
	if err := a.diary.RemoveItem(ctx, userID, itemID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed.")
	return nil
}

// DeleteMeal removes a whole meal slot for a day.
func (a *App) DeleteMeal(ctx context.Context) error {
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
	mt, err := a.askMealType()
	if err != nil {
		return err
	}

	if err := a.diary.DeleteMeal(ctx, userID, day, mt); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Meal removed.")
	return nil
}

// askItemID prompts for an item id prefix and resolves it against today's
// diary, so the user can type the short id shown by 'day'.
func (a *App) askItemID(ctx context.Context, userID string) (string, error) {
	prefix, err := getSimpleText(a.reader, "Item id (as shown by 'day')", a.out)
	if err != nil {
		return "", err
	}
	if prefix == "" {
		return "", common.ErrNotFound
	}

	meals, err := a.diary.GetDay(ctx, userID, models.Today())
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return "", err
	}
	for _, m := range meals {
		for _, item := range m.Items {
			if item.ID == prefix || shortID(item.ID) == prefix {
				return item.ID, nil
			}
		}
	}
	// fall through with the raw input, it may be a full id from another day
	return prefix, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func gradeSuffix(grade string) string {
	if grade == "" {
		return ""
	}
	return "  [" + grade + "]"
}
