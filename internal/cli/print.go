package cli

import (
	"fmt"
	"time"

	"nutridiary/internal/models"
	"nutridiary/internal/nutrition"
)

// timeNow is a test seam for the clock.
var timeNow = time.Now

// printProduct prints a full label card for one product.
func (a *App) printProduct(p *models.Product) {
	fmt.Fprintf(a.out, "%s\n", p.Name)
	if p.Brand != "" {
		fmt.Fprintf(a.out, "  Brand:      %s\n", p.Brand)
	}
	if p.Quantity != "" {
		fmt.Fprintf(a.out, "  Package:    %s\n", p.Quantity)
	}
	if p.Barcode != "" {
		fmt.Fprintf(a.out, "  Barcode:    %s\n", p.Barcode)
	}
	if grade := productGrade(p); grade != "" {
		fmt.Fprintf(a.out, "  NutriScore: %s\n", grade)
	}
	if p.NovaGroup > 0 {
		fmt.Fprintf(a.out, "  NOVA group: %d\n", p.NovaGroup)
	}
	fmt.Fprintf(a.out, "  Per 100 g:  %.0f kcal, %.1f g protein, %.1f g carbs (%.1f g sugar),\n",
		p.Per100g.EnergyKcal, p.Per100g.Proteins, p.Per100g.Carbs, p.Per100g.Sugars)
	fmt.Fprintf(a.out, "              %.1f g fat (%.1f g sat), %.1f g fiber, %.2f g salt\n",
		p.Per100g.Fat, p.Per100g.SatFat, p.Per100g.Fiber, p.Per100g.Salt)
	if p.PieceWeightG > 0 {
		fmt.Fprintf(a.out, "  One piece:  %.0f g\n", p.PieceWeightG)
	}
	if p.IsCustom() {
		fmt.Fprintln(a.out, "  (custom food)")
	}
}

// productGrade returns the letter grade to display, deriving it from the
// numeric score when the feed row carries no letter.
func productGrade(p *models.Product) string {
	if p.NutriScore != "" {
		return p.NutriScore
	}
	if p.NutriScoreScore != 0 {
		return nutrition.GradeFromScore(p.NutriScoreScore)
	}
	return ""
}

// printProductLine prints one numbered row for pick lists.
func (a *App) printProductLine(n int, p *models.Product) {
	name := p.Name
	if p.Brand != "" {
		name += " (" + p.Brand + ")"
	}
	marker := ""
	if p.IsCustom() {
		marker = "  *custom"
	}
	fmt.Fprintf(a.out, "%2d. %s  %.0f kcal/100g%s%s\n",
		n, name, p.Per100g.EnergyKcal, gradeSuffix(productGrade(p)), marker)
}
