package nutrition

import "math"

// Energy per gram of each macronutrient (Atwater factors).
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// MacroBreakdown is the share of energy contributed by each macro, 0..1.
type MacroBreakdown struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// EnergyBreakdown computes the macro energy split of n. The denominator is
// the energy derived from the macros themselves, not the labelled kcal, so
// the shares always add up to 1 when any macro is present.
func EnergyBreakdown(n Nutrients) MacroBreakdown {
	p := n.Proteins * KcalPerGramProtein
	c := n.Carbs * KcalPerGramCarbs
	f := n.Fat * KcalPerGramFat
	total := p + c + f
	if total <= 0 {
		return MacroBreakdown{}
	}
	return MacroBreakdown{Protein: p / total, Carbs: c / total, Fat: f / total}
}

// Sex is used for the basal metabolic rate formula only.
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// ActivityFactor maps the onboarding activity level (1..5) to the
// multiplier applied to the basal metabolic rate.
func ActivityFactor(level int) float64 {
	switch {
	case level <= 1:
		return 1.2 // sedentary
	case level == 2:
		return 1.375
	case level == 3:
		return 1.55
	case level == 4:
		return 1.725
	default:
		return 1.9
	}
}

// Targets are the computed daily goals.
type Targets struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// DailyTargets derives daily calorie and macro targets from the user
// profile: Mifflin-St Jeor BMR scaled by the activity factor, then a
// 30/40/30 protein/carb/fat energy split. Results are rounded to whole
// units.
func DailyTargets(sex Sex, age int, heightCm, weightKg float64, activityLevel int) Targets {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	kcal := bmr * ActivityFactor(activityLevel)
	if kcal < 0 {
		kcal = 0
	}

	return Targets{
		Calories: math.Round(kcal),
		ProteinG: math.Round(kcal * 0.30 / KcalPerGramProtein),
		CarbsG:   math.Round(kcal * 0.40 / KcalPerGramCarbs),
		FatG:     math.Round(kcal * 0.30 / KcalPerGramFat),
	}
}

// Progress is the consumed/target ratio capped at 1. A zero or negative
// target yields 0 so missing goals never divide by zero.
func Progress(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := consumed / target
	if p > 1 {
		return 1
	}
	return p
}
