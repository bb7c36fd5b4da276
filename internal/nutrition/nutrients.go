// Package nutrition holds the nutrient value types and the arithmetic the
// diary is built on: scaling a per-100g profile to a logged quantity,
// summing item values into meal and day totals, and Nutri-Score helpers.
package nutrition

// Nutrients is a nutrient profile. Depending on context it is either a
// per-100g baseline (product catalog) or an absolute amount (meal item
// snapshots, meal and day totals). Energy is kcal, salt and the macros are
// grams.
type Nutrients struct {
	EnergyKcal float64 `json:"energy_kcal"`
	Proteins   float64 `json:"proteins"`
	Carbs      float64 `json:"carbs"`
	Sugars     float64 `json:"sugars"`
	Fat        float64 `json:"fat"`
	SatFat     float64 `json:"sat_fat"`
	Fiber      float64 `json:"fiber"`
	Salt       float64 `json:"salt"`
}

// Add returns the field-wise sum of n and o.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		EnergyKcal: n.EnergyKcal + o.EnergyKcal,
		Proteins:   n.Proteins + o.Proteins,
		Carbs:      n.Carbs + o.Carbs,
		Sugars:     n.Sugars + o.Sugars,
		Fat:        n.Fat + o.Fat,
		SatFat:     n.SatFat + o.SatFat,
		Fiber:      n.Fiber + o.Fiber,
		Salt:       n.Salt + o.Salt,
	}
}

// Scale returns n with every field multiplied by factor.
func (n Nutrients) Scale(factor float64) Nutrients {
	return Nutrients{
		EnergyKcal: n.EnergyKcal * factor,
		Proteins:   n.Proteins * factor,
		Carbs:      n.Carbs * factor,
		Sugars:     n.Sugars * factor,
		Fat:        n.Fat * factor,
		SatFat:     n.SatFat * factor,
		Fiber:      n.Fiber * factor,
		Salt:       n.Salt * factor,
	}
}

// IsZero reports whether every field is exactly zero.
func (n Nutrients) IsZero() bool {
	return n == Nutrients{}
}
