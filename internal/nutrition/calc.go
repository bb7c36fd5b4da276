package nutrition

import (
	"strings"

	"nutridiary/internal/common"
)

// Unit is the measure a quantity is logged in. Grams and millilitres scale
// the per-100g baseline directly; pieces go through a per-piece gram weight.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitMillilitre Unit = "ml"
	UnitPiece      Unit = "piece"
)

// ParseUnit accepts the canonical unit names plus a few common spellings
// ("grams", "millilitres", "pieces", "pcs").
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g", "gram", "grams":
		return UnitGram, nil
	case "ml", "millilitre", "millilitres", "milliliter", "milliliters":
		return UnitMillilitre, nil
	case "piece", "pieces", "pc", "pcs":
		return UnitPiece, nil
	default:
		return "", common.ErrInvalidUnit
	}
}

// ForQuantity converts a per-100g baseline into the values for quantity
// expressed in unit. For pieces, pieceWeightG is the weight of one piece in
// grams and must be positive; it is ignored for grams and millilitres.
//
// Millilitres are treated as grams (density 1), matching how the catalog
// stores liquid products.
func ForQuantity(per100g Nutrients, unit Unit, quantity, pieceWeightG float64) (Nutrients, error) {
	if quantity <= 0 {
		return Nutrients{}, common.ErrInvalidQuantity
	}

	var grams float64
	switch unit {
	case UnitGram, UnitMillilitre:
		grams = quantity
	case UnitPiece:
		if pieceWeightG <= 0 {
			return Nutrients{}, common.ErrInvalidQuantity
		}
		grams = quantity * pieceWeightG
	default:
		return Nutrients{}, common.ErrInvalidUnit
	}

	return per100g.Scale(grams / 100), nil
}
