// Package pricing computes bespoke prices for catalog pieces from the base price,
// the selected metal and stone surcharges, and the piece's percentage discount.
package pricing

import "aurelialuxe.com/boutique/pkg/models"

// Rules maps each metal purity and stone type to a flat surcharge
type Rules struct {
	Metal map[models.MetalPurity]int `json:"metal"`
	Stone map[models.StoneType]int   `json:"stone"`
}

// DefaultRules is the boutique's surcharge table. It is not editable at runtime.
var DefaultRules = Rules{
	Metal: map[models.MetalPurity]int{
		models.Metal14kGold:     2500,
		models.Metal18kGold:     4000,
		models.Metal24kGold:     6000,
		models.MetalPlatinum:    7500,
		models.MetalOneGramGold: 0,
	},
	Stone: map[models.StoneType]int{
		models.StoneDiamond:  12000,
		models.StoneEmerald:  6000,
		models.StoneSapphire: 5000,
		models.StoneRuby:     4500,
		models.StoneNone:     0,
		models.StonePearl:    900,
		models.StoneKundan:   1500,
	},
}

// Price is the outcome of a price calculation
type Price struct {
	Original float64 `json:"original"`
	Final    float64 `json:"final"`
}

// MetalSurcharge returns the flat surcharge for a metal, 0 if unknown
func (r Rules) MetalSurcharge(metal models.MetalPurity) int {
	return r.Metal[metal]
}

// StoneSurcharge returns the flat surcharge for a stone, 0 if unknown
func (r Rules) StoneSurcharge(stone models.StoneType) int {
	return r.Stone[stone]
}

// Calculate prices a product for the given metal and stone selection.
// The discount is not range checked; values outside [0,100] flow straight through.
func (r Rules) Calculate(product models.Product, metal models.MetalPurity, stone models.StoneType) Price {
	original := float64(product.BasePrice + r.MetalSurcharge(metal) + r.StoneSurcharge(stone))
	discountAmount := original * float64(product.DiscountPercent()) / 100
	return Price{
		Original: original,
		Final:    original - discountAmount,
	}
}

// CalculatePrice prices a product with DefaultRules
func CalculatePrice(product models.Product, metal models.MetalPurity, stone models.StoneType) Price {
	return DefaultRules.Calculate(product, metal, stone)
}

// Total sums the frozen final prices of bag lines
func Total(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.FinalPrice
	}
	return total
}
