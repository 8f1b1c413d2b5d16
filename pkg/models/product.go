package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

type MetalPurity string

const (
	Metal14kGold     MetalPurity = "14k Gold"
	Metal18kGold     MetalPurity = "18k Gold"
	Metal24kGold     MetalPurity = "24k Gold"
	MetalPlatinum    MetalPurity = "Platinum"
	MetalOneGramGold MetalPurity = "1 Gram Gold"
)

// Metals lists every metal purity the boutique works in, in display order
var Metals = []MetalPurity{Metal14kGold, Metal18kGold, Metal24kGold, MetalPlatinum, MetalOneGramGold}

type StoneType string

const (
	StoneDiamond  StoneType = "Diamond"
	StoneEmerald  StoneType = "Emerald"
	StoneSapphire StoneType = "Sapphire"
	StoneRuby     StoneType = "Ruby"
	StonePearl    StoneType = "Pearl"
	StoneKundan   StoneType = "Kundan"
	StoneNone     StoneType = "None"
)

// Stones lists every stone type, in display order
var Stones = []StoneType{StoneDiamond, StoneEmerald, StoneSapphire, StoneRuby, StonePearl, StoneKundan, StoneNone}

type StockStatus string

const (
	InStock     StockStatus = "In Stock"
	MadeToOrder StockStatus = "Made to Order"
)

// Product represents a piece in the boutique catalog
type Product struct {
	ID          string      `json:"id"`
	SKU         string      `json:"sku" validate:"required,min=3,max=50"`
	Name        string      `json:"name" validate:"required,min=2,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	BasePrice   int         `json:"basePrice" validate:"gte=0"`
	Discount    *int        `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"` // Percentage discount
	Category    string      `json:"category" validate:"required,max=100"`
	MetalPurity MetalPurity `json:"metalPurity" validate:"required,oneof='14k Gold' '18k Gold' '24k Gold' 'Platinum' '1 Gram Gold'"`
	StoneType   StoneType   `json:"stoneType" validate:"required,oneof=Diamond Emerald Sapphire Ruby Pearl Kundan None"`
	Images      []string    `json:"images"`
	StockStatus StockStatus `json:"stockStatus" validate:"required,oneof='In Stock' 'Made to Order'"`
	Weight      string      `json:"weight"`
	Hallmark    string      `json:"hallmark"`
	IsNew       bool        `json:"isNew"`
	IsPopular   bool        `json:"isPopular"`
	Reviews     []Review    `json:"reviews"`
}

// DiscountPercent returns the discount percentage, treating an absent discount as 0
func (p *Product) DiscountPercent() int {
	if p.Discount == nil {
		return 0
	}
	return *p.Discount
}

// Clone returns a deep copy so callers never share slices with the store
func (p Product) Clone() Product {
	c := p
	if p.Discount != nil {
		d := *p.Discount
		c.Discount = &d
	}
	c.Images = slices.Clone(p.Images)
	c.Reviews = slices.Clone(p.Reviews)
	return c
}

// AverageRating returns the mean review rating, 0 when there are no reviews
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews))
}

// PositiveReviews counts the four and five star reviews
func (p *Product) PositiveReviews() int {
	var n int
	for i := range p.Reviews {
		if p.Reviews[i].IsPositive() {
			n++
		}
	}
	return n
}

// GenerateSKU builds a catalog SKU from the category prefix and the current time.
// Format: AUR-{CAT}-{base36 unix nanos}
func GenerateSKU(category string) string {
	prefix := strings.ToUpper(strings.TrimSpace(category))
	if r := []rune(prefix); len(r) > 2 {
		prefix = string(r[:2])
	}
	if prefix == "" {
		prefix = "XX"
	}
	return fmt.Sprintf("AUR-%s-%s", prefix, strings.ToUpper(strconv.FormatInt(time.Now().UnixNano(), 36)))
}

// IntPtr is a small helper for optional integer fields such as Discount
func IntPtr(v int) *int {
	return &v
}
