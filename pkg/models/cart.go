package models

// CartItem is a product snapshot placed in the bag with the selections made at the time.
// FinalPrice is frozen when the item is added and never recomputed.
type CartItem struct {
	Product
	Quantity      int         `json:"quantity"`
	SelectedMetal MetalPurity `json:"selectedMetal"`
	SelectedStone StoneType   `json:"selectedStone"`
	FinalPrice    float64     `json:"finalPrice"`
}

// Clone returns a deep copy of the line
func (ci CartItem) Clone() CartItem {
	c := ci
	c.Product = ci.Product.Clone()
	return c
}

type AddToCartRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Metal     MetalPurity `json:"metal"`
	Stone     StoneType   `json:"stone"`
}
