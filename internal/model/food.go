package model

// FoodItem is a purchasable concession item from the venue menu.
type FoodItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  Cents  `json:"price_cents"`
	Category    string `json:"category"` // Food | Drinks | Snacks
}

// FoodOrder is a quantity-bearing reference to a FoodItem.  While a
// line is held by a booking session its Quantity is always >= 1.
type FoodOrder struct {
	Item     FoodItem `json:"item"`
	Quantity int      `json:"quantity"`
}

// LineTotal returns unit price × quantity.
func (o FoodOrder) LineTotal() Cents {
	return o.Item.PriceCents * Cents(o.Quantity)
}
