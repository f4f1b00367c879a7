package catalog

import (
	"strings"

	"github.com/iliyamo/matchday-tickets/internal/model"
)

// Menu is the concession stand menu.
type Menu struct {
	items []model.FoodItem
}

// NewMenu returns a menu holding items in the given order.
func NewMenu(items []model.FoodItem) *Menu {
	return &Menu{items: append([]model.FoodItem(nil), items...)}
}

// Items returns the items of category, or every item when category is
// empty or "All".
func (m *Menu) Items(category string) []model.FoodItem {
	out := make([]model.FoodItem, 0, len(m.items))
	for _, it := range m.items {
		if category == "" || strings.EqualFold(category, "all") || strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out
}

// Item looks up a menu item by id.
func (m *Menu) Item(id string) (model.FoodItem, bool) {
	for _, it := range m.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.FoodItem{}, false
}

// MockMenu returns the menu the app ships with.
func MockMenu() []model.FoodItem {
	return []model.FoodItem{
		{ID: "1", Name: "Classic Burger", Description: "Juicy beef patty with fresh vegetables", PriceCents: 1299, Category: "Food"},
		{ID: "2", Name: "Hot Dog Combo", Description: "Premium hot dog with fries and drink", PriceCents: 999, Category: "Food"},
		{ID: "3", Name: "Nachos Supreme", Description: "Loaded nachos with cheese and jalapeños", PriceCents: 899, Category: "Food"},
		{ID: "4", Name: "Pizza Slice", Description: "Fresh pepperoni pizza slice", PriceCents: 699, Category: "Food"},
		{ID: "5", Name: "Coca-Cola", Description: "Large 32oz refreshing soft drink", PriceCents: 499, Category: "Drinks"},
		{ID: "6", Name: "Beer", Description: "Ice cold draft beer", PriceCents: 899, Category: "Drinks"},
		{ID: "7", Name: "Bottled Water", Description: "Pure spring water", PriceCents: 299, Category: "Drinks"},
		{ID: "8", Name: "Popcorn", Description: "Large bucket of buttery popcorn", PriceCents: 799, Category: "Snacks"},
		{ID: "9", Name: "Pretzel", Description: "Warm soft pretzel with cheese dip", PriceCents: 599, Category: "Snacks"},
		{ID: "10", Name: "Ice Cream", Description: "Premium vanilla ice cream cup", PriceCents: 499, Category: "Snacks"},
	}
}
