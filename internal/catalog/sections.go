// Package catalog holds the static data of the app: the venue seat
// layout, the mock event list and the concession menu.
package catalog

import "github.com/iliyamo/matchday-tickets/internal/model"

// Section is one pricing block of the venue.  Every row of a section
// carries SeatsPerRow seats numbered from 1.
type Section struct {
	Name        string
	Category    model.SeatCategory
	PriceCents  model.Cents
	Rows        []string
	SeatsPerRow int
}

// DefaultSections returns the arena layout used for every event.
func DefaultSections() []Section {
	return []Section{
		{Name: "VIP", Category: model.CategoryVIP, PriceCents: model.Dollars(200), Rows: []string{"A", "B"}, SeatsPerRow: 10},
		{Name: "Ringside", Category: model.CategoryRingside, PriceCents: model.Dollars(150), Rows: []string{"C", "D", "E"}, SeatsPerRow: 12},
		{Name: "Normal", Category: model.CategoryNormal, PriceCents: model.Dollars(75), Rows: []string{"F", "G", "H", "I", "J"}, SeatsPerRow: 15},
		{Name: "End Stand", Category: model.CategoryEndStand, PriceCents: model.Dollars(45), Rows: []string{"K", "L", "M"}, SeatsPerRow: 18},
	}
}
