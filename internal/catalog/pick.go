package catalog

import (
	"math/rand"

	"github.com/iliyamo/matchday-tickets/internal/model"
)

// RandomPickSize is how many seats the quick-pick picks.
const RandomPickSize = 4

// RandomPick returns up to n distinct available seats chosen with rng.
func RandomPick(seats []model.Seat, n int, rng *rand.Rand) []model.Seat {
	avail := make([]model.Seat, 0, len(seats))
	for _, s := range seats {
		if s.Available() {
			avail = append(avail, s)
		}
	}
	rng.Shuffle(len(avail), func(i, j int) { avail[i], avail[j] = avail[j], avail[i] })
	if n > len(avail) {
		n = len(avail)
	}
	if n < 0 {
		n = 0
	}
	return avail[:n]
}

// Row groups the seats of one row for rendering.
type Row struct {
	Label    string             `json:"label"`
	Category model.SeatCategory `json:"category"`
	Seats    []model.Seat       `json:"seats"`
}

// GroupByRow groups seats by row label, keeping first-seen row order.
func GroupByRow(seats []model.Seat) []Row {
	idx := make(map[string]int)
	var rows []Row
	for _, s := range seats {
		i, ok := idx[s.Row]
		if !ok {
			i = len(rows)
			idx[s.Row] = i
			rows = append(rows, Row{Label: s.Row, Category: s.Category})
		}
		rows[i].Seats = append(rows[i].Seats, s)
	}
	return rows
}
