package catalog

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/iliyamo/matchday-tickets/internal/model"
)

// BookedRatio is the share of seats drawn as already booked.
const BookedRatio = 0.3

// Availability decides the status of a single seat at generation time.
type Availability func(seatID string) model.SeatStatus

// RandomAvailability draws every seat independently from rng: booked
// with probability BookedRatio, available otherwise.  rng is not safe
// for concurrent use, so neither is the returned policy.
func RandomAvailability(rng *rand.Rand) Availability {
	return func(string) model.SeatStatus {
		if rng.Float64() < BookedRatio {
			return model.SeatBooked
		}
		return model.SeatAvailable
	}
}

// SeededAvailability is RandomAvailability over a source seeded with
// seed; the same seed always yields the same layout.
func SeededAvailability(seed int64) Availability {
	return RandomAvailability(rand.New(rand.NewSource(seed)))
}

// UnseededAvailability seeds from the wall clock.  Layouts are not
// reproducible; prefer SeededAvailability outside of demos.
func UnseededAvailability() Availability {
	return SeededAvailability(time.Now().UnixNano())
}

// FixedAvailability applies a precomputed status map.  Seats missing
// from the map are available.
func FixedAvailability(statuses map[string]model.SeatStatus) Availability {
	return func(seatID string) model.SeatStatus {
		if st, ok := statuses[seatID]; ok {
			return st
		}
		return model.SeatAvailable
	}
}

// Generate emits the seats of every row of every section in layout
// order.  A nil avail marks every seat available.
func Generate(sections []Section, avail Availability) []model.Seat {
	if avail == nil {
		avail = FixedAvailability(nil)
	}
	n := 0
	for _, sec := range sections {
		n += len(sec.Rows) * sec.SeatsPerRow
	}
	seats := make([]model.Seat, 0, n)
	for _, sec := range sections {
		for _, row := range sec.Rows {
			for i := 1; i <= sec.SeatsPerRow; i++ {
				id := row + strconv.Itoa(i)
				seats = append(seats, model.Seat{
					ID:         id,
					Row:        row,
					Number:     i,
					Category:   sec.Category,
					PriceCents: sec.PriceCents,
					Status:     avail(id),
				})
			}
		}
	}
	return seats
}

// Layouts generates one seat layout per event and keeps it, so an
// event renders the same map on every request.  Each layout is seeded
// from the event id.
type Layouts struct {
	mu       sync.Mutex
	sections []Section
	byEvent  map[string][]model.Seat
}

// NewLayouts returns a layout cache over the given sections.
func NewLayouts(sections []Section) *Layouts {
	return &Layouts{sections: sections, byEvent: make(map[string][]model.Seat)}
}

// For returns a copy of the layout of eventID, generating it on first use.
func (l *Layouts) For(eventID string) []model.Seat {
	l.mu.Lock()
	defer l.mu.Unlock()
	seats, ok := l.byEvent[eventID]
	if !ok {
		seats = Generate(l.sections, SeededAvailability(seedFor(eventID)))
		l.byEvent[eventID] = seats
	}
	out := make([]model.Seat, len(seats))
	copy(out, seats)
	return out
}

// Seat looks up a single seat in the layout of eventID.
func (l *Layouts) Seat(eventID, seatID string) (model.Seat, bool) {
	for _, s := range l.For(eventID) {
		if s.ID == seatID {
			return s, true
		}
	}
	return model.Seat{}, false
}

// Forget drops the cached layout, e.g. after the event was deleted.
func (l *Layouts) Forget(eventID string) {
	l.mu.Lock()
	delete(l.byEvent, eventID)
	l.mu.Unlock()
}

func seedFor(eventID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(eventID))
	return int64(h.Sum64())
}
