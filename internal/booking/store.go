// Package booking holds the state of one booking session: the chosen
// event, the selected seats and the food orders, plus the history of
// confirmed bookings.
package booking

import (
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/matchday-tickets/internal/clock"
	"github.com/iliyamo/matchday-tickets/internal/model"
)

// MaxSeats is the most seats one booking may hold.  ToggleSeat does not
// enforce it; ToggleSeatFor does.
const MaxSeats = 10

// MaxFoodQuantity caps a single food line.  AddFoodOrder and
// UpdateFoodQuantity do not enforce it; callers check with FoodQuantity.
const MaxFoodQuantity = 99

// Store is the selection store of a single user.  Every mutation is
// applied immediately and is visible to the next reader; there is no
// grouping or rollback.
type Store struct {
	mu      sync.Mutex
	clock   clock.Clock
	newID   func() string
	event   *model.Event
	seats   []model.Seat
	food    []model.FoodOrder
	history []model.Booking
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp bookings.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDFunc sets the generator for booking ids.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore returns an empty store using the system clock and UUIDv4 ids.
func NewStore(opts ...Option) *Store {
	s := &Store{clock: clock.NewSystem(), newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectEvent makes e the active event and drops any seats and food
// picked for the previous one.
func (s *Store) SelectEvent(e model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event = &e
	s.seats = nil
	s.food = nil
}

// ToggleSeat removes the seat when it is selected and appends it
// otherwise.  It reports whether the seat is selected afterwards.
func (s *Store) ToggleSeat(seat model.Seat) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.seats {
		if cur.ID == seat.ID {
			s.seats = append(s.seats[:i:i], s.seats[i+1:]...)
			return false
		}
	}
	s.seats = append(s.seats, seat)
	return true
}

// ToggleSeatFor toggles seat like ToggleSeat, but only while eventID is
// the active event, and refuses to add a booked seat or a seat beyond
// limit.  The checks and the toggle happen under one lock.
func (s *Store) ToggleSeatFor(eventID string, seat model.Seat, limit int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.event == nil {
		return false, ErrNoEvent
	}
	if s.event.ID != eventID {
		return false, ErrEventChanged
	}
	for i, cur := range s.seats {
		if cur.ID == seat.ID {
			s.seats = append(s.seats[:i:i], s.seats[i+1:]...)
			return false, nil
		}
	}
	if !seat.Available() {
		return false, ErrSeatBooked
	}
	if len(s.seats) >= limit {
		return false, ErrSeatLimit
	}
	s.seats = append(s.seats, seat)
	return true, nil
}

// ReplaceSeats swaps the whole selection for seats while eventID is the
// active event.
func (s *Store) ReplaceSeats(eventID string, seats []model.Seat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.event == nil {
		return ErrNoEvent
	}
	if s.event.ID != eventID {
		return ErrEventChanged
	}
	s.seats = append([]model.Seat(nil), seats...)
	return nil
}

// ClearSeats empties the seat selection.
func (s *Store) ClearSeats() {
	s.mu.Lock()
	s.seats = nil
	s.mu.Unlock()
}

// AddFoodOrder adds qty of item, merging into an existing line for the
// same item.  qty is trusted to be positive.
func (s *Store) AddFoodOrder(item model.FoodItem, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.food {
		if s.food[i].Item.ID == item.ID {
			s.food[i].Quantity += qty
			return
		}
	}
	s.food = append(s.food, model.FoodOrder{Item: item, Quantity: qty})
}

// RemoveFoodOrder deletes the line for itemID, if any.
func (s *Store) RemoveFoodOrder(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeFood(itemID)
}

// UpdateFoodQuantity sets the quantity of the itemID line to exactly
// qty.  A qty of zero or less removes the line.  Unknown ids are ignored.
func (s *Store) UpdateFoodQuantity(itemID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if qty <= 0 {
		s.removeFood(itemID)
		return
	}
	for i := range s.food {
		if s.food[i].Item.ID == itemID {
			s.food[i].Quantity = qty
			return
		}
	}
}

// ClearFoodOrders empties all food lines.
func (s *Store) ClearFoodOrders() {
	s.mu.Lock()
	s.food = nil
	s.mu.Unlock()
}

func (s *Store) removeFood(itemID string) {
	for i, o := range s.food {
		if o.Item.ID == itemID {
			s.food = append(s.food[:i:i], s.food[i+1:]...)
			return
		}
	}
}

// Event returns the active event, if one is selected.
func (s *Store) Event() (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.event == nil {
		return model.Event{}, false
	}
	return *s.event, true
}

// Seats returns the selected seats in selection order.
func (s *Store) Seats() []model.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Seat{}, s.seats...)
}

// HasSeat reports whether seatID is selected.
func (s *Store) HasSeat(seatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.seats {
		if cur.ID == seatID {
			return true
		}
	}
	return false
}

// FoodQuantity returns the quantity on the itemID line, or 0.
func (s *Store) FoodQuantity(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.food {
		if o.Item.ID == itemID {
			return o.Quantity
		}
	}
	return 0
}

// FoodOrders returns the food lines in the order they were added.
func (s *Store) FoodOrders() []model.FoodOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.FoodOrder{}, s.food...)
}
