package booking

import (
	"time"

	"github.com/iliyamo/matchday-tickets/internal/model"
)

// Confirm snapshots the current selection into a confirmed booking,
// puts it first in the history and resets the event, seats and food.
// It never fails: an incomplete selection is recorded as it is, so
// callers that need an event and seats check before confirming.  Seat
// statuses in the venue layout are left untouched.
func (s *Store) Confirm() model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := model.Booking{
		ID:         s.newID(),
		Seats:      s.seats,
		FoodOrders: s.food,
		TotalCents: total(s.seats, s.food),
		BookedAt:   s.clock.Now(),
		Status:     model.BookingConfirmed,
	}
	if s.event != nil {
		b.Event = *s.event
	}
	if b.Seats == nil {
		b.Seats = []model.Seat{}
	}
	if b.FoodOrders == nil {
		b.FoodOrders = []model.FoodOrder{}
	}
	s.history = append([]model.Booking{b}, s.history...)
	s.event = nil
	s.seats = nil
	s.food = nil
	return b
}

// Cancel marks the booking with the given id as cancelled.  It reports
// false, leaving the history untouched, when no booking matches.
func (s *Store) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].ID == id {
			s.history[i].Status = model.BookingCancelled
			return true
		}
	}
	return false
}

// Find returns the booking with the given id.
func (s *Store) Find(id string) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.history {
		if b.ID == id {
			return b, true
		}
	}
	return model.Booking{}, false
}

// History returns every booking, most recent first.
func (s *Store) History() []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Booking{}, s.history...)
}

// Tab selects a subset of the history.
type Tab string

const (
	TabUpcoming  Tab = "upcoming"
	TabPast      Tab = "past"
	TabCancelled Tab = "cancelled"
)

// Filter returns the bookings shown under tab.  Upcoming and past hold
// confirmed bookings split by whether the event starts before now.  An
// unknown tab yields every booking.
func (s *Store) Filter(tab Tab, now time.Time) []model.Booking {
	all := s.History()
	out := make([]model.Booking, 0, len(all))
	for _, b := range all {
		switch tab {
		case TabUpcoming:
			if b.Status == model.BookingConfirmed && !b.Event.StartsAt.Before(now) {
				out = append(out, b)
			}
		case TabPast:
			if b.Status == model.BookingConfirmed && b.Event.StartsAt.Before(now) {
				out = append(out, b)
			}
		case TabCancelled:
			if b.Status == model.BookingCancelled {
				out = append(out, b)
			}
		default:
			out = append(out, b)
		}
	}
	return out
}
