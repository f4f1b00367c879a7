package booking

import "errors"

var (
	// ErrEmptySelection is returned by callers that refuse to confirm
	// without an event or seats.
	ErrEmptySelection = errors.New("nothing selected")
	// ErrEventChanged is returned when the active event is no longer the
	// one a guarded seat change was checked against.
	ErrEventChanged = errors.New("active event changed")
	// ErrSeatLimit is returned by callers that enforce MaxSeats.
	ErrSeatLimit = errors.New("seat limit reached")
	// ErrSeatBooked is returned when a booked seat is picked.
	ErrSeatBooked = errors.New("seat already booked")
	// ErrNoEvent is returned when seats are picked before an event.
	ErrNoEvent = errors.New("no event selected")
)
