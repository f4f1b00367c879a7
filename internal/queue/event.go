// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import (
	"time"

	"github.com/iliyamo/matchday-tickets/internal/model"
)

// BookingConfirmedQueue is the durable queue carrying BookingConfirmedEvent messages.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published when a booking session is confirmed.
// It carries enough for downstream consumers to log or notify without
// asking the API for the booking.
type BookingConfirmedEvent struct {
	BookingID   string   `json:"booking_id"`
	UserID      string   `json:"user_id"`
	EventID     string   `json:"event_id"`
	EventTitle  string   `json:"event_title"`
	Venue       string   `json:"venue"`
	StartsAt    string   `json:"starts_at"`
	SeatIDs     []string `json:"seats"`
	FoodItems   int      `json:"food_items"`
	TotalCents  int64    `json:"total_cents"`
	ConfirmedAt string   `json:"confirmed_at"`
}

// NewBookingConfirmedEvent builds the message for a booking owned by userID.
func NewBookingConfirmedEvent(userID string, b model.Booking) BookingConfirmedEvent {
	seats := make([]string, 0, len(b.Seats))
	for _, s := range b.Seats {
		seats = append(seats, s.ID)
	}
	food := 0
	for _, o := range b.FoodOrders {
		food += o.Quantity
	}
	return BookingConfirmedEvent{
		BookingID:   b.ID,
		UserID:      userID,
		EventID:     b.Event.ID,
		EventTitle:  b.Event.Title,
		Venue:       b.Event.Venue,
		StartsAt:    b.Event.StartsAt.UTC().Format(time.RFC3339),
		SeatIDs:     seats,
		FoodItems:   food,
		TotalCents:  int64(b.TotalCents),
		ConfirmedAt: b.BookedAt.UTC().Format(time.RFC3339),
	}
}
