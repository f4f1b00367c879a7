package model

import "time"

// BookingStatus is the lifecycle state of a booking record.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a snapshot of a confirmed booking session.  Apart from
// Status, which can flip to cancelled, a booking never changes after
// it has been created.
//
// Fields:
//  ID         – unique booking identifier.
//  Event      – the event that was booked.
//  Seats      – seats selected at confirmation time, in selection order.
//  FoodOrders – food lines at confirmation time.
//  TotalCents – seats plus food, without the service fee.
//  BookedAt   – creation timestamp.
//  Status     – confirmed or cancelled.
type Booking struct {
	ID         string        `json:"id"`
	Event      Event         `json:"event"`
	Seats      []Seat        `json:"seats"`
	FoodOrders []FoodOrder   `json:"food_orders"`
	TotalCents Cents         `json:"total_cents"`
	BookedAt   time.Time     `json:"booked_at"`
	Status     BookingStatus `json:"status"`
}
