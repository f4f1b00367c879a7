package model

import "time"

// EventStatus is the publication state of an event as seen by admins.
type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventDraft     EventStatus = "draft"
	EventCancelled EventStatus = "cancelled"
)

// Event represents a bookable occasion (a match or a show) held at a
// venue.  An event is treated as immutable once it has been selected
// for a booking session; the booking keeps its own copy.
//
// Fields:
//  ID             – identifier of the event.
//  Title          – display title.
//  Venue          – venue name.
//  StartsAt       – date and time the event starts.
//  Category       – sport or show category (Football, Wrestling, ...).
//  MinPriceCents  – cheapest ticket.
//  MaxPriceCents  – most expensive ticket.
//  TotalSeats     – venue capacity.
//  AvailableSeats – seats still on sale (informational only).
//  Featured       – shown in the featured carousel.
//  Status         – active, draft or cancelled.
type Event struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Venue          string      `json:"venue"`
	StartsAt       time.Time   `json:"starts_at"`
	Category       string      `json:"category"`
	MinPriceCents  Cents       `json:"min_price_cents"`
	MaxPriceCents  Cents       `json:"max_price_cents"`
	TotalSeats     int         `json:"total_seats"`
	AvailableSeats int         `json:"available_seats"`
	Featured       bool        `json:"featured"`
	Status         EventStatus `json:"status"`
}
