package model

// SeatCategory is the pricing section a seat belongs to.
type SeatCategory string

const (
	CategoryVIP      SeatCategory = "VIP"
	CategoryRingside SeatCategory = "Ringside"
	CategoryNormal   SeatCategory = "Normal"
	CategoryEndStand SeatCategory = "End Stand"
)

// SeatStatus tells whether a seat can still be picked.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
)

// Seat describes one addressable position in a venue layout.  Seats
// are identified by the row label concatenated with the seat number
// (e.g. "A1", "F3"), which is unique inside one generated layout.
//
// Fields:
//  ID         – row label + seat number.
//  Row        – row label (A, B, ...).
//  Number     – 1-based seat number within the row.
//  Category   – pricing section (VIP, Ringside, Normal, End Stand).
//  PriceCents – unit price of the seat.
//  Status     – available or booked; fixed at generation time.
type Seat struct {
	ID         string       `json:"id"`
	Row        string       `json:"row"`
	Number     int          `json:"number"`
	Category   SeatCategory `json:"category"`
	PriceCents Cents        `json:"price_cents"`
	Status     SeatStatus   `json:"status"`
}

// Available reports whether the seat may be selected.
func (s Seat) Available() bool { return s.Status == SeatAvailable }
