package booking

import "github.com/iliyamo/matchday-tickets/internal/model"

// ServiceFeePercent is the fee shown on the confirmation screen.  It is
// never part of Total or of a stored booking.
const ServiceFeePercent = 5

// Total returns the sum of the selected seat prices and of every food
// line (unit price × quantity).
func (s *Store) Total() model.Cents {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.seats, s.food)
}

func total(seats []model.Seat, food []model.FoodOrder) model.Cents {
	return seatsTotal(seats) + foodTotal(food)
}

func seatsTotal(seats []model.Seat) model.Cents {
	var sum model.Cents
	for _, st := range seats {
		sum += st.PriceCents
	}
	return sum
}

func foodTotal(food []model.FoodOrder) model.Cents {
	var sum model.Cents
	for _, o := range food {
		sum += o.LineTotal()
	}
	return sum
}

// ServiceFee returns ServiceFeePercent of amount, rounded half up to the cent.
func ServiceFee(amount model.Cents) model.Cents {
	return (amount*ServiceFeePercent + 50) / 100
}

// Summary is the price breakdown shown before confirming.
type Summary struct {
	SeatCount       int         `json:"seat_count"`
	SeatsCents      model.Cents `json:"seats_cents"`
	FoodCents       model.Cents `json:"food_cents"`
	TotalCents      model.Cents `json:"total_cents"`
	ServiceFeeCents model.Cents `json:"service_fee_cents"`
	GrandTotalCents model.Cents `json:"grand_total_cents"`
}

// Summary computes the breakdown of the current selection.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := Summary{
		SeatCount:  len(s.seats),
		SeatsCents: seatsTotal(s.seats),
		FoodCents:  foodTotal(s.food),
	}
	sum.TotalCents = sum.SeatsCents + sum.FoodCents
	sum.ServiceFeeCents = ServiceFee(sum.TotalCents)
	sum.GrandTotalCents = sum.TotalCents + sum.ServiceFeeCents
	return sum
}
