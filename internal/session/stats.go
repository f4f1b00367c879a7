package session

import (
	"sort"

	"github.com/iliyamo/matchday-tickets/internal/model"
)

// RecentLimit is how many bookings Stats lists in RecentBookings.
const RecentLimit = 5

// RecentBooking is one booking on the dashboard feed, tagged with the
// user whose session holds it.
type RecentBooking struct {
	UserID  string        `json:"user_id"`
	Booking model.Booking `json:"booking"`
}

// Stats are the admin dashboard counters across all open sessions.
type Stats struct {
	TotalBookings  int             `json:"total_bookings"`
	RevenueCents   model.Cents     `json:"revenue_cents"`
	Cancellations  int             `json:"cancellations"`
	OpenSessions   int             `json:"open_sessions"`
	ActiveEvents   int             `json:"active_events"`
	RecentBookings []RecentBooking `json:"recent_bookings"`
}

// Stats sums the booking histories of every open session.  Revenue
// counts confirmed bookings only.  RecentBookings holds the newest
// RecentLimit bookings of any status.  ActiveEvents is left for the caller.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st := Stats{OpenSessions: len(r.stores)}
	var recent []RecentBooking
	for userID, s := range r.stores {
		for _, b := range s.History() {
			st.TotalBookings++
			switch b.Status {
			case model.BookingConfirmed:
				st.RevenueCents += b.TotalCents
			case model.BookingCancelled:
				st.Cancellations++
			}
			recent = append(recent, RecentBooking{UserID: userID, Booking: b})
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		bi, bj := recent[i].Booking, recent[j].Booking
		if !bi.BookedAt.Equal(bj.BookedAt) {
			return bi.BookedAt.After(bj.BookedAt)
		}
		return bi.ID > bj.ID
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	st.RecentBookings = append([]RecentBooking{}, recent...)
	return st
}
