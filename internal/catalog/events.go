package catalog

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/matchday-tickets/internal/model"
)

var (
	// ErrEventNotFound is returned when no event has the requested id.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidEvent is returned by Add for events without a title, venue or date.
	ErrInvalidEvent = errors.New("invalid event")
)

// Filter narrows List.  Empty fields match everything; Category "all"
// also matches everything.
type Filter struct {
	Query    string            // substring of title or venue, case-insensitive
	Category string            // substring of the lower-cased category
	Status   model.EventStatus // exact status
}

func (f Filter) match(e model.Event) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(e.Title), q) && !strings.Contains(strings.ToLower(e.Venue), q) {
			return false
		}
	}
	if c := strings.ToLower(strings.TrimSpace(f.Category)); c != "" && c != "all" {
		if !strings.Contains(strings.ToLower(e.Category), c) {
			return false
		}
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}

// Events is the in-memory event list.  It starts with the mock events
// and lets admins add or remove entries.
type Events struct {
	mu     sync.RWMutex
	events []model.Event
}

// NewEvents returns a catalog holding a copy of events.
func NewEvents(events []model.Event) *Events {
	cp := make([]model.Event, len(events))
	copy(cp, events)
	return &Events{events: cp}
}

// List returns the events matching f in catalog order.
func (c *Events) List(f Filter) []model.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Event, 0, len(c.events))
	for _, e := range c.events {
		if f.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Featured returns active events flagged as featured.
func (c *Events) Featured() []model.Event {
	out := []model.Event{}
	for _, e := range c.List(Filter{Status: model.EventActive}) {
		if e.Featured {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the event with the given id.
func (c *Events) Get(id string) (model.Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.events {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Event{}, ErrEventNotFound
}

// Add appends e under a freshly generated id and returns the stored event.
// Events without a status are stored as drafts.
func (c *Events) Add(e model.Event) (model.Event, error) {
	if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Venue) == "" || e.StartsAt.IsZero() {
		return model.Event{}, ErrInvalidEvent
	}
	e.ID = uuid.NewString()
	if e.Status == "" {
		e.Status = model.EventDraft
	}
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
	return e, nil
}

// Delete removes the event with the given id.
func (c *Events) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.events {
		if e.ID == id {
			c.events = append(c.events[:i], c.events[i+1:]...)
			return nil
		}
	}
	return ErrEventNotFound
}

// Count returns the number of events with status st.
func (c *Events) Count(st model.EventStatus) int {
	return len(c.List(Filter{Status: st}))
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// MockEvents returns the event list the app ships with.
func MockEvents() []model.Event {
	return []model.Event{
		{
			ID: "1", Title: "Premier League: Manchester United vs Liverpool", Venue: "Old Trafford Stadium",
			StartsAt: at("2026-02-15T15:00:00"), Category: "Football",
			MinPriceCents: model.Dollars(45), MaxPriceCents: model.Dollars(250),
			AvailableSeats: 1250, TotalSeats: 75000, Featured: true, Status: model.EventActive,
		},
		{
			ID: "2", Title: "Championship Wrestling Night", Venue: "Madison Square Garden",
			StartsAt: at("2026-02-20T19:30:00"), Category: "Wrestling",
			MinPriceCents: model.Dollars(35), MaxPriceCents: model.Dollars(500),
			AvailableSeats: 890, TotalSeats: 20000, Status: model.EventActive,
		},
		{
			ID: "3", Title: "NBA Finals Game 7", Venue: "Staples Center",
			StartsAt: at("2026-02-22T20:00:00"), Category: "Basketball",
			MinPriceCents: model.Dollars(150), MaxPriceCents: model.Dollars(1500),
			AvailableSeats: 340, TotalSeats: 19000, Featured: true, Status: model.EventActive,
		},
		{
			ID: "4", Title: "World Cup Qualifier: USA vs Mexico", Venue: "AT&T Stadium",
			StartsAt: at("2026-02-25T18:00:00"), Category: "Football",
			MinPriceCents: model.Dollars(55), MaxPriceCents: model.Dollars(300),
			AvailableSeats: 5600, TotalSeats: 80000, Status: model.EventActive,
		},
		{
			ID: "5", Title: "Super Bowl LX", Venue: "SoFi Stadium",
			StartsAt: at("2026-03-01T18:30:00"), Category: "American Football",
			MinPriceCents: model.Dollars(500), MaxPriceCents: model.Dollars(10000),
			AvailableSeats: 2100, TotalSeats: 70000, Featured: true, Status: model.EventActive,
		},
	}
}
