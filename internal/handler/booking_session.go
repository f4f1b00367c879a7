package handler

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-tickets/internal/booking"
	"github.com/iliyamo/matchday-tickets/internal/catalog"
	"github.com/iliyamo/matchday-tickets/internal/clock"
	"github.com/iliyamo/matchday-tickets/internal/middleware"
	"github.com/iliyamo/matchday-tickets/internal/model"
	"github.com/iliyamo/matchday-tickets/internal/queue"
	"github.com/iliyamo/matchday-tickets/internal/session"
)

// BookingNotifier receives confirmed bookings.  Delivery is best effort.
type BookingNotifier interface {
	PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
}

// BookingHandler drives the booking session of the signed-in user and
// its booking history.  All methods assume JWTAuth ran before them.
type BookingHandler struct {
	Events   *catalog.Events
	Layouts  *catalog.Layouts
	Menu     *catalog.Menu
	Sessions *session.Registry
	Clock    clock.Clock
	Notifier BookingNotifier // nil disables publishing

	rngMu sync.Mutex
	rng   *rand.Rand
}

// BookingOption configures a BookingHandler.
type BookingOption func(*BookingHandler)

// WithHandlerClock sets the clock used to split upcoming and past bookings.
func WithHandlerClock(c clock.Clock) BookingOption {
	return func(h *BookingHandler) { h.Clock = c }
}

// WithNotifier publishes every confirmed booking to n.
func WithNotifier(n BookingNotifier) BookingOption {
	return func(h *BookingHandler) { h.Notifier = n }
}

// WithRand sets the source of the random seat pick.
func WithRand(rng *rand.Rand) BookingOption {
	return func(h *BookingHandler) { h.rng = rng }
}

func NewBookingHandler(events *catalog.Events, layouts *catalog.Layouts, menu *catalog.Menu, sessions *session.Registry, opts ...BookingOption) *BookingHandler {
	h := &BookingHandler{
		Events:   events,
		Layouts:  layouts,
		Menu:     menu,
		Sessions: sessions,
		Clock:    clock.NewSystem(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// store returns the open session of the caller.  A token that outlived
// its session (logout or restart) must sign in again.
func (h *BookingHandler) store(c echo.Context) (*booking.Store, bool) {
	return h.Sessions.Get(middleware.UserID(c))
}

func noSession(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no open session, sign in again"})
}

type sessionView struct {
	Event      *model.Event      `json:"event"`
	Seats      []model.Seat      `json:"seats"`
	FoodOrders []model.FoodOrder `json:"food_orders"`
	Summary    booking.Summary   `json:"summary"`
}

func viewOf(st *booking.Store) sessionView {
	v := sessionView{Seats: st.Seats(), FoodOrders: st.FoodOrders(), Summary: st.Summary()}
	if ev, ok := st.Event(); ok {
		v.Event = &ev
	}
	return v
}

// GetSession handles GET /v1/session.
func (h *BookingHandler) GetSession(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	return c.JSON(http.StatusOK, viewOf(st))
}

// SelectEvent handles POST /v1/session/event.  Choosing an event always
// clears the seats and food of the session.
func (h *BookingHandler) SelectEvent(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	var body struct {
		EventID string `json:"event_id"`
	}
	if err := c.Bind(&body); err != nil || body.EventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}
	ev, err := h.Events.Get(body.EventID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	if ev.Status != model.EventActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "event is not open for booking"})
	}
	st.SelectEvent(ev)
	return c.JSON(http.StatusOK, viewOf(st))
}

// ToggleSeat handles POST /v1/session/seats/:seat_id/toggle.  Selecting
// is refused for booked seats and beyond booking.MaxSeats; deselecting
// always succeeds.  The store rechecks the event under its own lock, so
// a concurrent SelectEvent turns into a conflict instead of a stray seat.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	ev, ok := st.Event()
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": booking.ErrNoEvent.Error()})
	}
	seat, ok := h.Layouts.Seat(ev.ID, c.Param("seat_id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	}
	selected, err := st.ToggleSeatFor(ev.ID, seat, booking.MaxSeats)
	switch {
	case errors.Is(err, booking.ErrSeatLimit):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "max_seats": booking.MaxSeats})
	case err != nil:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"seat_id": seat.ID, "selected": selected, "session": viewOf(st)})
}

// RandomSeats handles POST /v1/session/seats/random.  It replaces the
// selection with up to catalog.RandomPickSize available seats.
func (h *BookingHandler) RandomSeats(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	ev, ok := st.Event()
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": booking.ErrNoEvent.Error()})
	}
	h.rngMu.Lock()
	picked := catalog.RandomPick(h.Layouts.For(ev.ID), catalog.RandomPickSize, h.rng)
	h.rngMu.Unlock()

	if err := st.ReplaceSeats(ev.ID, picked); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, viewOf(st))
}

// ClearSeats handles DELETE /v1/session/seats.
func (h *BookingHandler) ClearSeats(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	st.ClearSeats()
	return c.JSON(http.StatusOK, viewOf(st))
}

// AddFood handles POST /v1/session/food.  Adding an item already in the
// order raises its quantity, up to booking.MaxFoodQuantity per line.
func (h *BookingHandler) AddFood(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	var body struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil || body.ItemID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id is required"})
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	if body.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}
	item, ok := h.Menu.Item(body.ItemID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
	}
	if body.Quantity > booking.MaxFoodQuantity || st.FoodQuantity(item.ID)+body.Quantity > booking.MaxFoodQuantity {
		return tooMuchFood(c)
	}
	st.AddFoodOrder(item, body.Quantity)
	return c.JSON(http.StatusOK, viewOf(st))
}

// UpdateFood handles PUT /v1/session/food/:item_id.  A quantity of zero
// or less removes the line; above booking.MaxFoodQuantity is refused.
func (h *BookingHandler) UpdateFood(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil || body.Quantity == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity is required"})
	}
	if *body.Quantity > booking.MaxFoodQuantity {
		return tooMuchFood(c)
	}
	st.UpdateFoodQuantity(c.Param("item_id"), *body.Quantity)
	return c.JSON(http.StatusOK, viewOf(st))
}

func tooMuchFood(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity too large", "max_quantity": booking.MaxFoodQuantity})
}

// RemoveFood handles DELETE /v1/session/food/:item_id.
func (h *BookingHandler) RemoveFood(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	st.RemoveFoodOrder(c.Param("item_id"))
	return c.JSON(http.StatusOK, viewOf(st))
}

// ClearFood handles DELETE /v1/session/food.
func (h *BookingHandler) ClearFood(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	st.ClearFoodOrders()
	return c.JSON(http.StatusOK, viewOf(st))
}

// Summary handles GET /v1/session/summary.
func (h *BookingHandler) Summary(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	return c.JSON(http.StatusOK, st.Summary())
}

// Confirm handles POST /v1/session/confirm.  It refuses to book without
// an event and a seat.  The booking is published in the background; a
// broker failure never fails the request.
func (h *BookingHandler) Confirm(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	if _, ok := st.Event(); !ok || len(st.Seats()) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrEmptySelection.Error(), "detail": "select an event and at least one seat"})
	}
	b := st.Confirm()
	if h.Notifier != nil {
		ev := queue.NewBookingConfirmedEvent(middleware.UserID(c), b)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.Notifier.PublishBookingConfirmed(ctx, ev); err != nil {
				log.Printf("booking: publish %s failed: %v", ev.BookingID, err)
			}
		}()
	}
	return c.JSON(http.StatusCreated, b)
}
