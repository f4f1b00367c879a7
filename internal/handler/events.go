package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-tickets/internal/catalog"
	"github.com/iliyamo/matchday-tickets/internal/model"
)

// EventHandler serves the public catalog: events, seat maps and the menu.
type EventHandler struct {
	Events  *catalog.Events
	Layouts *catalog.Layouts
	Menu    *catalog.Menu
}

func NewEventHandler(events *catalog.Events, layouts *catalog.Layouts, menu *catalog.Menu) *EventHandler {
	return &EventHandler{Events: events, Layouts: layouts, Menu: menu}
}

// ListEvents handles GET /v1/events?q=&category=.  Only active events
// are listed.
func (h *EventHandler) ListEvents(c echo.Context) error {
	events := h.Events.List(catalog.Filter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Status:   model.EventActive,
	})
	return c.JSON(http.StatusOK, echo.Map{"items": events, "count": len(events)})
}

// FeaturedEvents handles GET /v1/events/featured.
func (h *EventHandler) FeaturedEvents(c echo.Context) error {
	events := h.Events.Featured()
	return c.JSON(http.StatusOK, echo.Map{"items": events, "count": len(events)})
}

// GetEvent handles GET /v1/events/:id.
func (h *EventHandler) GetEvent(c echo.Context) error {
	ev, err := h.Events.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	return c.JSON(http.StatusOK, ev)
}

// EventSeats handles GET /v1/events/:id/seats and returns the seat map
// grouped by row.
func (h *EventHandler) EventSeats(c echo.Context) error {
	ev, err := h.Events.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	seats := h.Layouts.For(ev.ID)
	available := 0
	for _, s := range seats {
		if s.Available() {
			available++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id":  ev.ID,
		"rows":      catalog.GroupByRow(seats),
		"total":     len(seats),
		"available": available,
	})
}

// ListMenu handles GET /v1/menu?category=.
func (h *EventHandler) ListMenu(c echo.Context) error {
	items := h.Menu.Items(c.QueryParam("category"))
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}
