package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-tickets/internal/catalog"
	"github.com/iliyamo/matchday-tickets/internal/model"
	"github.com/iliyamo/matchday-tickets/internal/session"
)

// AdminHandler serves the admin dashboard and event management.  Routes
// are gated by RequireRole(admin).
type AdminHandler struct {
	Events   *catalog.Events
	Layouts  *catalog.Layouts
	Sessions *session.Registry
}

func NewAdminHandler(events *catalog.Events, layouts *catalog.Layouts, sessions *session.Registry) *AdminHandler {
	return &AdminHandler{Events: events, Layouts: layouts, Sessions: sessions}
}

// Dashboard handles GET /v1/admin/dashboard.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	st := h.Sessions.Stats()
	st.ActiveEvents = h.Events.Count(model.EventActive)
	return c.JSON(http.StatusOK, st)
}

func validStatus(s model.EventStatus) bool {
	switch s {
	case "", model.EventActive, model.EventDraft, model.EventCancelled:
		return true
	}
	return false
}

// ListEvents handles GET /v1/admin/events?status=&q=.  Unlike the public
// list it includes drafts and cancelled events.
func (h *AdminHandler) ListEvents(c echo.Context) error {
	status := model.EventStatus(c.QueryParam("status"))
	if status == "all" {
		status = ""
	}
	if !validStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	events := h.Events.List(catalog.Filter{Query: c.QueryParam("q"), Status: status})
	return c.JSON(http.StatusOK, echo.Map{"items": events, "count": len(events)})
}

// CreateEvent handles POST /v1/admin/events.  New events default to draft.
func (h *AdminHandler) CreateEvent(c echo.Context) error {
	var req model.Event
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !validStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if req.MinPriceCents < 0 || req.MaxPriceCents < req.MinPriceCents {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price range"})
	}
	ev, err := h.Events.Add(req)
	if errors.Is(err, catalog.ErrInvalidEvent) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, venue and starts_at are required"})
	}
	return c.JSON(http.StatusCreated, ev)
}

// DeleteEvent handles DELETE /v1/admin/events/:id.  Bookings already
// confirmed keep their copy of the event.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	id := c.Param("id")
	if err := h.Events.Delete(id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	h.Layouts.Forget(id)
	return c.NoContent(http.StatusNoContent)
}
