package handler

import (
	"bytes"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-tickets/internal/booking"
	"github.com/iliyamo/matchday-tickets/internal/ticket"
)

// ListBookings handles GET /v1/bookings?tab=upcoming|past|cancelled.
// Without a tab the whole history is returned, most recent first.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	tab := booking.Tab(c.QueryParam("tab"))
	switch tab {
	case "", booking.TabUpcoming, booking.TabPast, booking.TabCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tab must be upcoming, past or cancelled"})
	}
	items := st.Filter(tab, h.Clock.Now())
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// GetBooking handles GET /v1/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	b, ok := st.Find(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, b)
}

// CancelBooking handles POST /v1/bookings/:id/cancel.  Cancelling twice
// is allowed and leaves the booking cancelled.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	id := c.Param("id")
	if !st.Cancel(id) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	b, _ := st.Find(id)
	return c.JSON(http.StatusOK, b)
}

// TicketPDF handles GET /v1/bookings/:id/ticket.pdf.
func (h *BookingHandler) TicketPDF(c echo.Context) error {
	st, ok := h.store(c)
	if !ok {
		return noSession(c)
	}
	b, ok := st.Find(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	var buf bytes.Buffer
	if err := ticket.Render(&buf, b); err != nil {
		log.Printf("ticket: render %s failed: %v", b.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render ticket failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="ticket-`+b.ID+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
