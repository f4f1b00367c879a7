package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-tickets/internal/handler"
	"github.com/iliyamo/matchday-tickets/internal/middleware"
	"github.com/iliyamo/matchday-tickets/internal/model"
)

// RegisterBooking registers the booking session and history routes.  Any
// signed-in role may book.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin),
	)

	g.GET("/session", h.GetSession)
	g.POST("/session/event", h.SelectEvent)
	g.POST("/session/seats/:seat_id/toggle", h.ToggleSeat)
	g.POST("/session/seats/random", h.RandomSeats)
	g.DELETE("/session/seats", h.ClearSeats)
	g.POST("/session/food", h.AddFood)
	g.PUT("/session/food/:item_id", h.UpdateFood)
	g.DELETE("/session/food/:item_id", h.RemoveFood)
	g.DELETE("/session/food", h.ClearFood)
	g.GET("/session/summary", h.Summary)
	g.POST("/session/confirm", h.Confirm)

	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.POST("/bookings/:id/cancel", h.CancelBooking)
	g.GET("/bookings/:id/ticket.pdf", h.TicketPDF)
}
