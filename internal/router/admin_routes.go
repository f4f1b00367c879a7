package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-tickets/internal/handler"
	"github.com/iliyamo/matchday-tickets/internal/middleware"
	"github.com/iliyamo/matchday-tickets/internal/model"
)

// RegisterAdmin registers the admin routes under /v1/admin.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/events", h.ListEvents)
	g.POST("/events", h.CreateEvent)
	g.DELETE("/events/:id", h.DeleteEvent)
}
