// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-tickets/internal/handler"
	"github.com/iliyamo/matchday-tickets/internal/middleware"
	"github.com/iliyamo/matchday-tickets/internal/model"
)

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated catalog.  mw wraps every
// catalog route, typically the response cache.
func RegisterPublic(e *echo.Echo, h *handler.EventHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/events", h.ListEvents)
	g.GET("/events/featured", h.FeaturedEvents)
	g.GET("/events/:id", h.GetEvent)
	g.GET("/events/:id/seats", h.EventSeats)
	g.GET("/menu", h.ListMenu)
}

// RegisterAuth registers sign-in under /v1/auth and the profile routes,
// which need a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	signedIn := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin),
	}
	e.POST("/v1/auth/logout", a.Logout, signedIn...)
	e.GET("/v1/me", a.Me, signedIn...)
	e.PATCH("/v1/me", a.UpdateProfile, signedIn...)
}
