package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/matchday-tickets/internal/auth"
	"github.com/iliyamo/matchday-tickets/internal/catalog"
	"github.com/iliyamo/matchday-tickets/internal/config"
	"github.com/iliyamo/matchday-tickets/internal/handler"
	"github.com/iliyamo/matchday-tickets/internal/kv"
	"github.com/iliyamo/matchday-tickets/internal/middleware"
	"github.com/iliyamo/matchday-tickets/internal/session"
)

// Deps are the long-lived services behind the API.  Redis may be nil,
// which disables caching and rate limiting.
type Deps struct {
	Users       kv.Store
	Events      *catalog.Events
	Layouts     *catalog.Layouts
	Menu        *catalog.Menu
	Sessions    *session.Registry
	Redis       *redis.Client
	Cache       config.CacheConfig
	RateLimit   config.RateLimitConfig
	AuthOpts    []auth.Option
	BookingOpts []handler.BookingOption
}

// New returns an Echo instance with every route registered.
func New(cfg config.Config, d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	if cfg.Env != "test" {
		e.Use(echomw.Logger())
	}
	e.Use(middleware.NewTokenBucket(d.RateLimit, d.Redis))

	RegisterRoutes(e)
	RegisterPublic(e, handler.NewEventHandler(d.Events, d.Layouts, d.Menu), middleware.NewRedisCache(d.Cache, d.Redis))
	RegisterAuth(e, handler.NewAuthHandler(cfg, d.Users, d.Sessions, d.AuthOpts...), cfg.JWTSecret)
	RegisterBooking(e, handler.NewBookingHandler(d.Events, d.Layouts, d.Menu, d.Sessions, d.BookingOpts...), cfg.JWTSecret)
	RegisterAdmin(e, handler.NewAdminHandler(d.Events, d.Layouts, d.Sessions), cfg.JWTSecret)
	return e
}
