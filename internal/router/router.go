// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/seatly/desk-reservation/internal/config"
	"github.com/seatly/desk-reservation/internal/handler"
	"github.com/seatly/desk-reservation/internal/middleware"
)

// RegisterRoutes registers unauthenticated system routes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints.  Register, login and refresh
// live under /v1/auth without a session; me and logout require a valid
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout", a.Logout)
}

// RegisterDesks registers desk administration and the booking endpoints.
// Everything here requires a valid access token; the availability GET
// additionally sits behind the Redis response cache.
func RegisterDesks(e *echo.Echo, d *handler.DeskHandler, b *handler.BookingHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	auth.POST("/desks", d.CreateDesk)
	auth.GET("/desks", d.ListDesks)

	auth.POST("/desks/:id/bookings", b.CreateBooking)
	auth.GET("/desks/:id/availability", b.GetAvailability, middleware.NewResponseCache(cacheCfg, rdb))

	auth.GET("/my-bookings", b.MyBookings)
}
