// Package router maps the back-office HTTP surface onto handlers and
// middleware. Everything except auth and the health check requires an
// authenticated ADMIN session.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rainditya/tutor-backoffice/internal/config"
	"github.com/rainditya/tutor-backoffice/internal/handler"
	"github.com/rainditya/tutor-backoffice/internal/middleware"
	"github.com/rainditya/tutor-backoffice/internal/model"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Tutors    *handler.TutorHandler
	Bookings  *handler.BookingHandler
	Dashboard *handler.DashboardHandler
}

// Register wires all routes. The login route carries the Redis token
// bucket so brute-force attempts surface as the rate-limited error
// class; dashboard reads sit behind the response cache.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login, limiter)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(cfg.JWTSecret))
	v1.Use(middleware.RequireRole(model.RoleAdmin))

	v1.GET("/me", h.Auth.Me)
	v1.POST("/auth/logout-all", h.Auth.LogoutAll)

	v1.GET("/tutors", h.Tutors.List)
	v1.GET("/tutors/active", h.Tutors.Active)
	v1.POST("/tutors", h.Tutors.Create)
	v1.PUT("/tutors/:id", h.Tutors.Update)
	v1.DELETE("/tutors/:id", h.Tutors.Delete)
	v1.POST("/tutors/bulk-delete", h.Tutors.BulkDelete)

	v1.GET("/bookings", h.Bookings.List)
	v1.GET("/bookings/upcoming", h.Bookings.Upcoming, cache)
	v1.GET("/bookings/weekly", h.Bookings.Weekly, cache)
	v1.POST("/bookings", h.Bookings.Create)
	v1.PUT("/bookings/:id", h.Bookings.Update)
	v1.DELETE("/bookings/:id", h.Bookings.Delete)

	v1.GET("/dashboard/stats", h.Dashboard.Stats, cache)
}
