// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/openjustice/crimetrack/internal/config"
	"github.com/openjustice/crimetrack/internal/handler"
	"github.com/openjustice/crimetrack/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check for load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register, login
// and the token exchanges live under /v1/auth without middleware; /v1/me
// requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, users middleware.UserResolver) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.GET("/verify", a.VerifyEmail)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access only mints a
	// new access token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret, users))
	auth.GET("/me", a.Me)
	// Unlike /auth/logout this needs an access token, not a refresh
	// token, and kills every session of the caller.
	auth.POST("/logout-all", a.LogoutAll)
}

// APIHandlers bundles the record-keeping handlers so RegisterAPI does
// not grow a parameter per resource.
type APIHandlers struct {
	Citizens      *handler.CitizenHandler
	Records       *handler.RecordHandler
	Victims       *handler.VictimHandler
	Arrests       *handler.ArrestHandler
	Notifications *handler.NotificationHandler
	Search        *handler.SearchHandler
}

// RegisterAPI wires the protected resource routes. Access is tiered:
// every authenticated role may read, STAFF and ADMIN may write, and
// only ADMIN may delete. The cross-entity search sits behind the
// response cache because it is the most expensive read.
func RegisterAPI(e *echo.Echo, h APIHandlers, cfg config.Config, rdb *redis.Client, users middleware.UserResolver) {
	jwt := middleware.JWTAuth(cfg.JWTSecret, users)

	read := e.Group("/v1", jwt, middleware.RequireRole(handler.RoleAdmin, handler.RoleStaff, handler.RoleViewer))
	write := e.Group("/v1", jwt, middleware.RequireRole(handler.RoleAdmin, handler.RoleStaff))
	del := e.Group("/v1", jwt, middleware.RequireRole(handler.RoleAdmin))

	// citizens and their passports
	read.GET("/citizens", h.Citizens.List)
	read.GET("/citizens/:id", h.Citizens.Get)
	read.GET("/citizens/:id/passports", h.Citizens.ListPassports)
	read.GET("/citizens/:id/photo", h.Citizens.GetPhoto)
	write.POST("/citizens", h.Citizens.Create)
	write.PATCH("/citizens/:id", h.Citizens.Update)
	write.POST("/citizens/:id/photo", h.Citizens.UploadPhoto)
	write.POST("/citizens/:id/passports", h.Citizens.CreatePassport)
	del.DELETE("/citizens/:id", h.Citizens.Delete)

	// criminal records and nested entities
	read.GET("/records", h.Records.List)
	read.GET("/records/:id", h.Records.Get)
	write.POST("/records", h.Records.Create)
	write.PATCH("/records/:id", h.Records.Update)
	del.DELETE("/records/:id", h.Records.Delete)

	read.GET("/victims", h.Victims.List)
	read.GET("/victims/:id", h.Victims.Get)
	write.POST("/victims", h.Victims.Create)
	write.PATCH("/victims/:id", h.Victims.Update)
	del.DELETE("/victims/:id", h.Victims.Delete)

	read.GET("/arrests", h.Arrests.List)
	read.GET("/arrests/:id", h.Arrests.Get)
	write.POST("/arrests", h.Arrests.Create)
	write.PATCH("/arrests/:id", h.Arrests.Update)
	del.DELETE("/arrests/:id", h.Arrests.Delete)

	// notifications
	read.GET("/notifications", h.Notifications.List)
	read.GET("/notifications/nearby", h.Notifications.Nearby)
	read.GET("/notifications/:id", h.Notifications.Get)
	write.POST("/notifications", h.Notifications.Create)
	del.DELETE("/notifications/:id", h.Notifications.Delete)

	// cross-entity search, cached when Redis is available
	cacheCfg := config.LoadCacheConfig()
	read.GET("/search", h.Search.Search, middleware.NewRedisCache(cacheCfg, rdb))
}

// RegisterAdmin wires the ADMIN-only user management endpoints under
// /v1/admin/users.
func RegisterAdmin(e *echo.Echo, a *handler.AdminUserHandler, cfg config.Config, users middleware.UserResolver) {
	g := e.Group("/v1/admin/users")
	g.Use(middleware.JWTAuth(cfg.JWTSecret, users))
	g.Use(middleware.RequireRole(handler.RoleAdmin))

	g.GET("", a.List)
	g.GET("/:id", a.Get)
	g.PATCH("/:id", a.Update)
	g.PATCH("/:id/approve", a.Approve)
	g.DELETE("/:id", a.Delete)
}
