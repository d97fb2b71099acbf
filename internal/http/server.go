// Package http registers the API routes and delegates to module services.
package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"quickbite/internal/config"
	"quickbite/internal/http/handlers"
	"quickbite/internal/http/middleware"
	"quickbite/internal/infra"
	"quickbite/internal/modules/dispatch"
	"quickbite/internal/modules/notify"
	"quickbite/internal/modules/ordersync"
	"quickbite/internal/modules/presence"
	"quickbite/internal/modules/routes"
	"quickbite/internal/modules/userloc"
	"quickbite/internal/modules/zone"
)

type ServerDeps struct {
	Presence    *presence.Service
	Dispatch    *dispatch.Service
	Sync        *ordersync.Service
	Routes      *routes.Service
	Zones       *zone.Service
	UserLoc     *userloc.Service
	Notify      *notify.Service
	Verifier    infra.TokenVerifier
	DispatchCfg config.DispatchConfig
}

// NewRouter builds the gin engine with the full API surface.
func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "OK")
	})

	zoneHandler := handlers.NewZoneHandler(deps.Zones)
	r.GET("/api/zones/serviceable", zoneHandler.Serviceable)

	api := r.Group("/api", middleware.Auth(deps.Verifier))

	presenceHandler := handlers.NewPresenceHandler(deps.Presence, deps.Notify)
	api.POST("/partners/:id/presence", presenceHandler.Heartbeat)
	api.POST("/partners/:id/push-token", presenceHandler.RegisterToken)

	dispatchHandler := handlers.NewDispatchHandler(deps.Dispatch, deps.DispatchCfg)
	api.POST("/dispatch/nearest", dispatchHandler.Nearest)
	api.GET("/partners/nearby", dispatchHandler.Nearby)

	orderHandler := handlers.NewOrderHandler(deps.Sync, deps.Routes, deps.Notify)
	api.POST("/orders/:id/assignment", orderHandler.Assign)
	api.POST("/orders/:id/location", orderHandler.LiveLocation)
	api.GET("/orders/:id", orderHandler.Get)
	api.DELETE("/orders/:id", orderHandler.Remove)

	userHandler := handlers.NewUserHandler(deps.UserLoc)
	api.PUT("/users/:id/location", userHandler.SetLocation)

	return r
}
