package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/courtsim/internal/api/handlers"
	"github.com/jstittsworth/courtsim/internal/api/middleware"
	"github.com/jstittsworth/courtsim/internal/providers"
	"github.com/jstittsworth/courtsim/internal/services"
	"github.com/jstittsworth/courtsim/pkg/config"
	"github.com/jstittsworth/courtsim/pkg/database"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, db *database.DB, cache *services.MatchCache, hub *services.LiveHub, provider providers.RosterProvider, cfg *config.Config) {
	matchHandler := handlers.NewMatchHandler(db, cache, hub, provider, cfg)

	group.GET("/teams", matchHandler.Teams)
	group.GET("/matches", matchHandler.List)
	group.GET("/matches/:id", matchHandler.Get)
	group.GET("/matches/:id/events", matchHandler.Events)

	// Simulations are CPU-bound, so they run behind the rate limiter.
	limited := group.Group("")
	limited.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		limited.POST("/simulate", matchHandler.Simulate)
	}
}
