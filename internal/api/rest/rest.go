package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/chartbot/crown-engine/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		community := v1.Group("/communities/:community_id")

		// Crown views (public read access)
		community.GET("/crowns", handler.ListCrowns)
		community.GET("/crowns/stolen", handler.ListStolenCrowns)
		community.GET("/crown-blocks", handler.ListCrownBlocks)
		community.GET("/crown-settings", handler.GetSettings)

		// Evaluation and maintenance (requires authentication)
		authed := community.Group("", middleware.Auth(authCfg))
		{
			authed.POST("/artists/:artist/evaluate", handler.EvaluateArtist)

			authed.POST("/crowns/seed", handler.SeedCommunity)
			authed.DELETE("/crowns/artist/:artist", handler.KillArtistCrowns)
			authed.POST("/crowns/kill-all", handler.KillAllCrowns)
			authed.POST("/crowns/kill-seeded", handler.KillSeededCrowns)
			authed.DELETE("/crowns/members/:member_id", handler.RemoveMemberCrowns)

			authed.PUT("/crown-blocks/:member_id", handler.BlockMember)
			authed.DELETE("/crown-blocks/:member_id", handler.UnblockMember)

			authed.PUT("/crown-settings", handler.UpdateSettings)
		}
	}
}
