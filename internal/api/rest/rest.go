package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-ownership/internal/api/middleware"
	"github.com/feral-file/ff-ownership/internal/ratelimit"
)

// SetupRoutes configures all REST API routes.
// Reads are public, mutations need an authenticated caller and are throttled per caller.
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator, limiter ratelimit.Limiter) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	requireAuth := middleware.RequireCaller()
	throttle := middleware.RateLimit(limiter)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(auth))
	{
		v1.GET("/contribution-types", handler.ListContributionTypes)
		v1.GET("/me/claims", requireAuth, handler.ListMyClaims)

		assets := v1.Group("/assets/:asset_id")
		{
			// Ownership
			assets.GET("/ownership", handler.GetOwnership)
			assets.GET("/ownership/history", handler.GetOwnershipHistory)
			assets.POST("/ownership", requireAuth, throttle, handler.DirectClaim)
			assets.GET("/can-edit", handler.CanEdit)
			assets.POST("/transfer", requireAuth, throttle, handler.TransferOwnership)
			assets.POST("/release", requireAuth, throttle, handler.ReleaseOwnership)

			// Claims
			assets.POST("/claims", requireAuth, throttle, handler.ClaimOwnership)
			assets.GET("/claims", handler.ListClaims)
			assets.GET("/claims/:claim_id", handler.GetClaim)
			assets.POST("/claims/:claim_id/approve", requireAuth, throttle, handler.ApproveClaim)
			assets.POST("/claims/:claim_id/deny", requireAuth, throttle, handler.DenyClaim)
			assets.POST("/claims/:claim_id/cancel", requireAuth, throttle, handler.CancelClaim)

			// Contributions
			assets.POST("/contributions", requireAuth, throttle, handler.RecordContribution)
			assets.GET("/contributions", handler.ListContributions)
			assets.GET("/contributors/top", handler.GetTopContributors)
			assets.GET("/contributors/:user_id/score", handler.GetContributionScore)
		}
	}
}
