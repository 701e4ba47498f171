package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/giveawayhq/sweepstakes-backend/internal/config"
	"github.com/giveawayhq/sweepstakes-backend/internal/handlers"
	"github.com/giveawayhq/sweepstakes-backend/internal/middleware"
)

// HandlerDependencies bundles the handlers the router needs
type HandlerDependencies struct {
	AuthHandler        *handlers.AuthHandler
	ParticipantHandler *handlers.ParticipantHandler
	DrawSessionHandler *handlers.DrawSessionHandler
	WinnerHandler      *handlers.WinnerHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Admin routes
		admins := protected.Group("/admins")
		{
			admins.POST("", deps.AuthHandler.CreateAdmin)
		}

		// Participant roster routes
		participants := protected.Group("/participants")
		{
			participants.GET("", deps.ParticipantHandler.GetParticipants)
			participants.GET("/count", deps.ParticipantHandler.GetParticipantCount)
			participants.GET("/:id", deps.ParticipantHandler.GetParticipantByID)
			participants.POST("", deps.ParticipantHandler.CreateParticipant)
			participants.POST("/import", deps.ParticipantHandler.ImportRoster)
			participants.PUT("/:id", deps.ParticipantHandler.UpdateParticipant)
			participants.DELETE("/:id", deps.ParticipantHandler.DeleteParticipant)
		}

		// Live draw session routes
		sessions := protected.Group("/draw-sessions")
		{
			sessions.POST("", deps.DrawSessionHandler.CreateSession)
			sessions.GET("/:id", deps.DrawSessionHandler.GetSession)
			sessions.GET("/:id/audit", deps.DrawSessionHandler.GetAudit)
			sessions.POST("/:id/configure", deps.DrawSessionHandler.Configure)
			sessions.POST("/:id/draw", deps.DrawSessionHandler.ExecuteDraw)
			sessions.POST("/:id/confirm-all", deps.DrawSessionHandler.ConfirmAll)
			sessions.POST("/:id/confirm-partial", deps.DrawSessionHandler.ConfirmPartial)
			sessions.POST("/:id/view", deps.DrawSessionHandler.ChangeView)
			sessions.POST("/:id/reopen", deps.DrawSessionHandler.Reopen)
			sessions.POST("/:id/finalize", deps.DrawSessionHandler.Finalize)
			sessions.DELETE("/:id", deps.DrawSessionHandler.Discard)

			sessions.POST("/:id/slots/:position/reroll", deps.DrawSessionHandler.RollSlot)
			sessions.POST("/:id/slots/:position/manual", deps.DrawSessionHandler.ManualAssign)
			sessions.POST("/:id/slots/:position/confirm", deps.DrawSessionHandler.ConfirmSlot)
			sessions.POST("/:id/slots/:position/remove", deps.DrawSessionHandler.RemoveConfirmed)
			sessions.POST("/:id/slots/:position/claim-status", deps.DrawSessionHandler.UpdateClaimStatus)
		}

		// Finalized draw routes
		draws := protected.Group("/draws")
		{
			draws.GET("", deps.WinnerHandler.GetDrawRecords)
			draws.GET("/:id", deps.WinnerHandler.GetDrawRecordByID)
			draws.GET("/:id/winners", deps.WinnerHandler.GetWinnersByDrawID)
			draws.GET("/:id/audit", deps.WinnerHandler.GetAuditTrail)
		}

		// Finalized winner routes
		winners := protected.Group("/winners")
		{
			winners.GET("", deps.WinnerHandler.GetWinnersByClaimStatus)
			winners.PUT("/:id/claim-status", deps.WinnerHandler.UpdateWinnerClaimStatus)
		}
	}

	return router
}
