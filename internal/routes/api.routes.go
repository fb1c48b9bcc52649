package routes

import (
	"steamsize/internal/controllers"
	"steamsize/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAPIRoutes(r *gin.Engine, lc *controllers.LibraryController, limiter *middleware.RateLimiter) {
	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(limiter))
	{
		api.GET("/resolve", lc.ResolveVanityURL)
		api.GET("/games", lc.GetGames)
		api.GET("/calculate-size", lc.CalculateSize)
		api.GET("/library", lc.GetLibrary)
		api.GET("/status", lc.GetStatus)
	}
}
