package main

import (
	"log"
	"os"
	"steamsize/internal/config"
	"steamsize/internal/controllers"
	"steamsize/internal/middleware"
	"steamsize/internal/routes"
	"steamsize/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(os.Getenv("STEAMSIZE_CONFIG"))
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Loaded once, read-only from here on
	catalog := services.LoadSizeCatalog(cfg.CatalogPaths)
	log.Printf("Loaded %d game sizes", catalog.Len())

	steam := services.NewSteamClient(cfg.SteamAPIBase, cfg.SteamAPIKey, cfg.HTTPTimeout)
	log.Printf("Using Steam API key: %s", steam.KeyPreview())

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.LoadHTMLGlob(cfg.TemplatesGlob)
	routes.RegisterWebRoutes(r, cfg.StaticDir)

	lc := controllers.NewLibraryController(steam, catalog)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	routes.RegisterAPIRoutes(r, lc, limiter)

	log.Printf("Starting server at %s", cfg.Listen)
	if err := r.Run(cfg.Listen); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
