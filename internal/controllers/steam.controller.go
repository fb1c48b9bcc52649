package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"steamsize/internal/middleware"
	"steamsize/internal/models"
	"steamsize/internal/services"

	"github.com/gin-gonic/gin"
)

const privateProfileMessage = "Could not retrieve games list - profile might be private"

// SteamAPI is the part of services.SteamClient the handlers need
type SteamAPI interface {
	ResolveVanity(ctx context.Context, vanity string) (*models.ResolveResponse, error)
	Resolve(ctx context.Context, input string) (string, error)
	FetchOwnedGamesResponse(ctx context.Context, steamID string) (*models.OwnedGamesResponse, error)
	FetchOwnedGames(ctx context.Context, steamID string) ([]models.OwnedGame, error)
}

// LibraryController serves the /api endpoints. The catalog is shared
// read-only between all requests.
type LibraryController struct {
	steam     SteamAPI
	catalog   *services.SizeCatalog
	validator *middleware.InputValidator
}

func NewLibraryController(steam SteamAPI, catalog *services.SizeCatalog) *LibraryController {
	return &LibraryController{
		steam:     steam,
		catalog:   catalog,
		validator: middleware.NewInputValidator(),
	}
}

// ResolveVanityURL proxies Steam's vanity resolution and returns its payload
func (lc *LibraryController) ResolveVanityURL(c *gin.Context) {
	id, ok := lc.identifier(c)
	if !ok {
		return
	}

	resp, err := lc.steam.ResolveVanity(upstreamContext(c), id)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetGames proxies Steam's owned-games list and returns its payload
func (lc *LibraryController) GetGames(c *gin.Context) {
	id, ok := lc.identifier(c)
	if !ok {
		return
	}

	resp, err := lc.steam.FetchOwnedGamesResponse(upstreamContext(c), id)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CalculateSize fetches the library of a SteamID64 and aggregates its size
func (lc *LibraryController) CalculateSize(c *gin.Context) {
	id, ok := lc.identifier(c)
	if !ok {
		return
	}
	log.Printf("[API] %s calculating size for Steam ID: %s", requestID(c), id)
	lc.respondWithSize(c, id)
}

// GetLibrary runs the whole pipeline, resolving vanity names first
func (lc *LibraryController) GetLibrary(c *gin.Context) {
	input, ok := lc.identifier(c)
	if !ok {
		return
	}

	steamID, err := lc.steam.Resolve(upstreamContext(c), input)
	if err != nil {
		if errors.Is(err, services.ErrNotResolved) {
			c.String(http.StatusNotFound, "No Steam account found for %q", input)
			return
		}
		writeUpstreamError(c, err)
		return
	}

	log.Printf("[API] %s resolved %s to %s", requestID(c), input, steamID)
	lc.respondWithSize(c, steamID)
}

// GetStatus reports catalog and process health
func (lc *LibraryController) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, services.GetServiceStatus(lc.catalog))
}

func (lc *LibraryController) respondWithSize(c *gin.Context, steamID string) {
	games, err := lc.steam.FetchOwnedGames(upstreamContext(c), steamID)
	if err != nil {
		if errors.Is(err, services.ErrPrivateProfile) {
			c.String(http.StatusBadRequest, privateProfileMessage)
			return
		}
		writeUpstreamError(c, err)
		return
	}

	result := services.Aggregate(games, lc.catalog)
	log.Printf("[API] %s returning %s: %d sized games out of %d total games",
		requestID(c), result.TotalSizeDisplay, len(result.Games), result.TotalGames)
	c.JSON(http.StatusOK, result)
}

// identifier reads and validates the id query parameter, answering 400 itself
// when it is unusable.
func (lc *LibraryController) identifier(c *gin.Context) (string, bool) {
	id := c.Query("id")
	if id == "" {
		c.String(http.StatusBadRequest, "Missing required query parameter: id")
		return "", false
	}
	if !lc.validator.ValidateIdentifier(id) {
		log.Printf("[SECURITY] %s rejected identifier from %s", requestID(c), c.ClientIP())
		c.String(http.StatusBadRequest, "Invalid Steam identifier")
		return "", false
	}
	return id, true
}

// writeUpstreamError answers 500 with a plain-text diagnostic
func writeUpstreamError(c *gin.Context, err error) {
	var msg string
	switch {
	case errors.Is(err, services.ErrMalformedResponse):
		msg = fmt.Sprintf("Failed to parse Steam API response: %v", err)
	default:
		msg = fmt.Sprintf("Failed to contact Steam API: %v", err)
	}
	log.Printf("[API] %s %s", requestID(c), msg)
	c.String(http.StatusInternalServerError, "%s", msg)
}

// upstreamContext keeps request values but not cancellation, so a Steam call
// that has started always runs to completion.
func upstreamContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func requestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}
