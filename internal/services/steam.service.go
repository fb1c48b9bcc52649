package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"steamsize/internal/models"
	"strings"
	"time"
)

const DefaultSteamAPIBase = "https://api.steampowered.com"

const (
	resolveVanityPath = "/ISteamUser/ResolveVanityURL/v0001/"
	ownedGamesPath    = "/IPlayerService/GetOwnedGames/v0001/"
)

var (
	// ErrTransport means Steam could not be reached or answered with a non-2xx status
	ErrTransport = errors.New("steam api unreachable")
	// ErrMalformedResponse means the body did not decode into the expected shape
	ErrMalformedResponse = errors.New("malformed steam api response")
	// ErrNotResolved means Steam answered but knows no account by that vanity name
	ErrNotResolved = errors.New("vanity name not resolved")
	// ErrPrivateProfile means the owned-games payload carried no games collection
	ErrPrivateProfile = errors.New("games list unavailable, profile might be private")
)

// SteamClient talks to the Steam Web API on behalf of every request.
// It holds no per-request state.
type SteamClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewSteamClient creates a client. A zero timeout keeps the transport default.
func NewSteamClient(baseURL, apiKey string, timeout time.Duration) *SteamClient {
	if baseURL == "" {
		baseURL = DefaultSteamAPIBase
	}
	return &SteamClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// ResolveVanity returns Steam's raw resolution payload for a vanity name
func (s *SteamClient) ResolveVanity(ctx context.Context, vanity string) (*models.ResolveResponse, error) {
	log.Printf("[STEAM] Attempting to resolve vanity URL: %s", vanity)

	query := url.Values{}
	query.Set("key", s.apiKey)
	query.Set("vanityurl", vanity)

	resp, err := getJSON[models.ResolveResponse](ctx, s.http, s.baseURL+resolveVanityPath, query)
	if err == nil {
		switch {
		case resp.Response == nil:
			err = fmt.Errorf("%w: missing response object", ErrMalformedResponse)
		case resp.Response.Success == nil:
			err = fmt.Errorf("%w: missing success flag", ErrMalformedResponse)
		}
	}
	if err != nil {
		log.Printf("[STEAM] Resolve failed for %s: %v", vanity, err)
		return nil, err
	}

	log.Printf("[STEAM] Resolve response for %s: success=%d", vanity, *resp.Response.Success)
	return resp, nil
}

// Resolve turns a user-supplied identifier into a SteamID64. Numeric ids are
// returned as they are, anything else goes through ResolveVanity.
func (s *SteamClient) Resolve(ctx context.Context, input string) (string, error) {
	if IsSteamID64(input) {
		return input, nil
	}

	resp, err := s.ResolveVanity(ctx, input)
	if err != nil {
		return "", err
	}

	if *resp.Response.Success != 1 || resp.Response.SteamID == nil || *resp.Response.SteamID == "" {
		return "", fmt.Errorf("%w: %s", ErrNotResolved, input)
	}

	return *resp.Response.SteamID, nil
}

// FetchOwnedGamesResponse returns Steam's raw owned-games payload
func (s *SteamClient) FetchOwnedGamesResponse(ctx context.Context, steamID string) (*models.OwnedGamesResponse, error) {
	log.Printf("[STEAM] Attempting to get games for Steam ID: %s", steamID)

	query := url.Values{}
	query.Set("key", s.apiKey)
	query.Set("steamid", steamID)
	query.Set("format", "json")
	query.Set("include_appinfo", "true")

	resp, err := getJSON[models.OwnedGamesResponse](ctx, s.http, s.baseURL+ownedGamesPath, query)
	if err == nil && resp.Response == nil {
		err = fmt.Errorf("%w: missing response object", ErrMalformedResponse)
	}
	if err != nil {
		log.Printf("[STEAM] Owned games request failed for %s: %v", steamID, err)
		return nil, err
	}

	var count uint32
	if resp.Response.GameCount != nil {
		count = *resp.Response.GameCount
	}
	log.Printf("[STEAM] Owned games response for %s: %d games", steamID, count)
	return resp, nil
}

// FetchOwnedGames returns the owned games, or ErrPrivateProfile when Steam
// leaves out the games collection entirely. An empty collection is a valid
// empty library.
func (s *SteamClient) FetchOwnedGames(ctx context.Context, steamID string) ([]models.OwnedGame, error) {
	resp, err := s.FetchOwnedGamesResponse(ctx, steamID)
	if err != nil {
		return nil, err
	}

	if resp.Response.Games == nil {
		log.Printf("[STEAM] No games collection for %s - profile might be private", steamID)
		return nil, ErrPrivateProfile
	}

	return resp.Response.Games, nil
}

// KeyPreview returns the first characters of the API key for startup logs
func (s *SteamClient) KeyPreview() string {
	if len(s.apiKey) > 5 {
		return s.apiKey[:5] + "..."
	}
	return "..."
}

// getJSON performs a single GET and decodes the JSON body into T
func getJSON[T any](ctx context.Context, client *http.Client, endpoint string, query url.Values) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the API key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: HTTP %d", ErrTransport, resp.StatusCode)
	}

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &result, nil
}

// IsSteamID64 reports whether s is a 17-digit numeric account id
func IsSteamID64(s string) bool {
	if len(s) != 17 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
