package models

// ResolveResponse mirrors ISteamUser/ResolveVanityURL.
// Response is nil when Steam's body has no "response" object.
type ResolveResponse struct {
	Response *ResolveData `json:"response"`
}

type ResolveData struct {
	Success *uint8  `json:"success"`
	SteamID *string `json:"steamid"`
}

// OwnedGamesResponse mirrors IPlayerService/GetOwnedGames
type OwnedGamesResponse struct {
	Response *OwnedGamesData `json:"response"`
}

// OwnedGamesData holds the library. Games is nil when Steam omits the
// collection, which is how it reports a private profile.
type OwnedGamesData struct {
	GameCount *uint32     `json:"game_count"`
	Games     []OwnedGame `json:"games"`
}

type OwnedGame struct {
	AppID           uint64  `json:"appid"`
	Name            *string `json:"name"`
	PlaytimeForever *uint32 `json:"playtime_forever"`
}
