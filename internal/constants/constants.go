package constants

import "time"

const USER_AGENT = "dotaprofile/0.1.0 (+https://github.com/Amund211/dotaprofile)"

const (
	STRATZ_API_URL = "https://api.stratz.com/graphql"
	STEAM_API_URL  = "https://api.steampowered.com"
)

const DEFAULT_REQUEST_TIMEOUT = 10 * time.Second
