package steamprovider

import (
	"context"
	"fmt"

	"github.com/Amund211/dotaprofile/internal/config"
	"github.com/Amund211/dotaprofile/internal/constants"
	"github.com/Amund211/dotaprofile/internal/domain"
	"github.com/Amund211/dotaprofile/internal/jsontree"
)

type mockedSteamProvider struct{}

func (m *mockedSteamProvider) GetPlayerSummary(ctx context.Context, steamID64 uint64) (domain.SteamSummary, error) {
	tree, err := jsontree.Parse(fmt.Appendf(nil, `{
		"steamid": "%d",
		"communityvisibilitystate": 3,
		"profilestate": 1,
		"personaname": "mocked persona"
	}`, steamID64))
	if err != nil {
		return domain.SteamSummary{}, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	return domain.NewSteamSummary(tree)
}

func (m *mockedSteamProvider) GetFriendCount(ctx context.Context, steamID64 uint64) (int, error) {
	return 42, nil
}

// NewSteamProviderOrMock returns a Steam Web API client, or a mock in development when no key is configured
func NewSteamProviderOrMock(config config.Config, httpClient HttpClient) (SteamProvider, error) {
	if config.SteamAPIKey() != "" {
		steam, err := NewSteam(httpClient, constants.STEAM_API_URL, config.SteamAPIKey())
		if err != nil {
			return nil, err
		}
		return steam, nil
	}
	if config.IsDevelopment() {
		return &mockedSteamProvider{}, nil
	}
	return nil, fmt.Errorf("Missing Steam API key in non-development environment")
}
