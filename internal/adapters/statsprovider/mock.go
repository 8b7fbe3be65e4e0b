package statsprovider

import (
	"context"
	"fmt"

	"github.com/Amund211/dotaprofile/internal/config"
	"github.com/Amund211/dotaprofile/internal/constants"
	"github.com/Amund211/dotaprofile/internal/domain"
	"github.com/Amund211/dotaprofile/internal/jsontree"
)

type mockedStatsProvider struct{}

func (m *mockedStatsProvider) GetPlayer(ctx context.Context, accountID domain.AccountID) (domain.PlayerStats, error) {
	tree, err := jsontree.Parse(fmt.Appendf(nil, `{
		"steamAccountId": %d,
		"matchCount": 100,
		"winCount": 55,
		"names": [],
		"ranks": [],
		"steamAccount": {
			"name": "mocked player %d",
			"isAnonymous": false,
			"isStratzAnonymous": false,
			"seasonRank": 63,
			"smurfFlag": 0,
			"dotaAccountLevel": 30,
			"communityVisibleState": 3
		}
	}`, uint32(accountID), uint32(accountID)))
	if err != nil {
		return domain.PlayerStats{}, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	return domain.NewPlayerStats(tree)
}

// NewStatsProviderOrMock returns a STRATZ client, or a mock in development when no token is configured
func NewStatsProviderOrMock(config config.Config, httpClient HttpClient) (StatsProvider, error) {
	if config.StratzAPIToken() != "" {
		stratz, err := NewStratz(httpClient, constants.STRATZ_API_URL, config.StratzAPIToken())
		if err != nil {
			return nil, err
		}
		return stratz, nil
	}
	if config.IsDevelopment() {
		return &mockedStatsProvider{}, nil
	}
	return nil, fmt.Errorf("Missing STRATZ API token in non-development environment")
}
