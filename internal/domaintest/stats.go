package domaintest

import (
	"maps"

	"github.com/Amund211/dotaprofile/internal/domain"
	"github.com/Amund211/dotaprofile/internal/jsontree"
)

type statsBuilder struct {
	player       map[string]any
	steamAccount map[string]any
}

func (sb *statsBuilder) WithMatches(matchCount, winCount int) *statsBuilder {
	sb.player["matchCount"] = matchCount
	sb.player["winCount"] = winCount
	return sb
}

// WithSeasonRank sets steamAccount.seasonRank. nil encodes an explicit null.
func (sb *statsBuilder) WithSeasonRank(rank *int) *statsBuilder {
	if rank == nil {
		sb.steamAccount["seasonRank"] = nil
		return sb
	}
	sb.steamAccount["seasonRank"] = *rank
	return sb
}

func (sb *statsBuilder) WithCommunityVisibleState(state int) *statsBuilder {
	sb.steamAccount["communityVisibleState"] = state
	return sb
}

func (sb *statsBuilder) WithSmurfFlag(flag int) *statsBuilder {
	sb.steamAccount["smurfFlag"] = flag
	return sb
}

func (sb *statsBuilder) WithName(name string) *statsBuilder {
	sb.steamAccount["name"] = name
	return sb
}

func (sb *statsBuilder) WithSteamAccountField(name string, value any) *statsBuilder {
	sb.steamAccount[name] = value
	return sb
}

func (sb *statsBuilder) WithoutSteamAccountField(name string) *statsBuilder {
	delete(sb.steamAccount, name)
	return sb
}

func (sb *statsBuilder) Build() jsontree.Value {
	player := maps.Clone(sb.player)
	player["steamAccount"] = maps.Clone(sb.steamAccount)

	tree, err := jsontree.FromAny(player)
	if err != nil {
		panic(err)
	}
	return tree
}

func (sb *statsBuilder) BuildStats() domain.PlayerStats {
	stats, err := domain.NewPlayerStats(sb.Build())
	if err != nil {
		panic(err)
	}
	return stats
}

// NewStatsBuilder starts from a public, ranked, non-smurf player
func NewStatsBuilder(accountID domain.AccountID) *statsBuilder {
	return &statsBuilder{
		player: map[string]any{
			"steamAccountId": int(accountID),
			"matchCount":     100,
			"winCount":       55,
			"names":          []any{map[string]any{"name": "someone", "lastSeenDateTime": 1700000000}},
			"ranks":          []any{map[string]any{"asOfDateTime": 1700000000, "rank": 63, "seasonRankId": 1}},
		},
		steamAccount: map[string]any{
			"name":                  "someone",
			"isAnonymous":           false,
			"isStratzAnonymous":     false,
			"isDotaPlusSubscriber":  false,
			"seasonRank":            63,
			"smurfFlag":             0,
			"dotaAccountLevel":      30,
			"communityVisibleState": 3,
			"battlepass":            []any{},
			"profileUri":            "https://steamcommunity.com/id/someone/",
		},
	}
}

func NewSteamSummary(accountID domain.AccountID, profileState int) domain.SteamSummary {
	tree, err := jsontree.FromAny(map[string]any{
		"steamid":                  int64(accountID.SteamID64()),
		"personaname":              "someone on steam",
		"profilestate":             profileState,
		"communityvisibilitystate": 3,
	})
	if err != nil {
		panic(err)
	}
	summary, err := domain.NewSteamSummary(tree)
	if err != nil {
		panic(err)
	}
	return summary
}
