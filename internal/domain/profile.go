package domain

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const (
	FlagRank              = "rank"
	FlagPlayed            = "played"
	FlagWinrate           = "winrate"
	FlagDotaAnonymous     = "dota_anonymous"
	FlagDotaLevel         = "dota_level"
	FlagSteamAnonymous    = "steam_anonymous"
	FlagStratzAnonymous   = "stratz_anonymous"
	FlagStratzSmurf       = "stratz_smurf"
	FlagSteamProfileSetUp = "steam_profile_set_up"
	FlagNFriends          = "n_friends"
)

type FriendsFetcher interface {
	GetFriendCount(ctx context.Context, steamID64 uint64) (int, error)
}

// Profile is a player's stats and steam profile, fetched together.
//
// A Profile is read-only once constructed, except for the memoized friend count.
type Profile struct {
	accountID AccountID
	stats     PlayerStats
	summary   SteamSummary

	friends       FriendsFetcher
	friendCountMu sync.Mutex
	friendCount   FriendCount
}

func NewProfile(accountID AccountID, stats PlayerStats, summary SteamSummary, friends FriendsFetcher) *Profile {
	return &Profile{
		accountID: accountID,
		stats:     stats,
		summary:   summary,
		friends:   friends,
	}
}

func (p *Profile) AccountID() AccountID {
	return p.accountID
}

func (p *Profile) Stats() PlayerStats {
	return p.stats
}

func (p *Profile) Summary() SteamSummary {
	return p.summary
}

// DisplayName is the name known to the stats service, or the steam persona name if that is missing
func (p *Profile) DisplayName() string {
	if name := p.stats.Name(); name != "" {
		return name
	}
	return p.summary.PersonaName()
}

func (p *Profile) Rank() (RankMedal, error) {
	return NewRankMedal(p.stats.SeasonRank())
}

func (p *Profile) RankInt() *int {
	return p.stats.SeasonRank()
}

func (p *Profile) Medal() (Medal, error) {
	rank, err := p.Rank()
	if err != nil {
		return MedalUnranked, err
	}
	return rank.Medal, nil
}

func (p *Profile) MedalStars() (int, error) {
	rank, err := p.Rank()
	if err != nil {
		return 0, err
	}
	return rank.Stars, nil
}

func (p *Profile) Played() int {
	return p.stats.MatchCount()
}

// Winrate is the fraction of matches won. Players without any matches have a winrate of 0.
func (p *Profile) Winrate() float64 {
	played := p.stats.MatchCount()
	if played == 0 {
		return 0
	}
	return float64(p.stats.WinCount()) / float64(played)
}

func (p *Profile) DotaAnonymous() bool {
	return p.stats.IsAnonymous()
}

func (p *Profile) DotaLevel() int {
	return p.stats.DotaAccountLevel()
}

// SteamAnonymous is true unless the steam profile is visible to third parties.
//
// Unauthenticated requests only ever see 1 (not visible) or 3 (public).
func (p *Profile) SteamAnonymous() bool {
	state := p.stats.CommunityVisibleState()
	return state == nil || *state != communityVisibilityPublic
}

func (p *Profile) StratzAnonymous() bool {
	return p.stats.IsStratzAnonymous()
}

func (p *Profile) StratzSmurf() bool {
	flag := p.stats.SmurfFlag()
	return flag != nil && *flag == 1
}

func (p *Profile) SteamProfileSetUp() bool {
	state := p.summary.ProfileState()
	return state != nil && *state == 1
}

// NFriends looks up the size of the player's friend list the first time it is called.
//
// Anonymous steam profiles don't expose their friend list, so no request is made and the
// count is Unavailable. A failed lookup is not cached.
func (p *Profile) NFriends(ctx context.Context) (FriendCount, error) {
	p.friendCountMu.Lock()
	defer p.friendCountMu.Unlock()

	if p.friendCount.Computed() {
		return p.friendCount, nil
	}

	if p.SteamAnonymous() || p.friends == nil {
		p.friendCount = FriendCountUnavailable()
		return p.friendCount, nil
	}

	count, err := p.friends.GetFriendCount(ctx, p.accountID.SteamID64())
	if err != nil {
		return FriendCount{}, fmt.Errorf("failed to get friend count: %w", err)
	}

	p.friendCount = FriendCountOf(count)
	return p.friendCount, nil
}

type Flag struct {
	Name  string
	Value any
}

type Flags []Flag

func (f Flags) Map() map[string]any {
	m := make(map[string]any, len(f))
	for _, flag := range f {
		m[flag.Name] = flag.Value
	}
	return m
}

// String renders the flags as name:value pairs joined by |
func (f Flags) String() string {
	parts := make([]string, 0, len(f))
	for _, flag := range f {
		parts = append(parts, fmt.Sprintf("%s:%v", flag.Name, flag.Value))
	}
	return strings.Join(parts, "|")
}

// Flags computes every derived field. Only n_friends is memoized.
func (p *Profile) Flags(ctx context.Context) (Flags, error) {
	rank, err := p.Rank()
	if err != nil {
		return nil, err
	}

	nFriends, err := p.NFriends(ctx)
	if err != nil {
		return nil, err
	}

	return Flags{
		{Name: FlagRank, Value: rank},
		{Name: FlagPlayed, Value: p.Played()},
		{Name: FlagWinrate, Value: p.Winrate()},
		{Name: FlagDotaAnonymous, Value: p.DotaAnonymous()},
		{Name: FlagDotaLevel, Value: p.DotaLevel()},
		{Name: FlagSteamAnonymous, Value: p.SteamAnonymous()},
		{Name: FlagStratzAnonymous, Value: p.StratzAnonymous()},
		{Name: FlagStratzSmurf, Value: p.StratzSmurf()},
		{Name: FlagSteamProfileSetUp, Value: p.SteamProfileSetUp()},
		{Name: FlagNFriends, Value: nFriends},
	}, nil
}
