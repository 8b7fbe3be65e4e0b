package domain

import (
	"fmt"

	"github.com/Amund211/dotaprofile/internal/jsontree"
)

// Community visibility state meaning the profile is public to the requester
const communityVisibilityPublic = 3

// PlayerStats gives typed access to the player object returned by the stats service
type PlayerStats struct {
	tree jsontree.Value
}

// NewPlayerStats checks that the fields every derivation relies on are present
func NewPlayerStats(tree jsontree.Value) (PlayerStats, error) {
	if tree.Kind() != jsontree.KindObject {
		return PlayerStats{}, fmt.Errorf("%w: player is %s, not an object", ErrParse, tree.Kind())
	}

	steamAccount, ok := tree.Field("steamAccount")
	if !ok || steamAccount.Kind() != jsontree.KindObject {
		return PlayerStats{}, fmt.Errorf("%w: player.steamAccount missing", ErrParse)
	}

	for _, name := range []string{"matchCount", "winCount"} {
		field, ok := tree.Field(name)
		if !ok {
			return PlayerStats{}, fmt.Errorf("%w: player.%s missing", ErrParse, name)
		}
		if _, ok := field.Int(); !ok {
			return PlayerStats{}, fmt.Errorf("%w: player.%s is not an integer", ErrParse, name)
		}
	}

	return PlayerStats{tree: tree}, nil
}

func (s PlayerStats) Tree() jsontree.Value {
	return s.tree
}

func (s PlayerStats) MatchCount() int {
	return intField(s.tree, "matchCount")
}

func (s PlayerStats) WinCount() int {
	return intField(s.tree, "winCount")
}

// SeasonRank is nil if the player has not been placed this season
func (s PlayerStats) SeasonRank() *int {
	return optionalIntField(s.tree, "steamAccount", "seasonRank")
}

func (s PlayerStats) IsAnonymous() bool {
	return boolField(s.tree, "steamAccount", "isAnonymous")
}

func (s PlayerStats) IsStratzAnonymous() bool {
	return boolField(s.tree, "steamAccount", "isStratzAnonymous")
}

func (s PlayerStats) DotaAccountLevel() int {
	return intField(s.tree, "steamAccount", "dotaAccountLevel")
}

func (s PlayerStats) CommunityVisibleState() *int {
	return optionalIntField(s.tree, "steamAccount", "communityVisibleState")
}

func (s PlayerStats) SmurfFlag() *int {
	return optionalIntField(s.tree, "steamAccount", "smurfFlag")
}

func (s PlayerStats) Name() string {
	return stringField(s.tree, "steamAccount", "name")
}

// SteamSummary gives typed access to a player entry from the steam player summaries
type SteamSummary struct {
	tree jsontree.Value
}

func NewSteamSummary(tree jsontree.Value) (SteamSummary, error) {
	if tree.Kind() != jsontree.KindObject {
		return SteamSummary{}, fmt.Errorf("%w: player summary is %s, not an object", ErrParse, tree.Kind())
	}
	return SteamSummary{tree: tree}, nil
}

func (s SteamSummary) Tree() jsontree.Value {
	return s.tree
}

func (s SteamSummary) ProfileState() *int {
	return optionalIntField(s.tree, "profilestate")
}

func (s SteamSummary) PersonaName() string {
	return stringField(s.tree, "personaname")
}

func optionalIntField(tree jsontree.Value, path ...string) *int {
	field, ok := tree.Path(path...)
	if !ok {
		return nil
	}
	value, ok := field.Int()
	if !ok {
		return nil
	}
	i := int(value)
	return &i
}

func intField(tree jsontree.Value, path ...string) int {
	value := optionalIntField(tree, path...)
	if value == nil {
		return 0
	}
	return *value
}

func boolField(tree jsontree.Value, path ...string) bool {
	field, ok := tree.Path(path...)
	if !ok {
		return false
	}
	value, _ := field.Bool()
	return value
}

func stringField(tree jsontree.Value, path ...string) string {
	field, ok := tree.Path(path...)
	if !ok {
		return ""
	}
	value, _ := field.Str()
	return value
}
