package domain

import "fmt"

type Medal int

const (
	MedalUnranked Medal = iota
	MedalHerald
	MedalGuardian
	MedalCrusader
	MedalArchon
	MedalLegend
	MedalAncient
	MedalDivine
	MedalImmortal
)

var medalNames = [...]string{
	MedalUnranked: "Unranked",
	MedalHerald:   "Herald",
	MedalGuardian: "Guardian",
	MedalCrusader: "Crusader",
	MedalArchon:   "Archon",
	MedalLegend:   "Legend",
	MedalAncient:  "Ancient",
	MedalDivine:   "Divine",
	MedalImmortal: "Immortal",
}

func (m Medal) String() string {
	if m < MedalUnranked || m > MedalImmortal {
		return fmt.Sprintf("<invalid medal>(%d)", int(m))
	}
	return medalNames[m]
}

// RankMedal is a competitive rank split into its tier and the stars within that tier
type RankMedal struct {
	Medal Medal
	// Zero when the player is unranked
	Stars int
}

// NewRankMedal converts a combined rank value (tier*10 + stars) into a RankMedal.
//
// A nil rank means the player has not been placed yet and maps to Unranked.
func NewRankMedal(rank *int) (RankMedal, error) {
	if rank == nil {
		return RankMedal{Medal: MedalUnranked}, nil
	}

	value := *rank
	if value < 0 || value >= (int(MedalImmortal)+1)*10 {
		return RankMedal{}, fmt.Errorf("%w: %d", ErrInvalidRank, value)
	}

	medal := Medal(value / 10)
	if medal == MedalUnranked {
		return RankMedal{Medal: MedalUnranked}, nil
	}

	return RankMedal{
		Medal: medal,
		Stars: value % 10,
	}, nil
}

func (r RankMedal) String() string {
	if r.Stars == 0 {
		return r.Medal.String()
	}
	return fmt.Sprintf("%s[%d]", r.Medal, r.Stars)
}

func (r RankMedal) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
