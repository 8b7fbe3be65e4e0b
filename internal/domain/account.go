package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Offset between a legacy (32 bit) account id and the 64 bit steam id of an individual account
const steamID64Offset uint64 = 76561197960265728

// AccountID is the legacy account id used by stats services like STRATZ and OpenDota
type AccountID uint32

func (id AccountID) SteamID64() uint64 {
	return uint64(id) + steamID64Offset
}

func (id AccountID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func AccountIDFromSteamID64(steamID64 uint64) (AccountID, error) {
	if steamID64 < steamID64Offset || steamID64-steamID64Offset > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d is not an individual steam id", ErrInvalidAccountID, steamID64)
	}
	return AccountID(steamID64 - steamID64Offset), nil
}

// ParseAccountID accepts either the legacy account id or the 64 bit steam id
func ParseAccountID(raw string) (AccountID, error) {
	raw = strings.TrimSpace(raw)

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidAccountID, raw)
	}

	if value >= steamID64Offset {
		return AccountIDFromSteamID64(value)
	}

	if value > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d is out of range", ErrInvalidAccountID, value)
	}

	return AccountID(value), nil
}
