package domain

import (
	"encoding/json"
	"strconv"
)

type friendCountState int

const (
	friendCountUncomputed friendCountState = iota
	friendCountUnavailable
	friendCountKnown
)

// FriendCount is the memoized result of looking up a player's friend list.
//
// The zero value is Uncomputed.
type FriendCount struct {
	state friendCountState
	count int
}

func FriendCountUnavailable() FriendCount {
	return FriendCount{state: friendCountUnavailable}
}

func FriendCountOf(count int) FriendCount {
	return FriendCount{state: friendCountKnown, count: count}
}

func (f FriendCount) Computed() bool {
	return f.state != friendCountUncomputed
}

func (f FriendCount) Available() bool {
	return f.state == friendCountKnown
}

func (f FriendCount) Count() (int, bool) {
	return f.count, f.state == friendCountKnown
}

func (f FriendCount) String() string {
	switch f.state {
	case friendCountKnown:
		return strconv.Itoa(f.count)
	case friendCountUnavailable:
		return "None"
	default:
		return "<uncomputed>"
	}
}

// Unavailable and uncomputed counts are encoded as null
func (f FriendCount) MarshalJSON() ([]byte, error) {
	if f.state != friendCountKnown {
		return []byte("null"), nil
	}
	return json.Marshal(f.count)
}
