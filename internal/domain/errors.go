package domain

import "errors"

var (
	// A request to an external service failed, returned a non-success status, or the
	// service broke its response contract (e.g. an empty player list)
	ErrFetch = errors.New("fetch failed")
	// A response was received but did not have the expected structure
	ErrParse = errors.New("unexpected response structure")

	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
	ErrInvalidAccountID       = errors.New("invalid account id")
	ErrInvalidRank            = errors.New("invalid rank")
)
