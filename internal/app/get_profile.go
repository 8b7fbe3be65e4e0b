package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Amund211/dotaprofile/internal/domain"
	"github.com/Amund211/dotaprofile/internal/logging"
	"github.com/Amund211/dotaprofile/internal/reporting"
	"golang.org/x/sync/errgroup"
)

type GetProfile func(ctx context.Context, accountID domain.AccountID) (*domain.Profile, error)

type statsProvider interface {
	GetPlayer(ctx context.Context, accountID domain.AccountID) (domain.PlayerStats, error)
}

type steamProvider interface {
	GetPlayerSummary(ctx context.Context, steamID64 uint64) (domain.SteamSummary, error)
	GetFriendCount(ctx context.Context, steamID64 uint64) (int, error)
}

// Applies the request timeout to the lazy friend list lookup as well
type friendsFetcherWithTimeout struct {
	provider steamProvider
	timeout  time.Duration
}

func (f friendsFetcherWithTimeout) GetFriendCount(ctx context.Context, steamID64 uint64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// NOTE: steamProvider implementations handle their own error reporting
	return f.provider.GetFriendCount(ctx, steamID64)
}

func BuildGetProfile(stats statsProvider, steam steamProvider, timeout time.Duration) GetProfile {
	friends := friendsFetcherWithTimeout{provider: steam, timeout: timeout}

	return func(ctx context.Context, accountID domain.AccountID) (*domain.Profile, error) {
		steamID64 := accountID.SteamID64()

		ctx = logging.AddAccountToContext(ctx, accountID)
		ctx = reporting.SetAccountInContext(ctx, accountID)

		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		g, gCtx := errgroup.WithContext(fetchCtx)

		var playerStats domain.PlayerStats
		var summary domain.SteamSummary

		g.Go(func() error {
			var err error
			playerStats, err = stats.GetPlayer(gCtx, accountID)
			return err
		})

		g.Go(func() error {
			var err error
			summary, err = steam.GetPlayerSummary(gCtx, steamID64)
			return err
		})

		if err := g.Wait(); err != nil {
			// NOTE: The providers handle their own error reporting
			logging.FromContext(ctx).WarnContext(ctx, "Failed to fetch profile", "error", err.Error())
			return nil, fmt.Errorf("could not get profile for %s: %w", accountID, err)
		}

		return domain.NewProfile(accountID, playerStats, summary, friends), nil
	}
}
