package ports_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Amund211/dotaprofile/internal/domain"
	"github.com/Amund211/dotaprofile/internal/domaintest"
	"github.com/Amund211/dotaprofile/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accountID domain.AccountID = 95251565

type friendsFetcher struct {
	count int
	err   error
}

func (f friendsFetcher) GetFriendCount(ctx context.Context, steamID64 uint64) (int, error) {
	return f.count, f.err
}

func noopMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return next
}

func serve(t *testing.T, getProfile func(ctx context.Context, accountID domain.AccountID) (*domain.Profile, error), path string) *httptest.ResponseRecorder {
	t.Helper()

	handler := ports.MakeGetProfileHandler(
		getProfile,
		slog.New(slog.NewJSONHandler(io.Discard, nil)),
		noopMiddleware,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/profile/{accountID}", handler)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestGetProfileHandler(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		for _, path := range []string{"/v1/profile/95251565", "/v1/profile/76561198055517293"} {
			t.Run(path, func(t *testing.T) {
				t.Parallel()

				getProfile := func(ctx context.Context, id domain.AccountID) (*domain.Profile, error) {
					require.Equal(t, accountID, id)
					stats := domaintest.NewStatsBuilder(id).WithMatches(100, 55).WithSeasonRank(intPtr(63)).BuildStats()
					return domain.NewProfile(id, stats, domaintest.NewSteamSummary(id, 1), friendsFetcher{count: 12}), nil
				}

				w := serve(t, getProfile, path)

				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, "application/json", w.Header().Get("Content-Type"))
				require.JSONEq(t, `{
					"success": true,
					"accountId": 95251565,
					"steamId": "76561198055517293",
					"name": "someone",
					"flags": {
						"rank": "Ancient[3]",
						"played": 100,
						"winrate": 0.55,
						"dota_anonymous": false,
						"dota_level": 30,
						"steam_anonymous": false,
						"stratz_anonymous": false,
						"stratz_smurf": false,
						"steam_profile_set_up": true,
						"n_friends": 12
					}
				}`, w.Body.String())
			})
		}
	})

	t.Run("invalid account id", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"abc", "-1", "99999999999", "76561197960265727x"} {
			t.Run(raw, func(t *testing.T) {
				t.Parallel()

				getProfile := func(ctx context.Context, id domain.AccountID) (*domain.Profile, error) {
					t.Fatal("should not be called")
					return nil, nil
				}

				w := serve(t, getProfile, "/v1/profile/"+raw)

				require.Equal(t, http.StatusBadRequest, w.Code)
				require.JSONEq(t, `{"success":false,"cause":"invalid account id"}`, w.Body.String())
			})
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name       string
			err        error
			statusCode int
			cause      string
		}{
			{
				name:       "temporarily unavailable",
				err:        fmt.Errorf("%w: %w: stratz returned status code 429", domain.ErrFetch, domain.ErrTemporarilyUnavailable),
				statusCode: http.StatusServiceUnavailable,
				cause:      "temporarily unavailable",
			},
			{
				name:       "fetch",
				err:        fmt.Errorf("%w: stratz returned status code 500", domain.ErrFetch),
				statusCode: http.StatusBadGateway,
				cause:      "bad response from upstream",
			},
			{
				name:       "parse",
				err:        fmt.Errorf("%w: missing data.player", domain.ErrParse),
				statusCode: http.StatusBadGateway,
				cause:      "bad response from upstream",
			},
			{
				name:       "unknown",
				err:        assert.AnError,
				statusCode: http.StatusInternalServerError,
				cause:      "internal server error",
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				getProfile := func(ctx context.Context, id domain.AccountID) (*domain.Profile, error) {
					return nil, tc.err
				}

				w := serve(t, getProfile, "/v1/profile/95251565")

				require.Equal(t, tc.statusCode, w.Code)
				require.JSONEq(t, fmt.Sprintf(`{"success":false,"cause":%q}`, tc.cause), w.Body.String())
			})
		}
	})

	t.Run("invalid rank", func(t *testing.T) {
		t.Parallel()

		getProfile := func(ctx context.Context, id domain.AccountID) (*domain.Profile, error) {
			stats := domaintest.NewStatsBuilder(id).WithSeasonRank(intPtr(95)).BuildStats()
			return domain.NewProfile(id, stats, domaintest.NewSteamSummary(id, 1), friendsFetcher{count: 1}), nil
		}

		w := serve(t, getProfile, "/v1/profile/95251565")

		require.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("friends lookup fails", func(t *testing.T) {
		t.Parallel()

		getProfile := func(ctx context.Context, id domain.AccountID) (*domain.Profile, error) {
			stats := domaintest.NewStatsBuilder(id).BuildStats()
			return domain.NewProfile(id, stats, domaintest.NewSteamSummary(id, 1), friendsFetcher{
				err: fmt.Errorf("%w: steam returned status code 503", domain.ErrTemporarilyUnavailable),
			}), nil
		}

		w := serve(t, getProfile, "/v1/profile/95251565")

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func intPtr(i int) *int {
	return &i
}
