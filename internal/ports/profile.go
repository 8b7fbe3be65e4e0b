package ports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Amund211/dotaprofile/internal/app"
	"github.com/Amund211/dotaprofile/internal/domain"
	"github.com/Amund211/dotaprofile/internal/logging"
	"github.com/Amund211/dotaprofile/internal/reporting"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Cause   string `json:"cause"`
}

type profileResponse struct {
	Success   bool           `json:"success"`
	AccountID uint32         `json:"accountId"`
	SteamID   string         `json:"steamId"`
	Name      string         `json:"name"`
	Flags     map[string]any `json:"flags"`
}

func MakeGetProfileHandler(
	getProfile app.GetProfile,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("profile"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware("profile"),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rawAccountID := r.PathValue("accountID")

		handleError := func(ctx context.Context, cause string, statusCode int) {
			response, err := json.Marshal(errorResponse{Success: false, Cause: cause})
			if err != nil {
				reporting.Report(ctx, fmt.Errorf("failed to marshal error response: %w", err))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success":false,"cause":"internal server error"}`))
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(statusCode)
			w.Write(response)
		}

		accountID, err := domain.ParseAccountID(rawAccountID)
		if err != nil {
			handleError(ctx, "invalid account id", http.StatusBadRequest)
			return
		}

		profile, err := getProfile(ctx, accountID)
		if err != nil {
			// NOTE: GetProfile implementations handle their own error reporting
			cause, statusCode := causeAndStatusForError(err)
			handleError(ctx, cause, statusCode)
			return
		}

		ctx = logging.AddAccountToContext(ctx, accountID)
		ctx = reporting.SetAccountInContext(ctx, accountID)

		flags, err := profile.Flags(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidRank) {
				reporting.Report(ctx, fmt.Errorf("failed to compute flags: %w", err))
			}
			cause, statusCode := causeAndStatusForError(err)
			handleError(ctx, cause, statusCode)
			return
		}

		response, err := json.Marshal(profileResponse{
			Success:   true,
			AccountID: uint32(profile.AccountID()),
			SteamID:   strconv.FormatUint(profile.AccountID().SteamID64(), 10),
			Name:      profile.DisplayName(),
			Flags:     flags.Map(),
		})
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to marshal profile response: %w", err))
			handleError(ctx, "internal server error", http.StatusInternalServerError)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning profile", slog.String("flags", flags.String()))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(response)
	}

	return middleware(handler)
}

func causeAndStatusForError(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrTemporarilyUnavailable):
		return "temporarily unavailable", http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrFetch),
		errors.Is(err, domain.ErrParse),
		errors.Is(err, domain.ErrInvalidRank):
		return "bad response from upstream", http.StatusBadGateway
	default:
		return "internal server error", http.StatusInternalServerError
	}
}
