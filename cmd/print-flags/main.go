package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Amund211/dotaprofile/internal/adapters/statsprovider"
	"github.com/Amund211/dotaprofile/internal/adapters/steamprovider"
	"github.com/Amund211/dotaprofile/internal/app"
	"github.com/Amund211/dotaprofile/internal/config"
	"github.com/Amund211/dotaprofile/internal/constants"
	"github.com/Amund211/dotaprofile/internal/domain"
	"github.com/Amund211/dotaprofile/internal/logging"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	_ "golang.org/x/crypto/x509roots/fallback"
)

var defaultAccountIDs = []string{"95251565", "89428432", "1252911151"}

func buildGetProfile(stratzToken, steamAPIKey string, timeout time.Duration) (app.GetProfile, error) {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	stratz, err := statsprovider.NewStratz(httpClient, constants.STRATZ_API_URL, stratzToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stratz: %w", err)
	}

	steam, err := steamprovider.NewSteam(httpClient, constants.STEAM_API_URL, steamAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize steam: %w", err)
	}

	return app.BuildGetProfile(stratz, steam, timeout), nil
}

// printFlags writes one line per profile. A failed profile doesn't stop the rest.
func printFlags(ctx context.Context, out io.Writer, errOut io.Writer, getProfile app.GetProfile, rawAccountIDs []string) error {
	failed := 0
	for _, raw := range rawAccountIDs {
		line, err := flagsLine(ctx, getProfile, raw)
		if err != nil {
			failed++
			fmt.Fprintf(errOut, "%s: %s\n", raw, err.Error())
			continue
		}
		fmt.Fprintln(out, line)
	}

	if failed > 0 {
		return fmt.Errorf("failed to get %d of %d profiles", failed, len(rawAccountIDs))
	}
	return nil
}

func flagsLine(ctx context.Context, getProfile app.GetProfile, raw string) (string, error) {
	accountID, err := domain.ParseAccountID(raw)
	if err != nil {
		return "", err
	}

	profile, err := getProfile(ctx, accountID)
	if err != nil {
		return "", err
	}

	flags, err := profile.Flags(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s", profile.DisplayName(), flags.String()), nil
}

func newRootCommand() *cobra.Command {
	var stratzToken string
	var steamAPIKey string
	var timeout time.Duration
	var verbose bool

	cmd := &cobra.Command{
		Use:   "print-flags [account id...]",
		Short: "Print the derived flags of dota 2 players",
		Long: "Fetch each player's stats from STRATZ and their profile from the Steam Web API, " +
			"and print the display name followed by the derived flags.\n\n" +
			"Account ids may be given either as legacy account ids or as 64 bit steam ids.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stratzToken == "" {
				stratzToken = os.Getenv("STRATZ_API_TOKEN")
			}
			if steamAPIKey == "" {
				steamAPIKey = os.Getenv("STEAM_API_KEY")
			}
			if stratzToken == "" || steamAPIKey == "" {
				return errors.New("both a STRATZ token (--stratz-token) and a Steam Web API key (--valve-token) are required")
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			ctx := logging.AddToContext(cmd.Context(), logger)

			getProfile, err := buildGetProfile(stratzToken, steamAPIKey, timeout)
			if err != nil {
				return err
			}

			accountIDs := defaultAccountIDs
			if len(args) > 0 {
				accountIDs = args
			}

			return printFlags(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), getProfile, accountIDs)
		},
	}

	cmd.Flags().StringVarP(&stratzToken, "stratz-token", "s", "", "STRATZ API token (default $STRATZ_API_TOKEN)")
	cmd.Flags().StringVarP(&steamAPIKey, "valve-token", "v", "", "Steam Web API key (default $STEAM_API_KEY)")
	cmd.Flags().DurationVar(&timeout, "timeout", constants.DEFAULT_REQUEST_TIMEOUT, "Timeout for fetching a single profile")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log every request")

	return cmd
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
