package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Amund211/dotaprofile/internal/adapters/statsprovider"
	"github.com/Amund211/dotaprofile/internal/adapters/steamprovider"
	"github.com/Amund211/dotaprofile/internal/app"
	"github.com/Amund211/dotaprofile/internal/config"
	"github.com/Amund211/dotaprofile/internal/logging"
	"github.com/Amund211/dotaprofile/internal/ports"
	"github.com/Amund211/dotaprofile/internal/reporting"
	"github.com/Amund211/dotaprofile/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	_ "golang.org/x/crypto/x509roots/fallback"
)

func main() {
	instanceID := uuid.New().String()
	logger := slog.New(
		logging.NewTracingLogHandler(slog.NewJSONHandler(os.Stdout, nil)),
	).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		fail("Failed to load .env", "error", err.Error())
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	if !config.IsDevelopment() {
		shutdownOTel, err := telemetry.SetupOTelSDK(ctx, "dotaprofile")
		if err != nil {
			fail("Failed to set up OpenTelemetry", "error", err.Error())
		}
		defer func() {
			err := shutdownOTel(context.Background())
			if err != nil {
				logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
			}
		}()
		logger.Info("Initialized OpenTelemetry")
	}

	httpClient := &http.Client{
		Timeout:   config.RequestTimeout(),
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	statsProvider, err := statsprovider.NewStatsProviderOrMock(config, httpClient)
	if err != nil {
		fail("Failed to initialize stats provider", "error", err.Error())
	}
	logger.Info("Initialized stats provider")

	steamProvider, err := steamprovider.NewSteamProviderOrMock(config, httpClient)
	if err != nil {
		fail("Failed to initialize steam provider", "error", err.Error())
	}
	logger.Info("Initialized steam provider")

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	getProfile := app.BuildGetProfile(statsProvider, steamProvider, config.RequestTimeout())

	mux := http.NewServeMux()
	mux.HandleFunc(
		"GET /v1/profile/{accountID}",
		ports.MakeGetProfileHandler(
			getProfile,
			logger.With("port", "profile"),
			sentryMiddleware,
		),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port()),
		Handler:           otelhttp.NewHandler(mux, "dotaprofile"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server", "error", err.Error())
		}
	}()

	logger.Info("Init complete", "port", config.Port())
	err = server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-shutdownDone
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
