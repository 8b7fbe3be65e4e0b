package steamprovider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Amund211/dotaprofile/internal/constants"
	"github.com/Amund211/dotaprofile/internal/domain"
	"github.com/Amund211/dotaprofile/internal/jsontree"
	"github.com/Amund211/dotaprofile/internal/logging"
	"github.com/Amund211/dotaprofile/internal/reporting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type SteamProvider interface {
	GetPlayerSummary(ctx context.Context, steamID64 uint64) (domain.SteamSummary, error)
	GetFriendCount(ctx context.Context, steamID64 uint64) (int, error)
}

type steamMetricsCollection struct {
	requestCount metric.Int64Counter
}

func setupSteamMetrics(meter metric.Meter) (steamMetricsCollection, error) {
	requestCount, err := meter.Int64Counter("steamprovider/steam/request_count")
	if err != nil {
		return steamMetricsCollection{}, fmt.Errorf("failed to create request count metric: %w", err)
	}

	return steamMetricsCollection{
		requestCount: requestCount,
	}, nil
}

type Steam struct {
	httpClient HttpClient
	baseURL    string
	apiKey     string

	metrics steamMetricsCollection
	tracer  trace.Tracer
}

func NewSteam(httpClient HttpClient, baseURL string, apiKey string) (*Steam, error) {
	const name = "dotaprofile/steamprovider/steam"

	meter := otel.Meter(name)
	tracer := otel.Tracer(name)

	metrics, err := setupSteamMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return &Steam{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,

		metrics: metrics,
		tracer:  tracer,
	}, nil
}

func (s *Steam) GetPlayerSummary(ctx context.Context, steamID64 uint64) (domain.SteamSummary, error) {
	ctx, span := s.tracer.Start(ctx, "Steam.GetPlayerSummary")
	defer span.End()

	query := url.Values{}
	query.Set("key", s.apiKey)
	query.Set("steamids", strconv.FormatUint(steamID64, 10))

	statusCode, data, err := s.get(ctx, "GetPlayerSummaries", "/ISteamUser/GetPlayerSummaries/v2/", query)
	if err != nil {
		return domain.SteamSummary{}, err
	}

	summary, err := summaryFromSteamResponse(statusCode, data)
	if err != nil {
		err := fmt.Errorf("failed to get player summary from steam response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":      string(data),
			"status":    strconv.Itoa(statusCode),
			"steamID64": strconv.FormatUint(steamID64, 10),
		})
		return domain.SteamSummary{}, err
	}

	return summary, nil
}

func (s *Steam) GetFriendCount(ctx context.Context, steamID64 uint64) (int, error) {
	ctx, span := s.tracer.Start(ctx, "Steam.GetFriendCount")
	defer span.End()

	query := url.Values{}
	query.Set("key", s.apiKey)
	query.Set("steamid", strconv.FormatUint(steamID64, 10))
	query.Set("relationship", "friend")

	statusCode, data, err := s.get(ctx, "GetFriendList", "/ISteamUser/GetFriendList/v1/", query)
	if err != nil {
		return 0, err
	}

	count, err := friendCountFromSteamResponse(statusCode, data)
	if err != nil {
		err := fmt.Errorf("failed to get friend count from steam response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":      string(data),
			"status":    strconv.Itoa(statusCode),
			"steamID64": strconv.FormatUint(steamID64, 10),
		})
		return 0, err
	}

	return count, nil
}

func (s *Steam) get(ctx context.Context, method string, path string, query url.Values) (int, []byte, error) {
	logger := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		err := fmt.Errorf("failed to create request: %w", err)
		reporting.Report(ctx, err)
		return -1, nil, err
	}

	req.Header.Set("User-Agent", constants.USER_AGENT)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		// The url contains the api key
		err := fmt.Errorf("%w: failed to send request to steam %s", domain.ErrFetch, method)
		reporting.Report(ctx, err)
		return -1, nil, err
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err := fmt.Errorf("%w: failed to read steam response body: %w", domain.ErrFetch, err)
		reporting.Report(ctx, err)
		return -1, nil, err
	}

	logger.InfoContext(
		ctx,
		"steam request completed",
		slog.String("method", method),
		slog.Int("status", resp.StatusCode),
		slog.String("duration", time.Since(start).String()),
	)

	s.metrics.requestCount.Add(
		ctx,
		1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("status_code", strconv.Itoa(resp.StatusCode)),
		),
	)

	return resp.StatusCode, data, nil
}

func checkStatus(statusCode int) error {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w: steam returned status code %d", domain.ErrFetch, domain.ErrTemporarilyUnavailable, statusCode)
	}

	if statusCode != http.StatusOK {
		return fmt.Errorf("%w: steam returned status code %d", domain.ErrFetch, statusCode)
	}

	return nil
}

func summaryFromSteamResponse(statusCode int, data []byte) (domain.SteamSummary, error) {
	if err := checkStatus(statusCode); err != nil {
		return domain.SteamSummary{}, err
	}

	tree, err := jsontree.Parse(data)
	if err != nil {
		return domain.SteamSummary{}, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}

	players, ok := tree.Path("response", "players")
	if !ok || players.Kind() != jsontree.KindList {
		return domain.SteamSummary{}, fmt.Errorf("%w: missing response.players", domain.ErrParse)
	}

	first, ok := players.Index(0)
	if !ok {
		// A valid key and id should always give exactly one player
		return domain.SteamSummary{}, fmt.Errorf("%w: steam returned no players", domain.ErrFetch)
	}

	return domain.NewSteamSummary(first)
}

func friendCountFromSteamResponse(statusCode int, data []byte) (int, error) {
	if err := checkStatus(statusCode); err != nil {
		return 0, err
	}

	tree, err := jsontree.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}

	friends, ok := tree.Path("friendslist", "friends")
	if !ok || friends.Kind() != jsontree.KindList {
		return 0, fmt.Errorf("%w: missing friendslist.friends", domain.ErrParse)
	}

	return friends.Len(), nil
}
