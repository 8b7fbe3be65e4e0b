package statsprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
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

type StatsProvider interface {
	GetPlayer(ctx context.Context, accountID domain.AccountID) (domain.PlayerStats, error)
}

const playerQuery = `query Player($steamAccountId: Long!) {
  player(steamAccountId: $steamAccountId) {
    firstMatchDate
    lastMatchDate
    matchCount
    names {
      name
      lastSeenDateTime
    }
    steamAccount {
      avatar
      isAnonymous
      isDotaPlusSubscriber
      isStratzAnonymous
      name
      seasonRank
      smurfFlag
      timeCreated
      dotaAccountLevel
      communityVisibleState
      battlepass {
        eventId
        level
      }
      profileUri
    }
    steamAccountId
    winCount
    ranks {
      asOfDateTime
      rank
      seasonRankId
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type stratzMetricsCollection struct {
	requestCount metric.Int64Counter
}

func setupStratzMetrics(meter metric.Meter) (stratzMetricsCollection, error) {
	requestCount, err := meter.Int64Counter("statsprovider/stratz/request_count")
	if err != nil {
		return stratzMetricsCollection{}, fmt.Errorf("failed to create request count metric: %w", err)
	}

	return stratzMetricsCollection{
		requestCount: requestCount,
	}, nil
}

type Stratz struct {
	httpClient HttpClient
	url        string
	token      string

	metrics stratzMetricsCollection
	tracer  trace.Tracer
}

func NewStratz(httpClient HttpClient, url string, token string) (*Stratz, error) {
	const name = "dotaprofile/statsprovider/stratz"

	meter := otel.Meter(name)
	tracer := otel.Tracer(name)

	metrics, err := setupStratzMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return &Stratz{
		httpClient: httpClient,
		url:        url,
		token:      token,

		metrics: metrics,
		tracer:  tracer,
	}, nil
}

func (s *Stratz) GetPlayer(ctx context.Context, accountID domain.AccountID) (domain.PlayerStats, error) {
	ctx, span := s.tracer.Start(ctx, "Stratz.GetPlayer")
	defer span.End()

	logger := logging.FromContext(ctx)

	body, err := json.Marshal(graphQLRequest{
		Query: playerQuery,
		Variables: map[string]any{
			"steamAccountId": uint32(accountID),
		},
	})
	if err != nil {
		err := fmt.Errorf("failed to encode request: %w", err)
		reporting.Report(ctx, err)
		return domain.PlayerStats{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		err := fmt.Errorf("failed to create request: %w", err)
		reporting.Report(ctx, err)
		return domain.PlayerStats{}, err
	}

	req.Header.Set("User-Agent", constants.USER_AGENT)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		err := fmt.Errorf("%w: failed to send request to stratz: %w", domain.ErrFetch, err)
		reporting.Report(ctx, err)
		return domain.PlayerStats{}, err
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err := fmt.Errorf("%w: failed to read stratz response body: %w", domain.ErrFetch, err)
		reporting.Report(ctx, err)
		return domain.PlayerStats{}, err
	}

	logger.InfoContext(
		ctx,
		"stratz request completed",
		slog.Int("status", resp.StatusCode),
		slog.String("duration", time.Since(start).String()),
	)

	s.metrics.requestCount.Add(
		ctx,
		1,
		metric.WithAttributes(
			attribute.String("status_code", strconv.Itoa(resp.StatusCode)),
		),
	)

	stats, err := statsFromStratzResponse(resp.StatusCode, data)
	if err != nil {
		err := fmt.Errorf("failed to get player stats from stratz response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":      string(data),
			"status":    strconv.Itoa(resp.StatusCode),
			"accountID": accountID.String(),
		})
		return domain.PlayerStats{}, err
	}

	return stats, nil
}

func statsFromStratzResponse(statusCode int, data []byte) (domain.PlayerStats, error) {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return domain.PlayerStats{}, fmt.Errorf("%w: %w: stratz returned status code %d", domain.ErrFetch, domain.ErrTemporarilyUnavailable, statusCode)
	}

	if statusCode != http.StatusOK {
		return domain.PlayerStats{}, fmt.Errorf("%w: stratz returned status code %d", domain.ErrFetch, statusCode)
	}

	tree, err := jsontree.Parse(data)
	if err != nil {
		return domain.PlayerStats{}, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}

	player, ok := tree.Path("data", "player")
	if !ok || player.IsNull() {
		if messages := graphQLErrorMessages(tree); len(messages) > 0 {
			return domain.PlayerStats{}, fmt.Errorf("%w: missing data.player (errors: %s)", domain.ErrParse, strings.Join(messages, "; "))
		}
		return domain.PlayerStats{}, fmt.Errorf("%w: missing data.player", domain.ErrParse)
	}

	stats, err := domain.NewPlayerStats(player)
	if err != nil {
		return domain.PlayerStats{}, err
	}

	return stats, nil
}

func graphQLErrorMessages(tree jsontree.Value) []string {
	errs, ok := tree.Field("errors")
	if !ok {
		return nil
	}

	var messages []string
	for _, item := range errs.Items() {
		message, ok := item.Field("message")
		if !ok {
			continue
		}
		if str, ok := message.Str(); ok {
			messages = append(messages, str)
		}
	}
	return messages
}
