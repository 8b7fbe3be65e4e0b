package ports

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type portMetricsCollection struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

func setupPortMetrics(meter metric.Meter) (portMetricsCollection, error) {
	requestCount, err := meter.Int64Counter(
		"ports/request_count",
		metric.WithDescription("Profile requests received, by outcome"),
	)
	if err != nil {
		return portMetricsCollection{}, fmt.Errorf("failed to create request count metric: %w", err)
	}

	requestDuration, err := meter.Float64Histogram(
		"ports/request_duration_seconds",
		metric.WithDescription("Time spent serving profile requests, including upstream fetches"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return portMetricsCollection{}, fmt.Errorf("failed to create request duration metric: %w", err)
	}

	return portMetricsCollection{
		requestCount:    requestCount,
		requestDuration: requestDuration,
	}, nil
}

// outcomeForStatus groups status codes by which side of the aggregator failed
func outcomeForStatus(statusCode int) string {
	switch {
	case statusCode < 400:
		return "ok"
	case statusCode < 500:
		return "bad_request"
	case statusCode == http.StatusBadGateway, statusCode == http.StatusServiceUnavailable:
		return "upstream_error"
	default:
		return "internal_error"
	}
}

func buildMetricsMiddleware(port string) func(http.HandlerFunc) http.HandlerFunc {
	metrics, err := setupPortMetrics(otel.Meter("dotaprofile/ports"))
	if err != nil {
		panic(fmt.Errorf("failed to set up metrics for %s: %w", port, err))
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next(recorder, r)

			userAgent := r.UserAgent()
			if userAgent == "" {
				userAgent = "<missing>"
			}

			attributes := metric.WithAttributes(
				attribute.String("port", port),
				attribute.String("method", r.Method),
				attribute.String("user_agent", userAgent),
				attribute.String("status_code", strconv.Itoa(recorder.statusCode)),
				attribute.String("outcome", outcomeForStatus(recorder.statusCode)),
			)

			ctx := r.Context()
			metrics.requestCount.Add(ctx, 1, attributes)
			metrics.requestDuration.Record(ctx, time.Since(start).Seconds(), attributes)
		}
	}
}
