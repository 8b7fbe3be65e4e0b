package logging

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/Amund211/dotaprofile/internal/domain"
)

type loggerContextKey struct{}

var fallbackLogger = slog.New(
	NewTracingLogHandler(slog.NewJSONHandler(os.Stderr, nil)),
).With(slog.String("logger", "fallback"))

// FromContext returns the logger stored in ctx, or a shared fallback logger writing to stderr
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return fallbackLogger
}

func AddToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

func AddMetaToContext(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}

	return AddToContext(ctx, FromContext(ctx).With(args...))
}

// AddAccountToContext tags all further log lines with both identifier forms of the account
func AddAccountToContext(ctx context.Context, accountID domain.AccountID) context.Context {
	return AddMetaToContext(
		ctx,
		slog.String("accountID", accountID.String()),
		slog.String("steamID64", strconv.FormatUint(accountID.SteamID64(), 10)),
	)
}
