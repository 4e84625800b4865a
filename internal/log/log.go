package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
)

type contextKey struct{}

var discardLogger = New(io.Discard)

// New builds the JSON logger for the process. Raw model replies are logged
// at debug, so LOG_LEVEL=debug turns them on.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lo.Ternary(strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug"), slog.LevelDebug, slog.LevelInfo),
	}))
}

// NewContext stores the logger under our own key and as a logr.Logger, so
// packages using logr.FromContextOrDiscard share the same output.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, contextKey{}, logger)
	return logr.NewContextWithSlogLogger(ctx, logger)
}

func FromContextOrDiscard(ctx context.Context) *slog.Logger {
	if v, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return v
	}
	return discardLogger
}
