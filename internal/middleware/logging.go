package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/cobby8/allowance-manager-web/internal/source"
)

// loggingSource wraps a source.Source and logs every fetch.
type loggingSource struct {
	next   source.Source
	logger *slog.Logger
}

// LoggingSource returns a Source that logs the source name, row count,
// duration, and any error of every Rows call. A nil logger uses slog.Default().
func LoggingSource(next source.Source, logger *slog.Logger) source.Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingSource{next: next, logger: logger}
}

func (l *loggingSource) Name() string {
	return l.next.Name()
}

func (l *loggingSource) Rows(ctx context.Context) ([][]string, error) {
	start := time.Now()
	name := l.next.Name()

	rows, err := l.next.Rows(ctx)

	duration := time.Since(start).Milliseconds()
	if err != nil {
		l.logger.ErrorContext(ctx, "Sheet fetch failed",
			"source", name,
			"error", err,
			"duration_ms", duration,
		)
		return nil, err
	}

	l.logger.InfoContext(ctx, "Sheet fetched",
		"source", name,
		"rows", len(rows),
		"duration_ms", duration,
	)
	return rows, nil
}
