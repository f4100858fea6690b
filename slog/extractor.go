package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tropy"
)

// Ensure LoggingExtractor implements tropy.TropeExtractor.
var _ tropy.TropeExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a TropeExtractor with logging of each page read.
// Failures are logged as warnings, everything else at debug level.
type LoggingExtractor struct {
	next   tropy.TropeExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next tropy.TropeExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ListTropes delegates and logs how many references the page yielded.
func (e *LoggingExtractor) ListTropes(ctx context.Context, url string) (tropes []*tropy.Trope, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "count", len(tropes), "duration", time.Since(begin)}
		if err != nil {
			e.logger.Warn("list tropes", append(attrs, "err", err)...)
			return
		}
		e.logger.Debug("list tropes", attrs...)
	}(time.Now())
	return e.next.ListTropes(ctx, url)
}

// FetchTrope delegates and logs the resolved trope.
func (e *LoggingExtractor) FetchTrope(ctx context.Context, url string) (trope *tropy.Trope, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if err != nil {
			e.logger.Warn("fetch trope", append(attrs, "err", err)...)
			return
		}
		if trope.IsZero() {
			e.logger.Debug("fetch trope", append(attrs, "found", false)...)
			return
		}
		attrs = append(attrs, "id", trope.ID, "type", trope.Type, "bytes", len(trope.Content))
		e.logger.Debug("fetch trope", attrs...)
	}(time.Now())
	return e.next.FetchTrope(ctx, url)
}
