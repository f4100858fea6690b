package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tropy"
)

// Ensure LoggingTropeService implements tropy.TropeService.
var _ tropy.TropeService = (*LoggingTropeService)(nil)

// LoggingTropeService wraps a TropeService with debug logging.
type LoggingTropeService struct {
	next   tropy.TropeService
	logger *slog.Logger
}

// NewLoggingTropeService creates a new LoggingTropeService.
func NewLoggingTropeService(next tropy.TropeService, logger *slog.Logger) *LoggingTropeService {
	return &LoggingTropeService{next: next, logger: logger}
}

func (s *LoggingTropeService) CreateTrope(ctx context.Context, trope *tropy.Trope) (err error) {
	defer func(begin time.Time) {
		s.log("create trope", begin, err, "id", trope.ID, "url", trope.URL)
	}(time.Now())
	return s.next.CreateTrope(ctx, trope)
}

func (s *LoggingTropeService) FindTropeByURL(ctx context.Context, url string) (trope *tropy.Trope, err error) {
	defer func(begin time.Time) {
		s.log("find trope by url", begin, err, "url", url, "found", !trope.IsZero())
	}(time.Now())
	return s.next.FindTropeByURL(ctx, url)
}

func (s *LoggingTropeService) FindTropeIDs(ctx context.Context) (ids []string, err error) {
	defer func(begin time.Time) {
		s.log("find trope ids", begin, err, "count", len(ids))
	}(time.Now())
	return s.next.FindTropeIDs(ctx)
}

func (s *LoggingTropeService) FindURLsMissingContent(ctx context.Context) (urls []string, err error) {
	defer func(begin time.Time) {
		s.log("find urls missing content", begin, err, "count", len(urls))
	}(time.Now())
	return s.next.FindURLsMissingContent(ctx)
}

func (s *LoggingTropeService) ResolveTrope(ctx context.Context, trope *tropy.Trope) (err error) {
	defer func(begin time.Time) {
		s.log("resolve trope", begin, err, "id", trope.ID, "url", trope.URL, "bytes", len(trope.Content))
	}(time.Now())
	return s.next.ResolveTrope(ctx, trope)
}

func (s *LoggingTropeService) FindTropes(ctx context.Context, filter tropy.TropeFilter) (tropes []*tropy.Trope, err error) {
	defer func(begin time.Time) {
		s.log("find tropes", begin, err, "count", len(tropes))
	}(time.Now())
	return s.next.FindTropes(ctx, filter)
}

func (s *LoggingTropeService) log(msg string, begin time.Time, err error, attrs ...any) {
	attrs = append(attrs, "duration", time.Since(begin))
	if err != nil {
		attrs = append(attrs, "err", err)
	}
	s.logger.Debug(msg, attrs...)
}
