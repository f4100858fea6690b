package mock

import (
	"context"

	"github.com/fwojciec/tropy"
)

var _ tropy.TropeService = (*TropeService)(nil)

// TropeService is a mock implementation of tropy.TropeService.
type TropeService struct {
	CreateTropeFn            func(ctx context.Context, trope *tropy.Trope) error
	FindTropeByURLFn         func(ctx context.Context, url string) (*tropy.Trope, error)
	FindTropeIDsFn           func(ctx context.Context) ([]string, error)
	FindURLsMissingContentFn func(ctx context.Context) ([]string, error)
	ResolveTropeFn           func(ctx context.Context, trope *tropy.Trope) error
	FindTropesFn             func(ctx context.Context, filter tropy.TropeFilter) ([]*tropy.Trope, error)
}

func (s *TropeService) CreateTrope(ctx context.Context, trope *tropy.Trope) error {
	return s.CreateTropeFn(ctx, trope)
}

func (s *TropeService) FindTropeByURL(ctx context.Context, url string) (*tropy.Trope, error) {
	return s.FindTropeByURLFn(ctx, url)
}

func (s *TropeService) FindTropeIDs(ctx context.Context) ([]string, error) {
	return s.FindTropeIDsFn(ctx)
}

func (s *TropeService) FindURLsMissingContent(ctx context.Context) ([]string, error) {
	return s.FindURLsMissingContentFn(ctx)
}

func (s *TropeService) ResolveTrope(ctx context.Context, trope *tropy.Trope) error {
	return s.ResolveTropeFn(ctx, trope)
}

func (s *TropeService) FindTropes(ctx context.Context, filter tropy.TropeFilter) ([]*tropy.Trope, error) {
	return s.FindTropesFn(ctx, filter)
}

var _ tropy.TropeExtractor = (*TropeExtractor)(nil)

// TropeExtractor is a mock implementation of tropy.TropeExtractor.
type TropeExtractor struct {
	ListTropesFn func(ctx context.Context, url string) ([]*tropy.Trope, error)
	FetchTropeFn func(ctx context.Context, url string) (*tropy.Trope, error)
}

func (e *TropeExtractor) ListTropes(ctx context.Context, url string) ([]*tropy.Trope, error) {
	return e.ListTropesFn(ctx, url)
}

func (e *TropeExtractor) FetchTrope(ctx context.Context, url string) (*tropy.Trope, error) {
	return e.FetchTropeFn(ctx, url)
}
