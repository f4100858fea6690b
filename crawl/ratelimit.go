package crawl

import (
	"context"
	"net"
	"net/url"
	"sync"

	"github.com/fwojciec/tropy"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

var _ tropy.HostLimiter = (*HostLimiter)(nil)

// HostLimiter paces requests with one token bucket per registrable domain,
// so static.example.org and example.org share a budget while different
// sites proceed independently.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second per
// domain, with no bursting. A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request to rawURL's domain is allowed.
// Returns EINVALID for a URL without a host, or the context's error if it
// is canceled first.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	key, err := domainKey(rawURL)
	if err != nil {
		return err
	}

	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, 1)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

func domainKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "", tropy.Errorf(tropy.EINVALID, "no host in url %q", rawURL)
	}
	host := u.Hostname()
	if net.ParseIP(host) != nil {
		return host, nil
	}
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return domain, nil
	}
	return host, nil
}
