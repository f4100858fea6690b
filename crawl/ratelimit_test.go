package crawl_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/tropy"
	"github.com/fwojciec/tropy/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements tropy.HostLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ tropy.HostLimiter = crawl.NewHostLimiter(1)
	})

	t.Run("allows immediate first request", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "http://tvtropes.org/pmwiki/pmwiki.php/Main/FooBar")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("paces requests to the same domain", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "http://tvtropes.org/a"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "http://tvtropes.org/b")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("subdomains share their domain's budget", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "http://tvtropes.org/a"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://static.tvtropes.org/b")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("different domains have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "http://tvtropes.org/a"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "http://example.com/a")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("non-positive rate does not limit", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(0)

		start := time.Now()
		for range 20 {
			require.NoError(t, limiter.Wait(context.Background(), "http://tvtropes.org/a"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("url without host is invalid", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(10)

		for _, raw := range []string{"", "invalid_url", "/pmwiki/pmwiki.php/Main/FooBar", "http://%zz"} {
			err := limiter.Wait(context.Background(), raw)
			require.Error(t, err, raw)
			assert.Equal(t, tropy.EINVALID, tropy.ErrorCode(err), raw)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(1)

		require.NoError(t, limiter.Wait(context.Background(), "http://tvtropes.org/a"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "http://tvtropes.org/a"))
	})

	t.Run("concurrent requests all complete", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewHostLimiter(100)

		var wg sync.WaitGroup
		var completed atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background(), "http://tvtropes.org/a"); err == nil {
					completed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(5), completed.Load())
	})
}
