package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/tropy"
	"github.com/fwojciec/tropy/mock"
	tropyslog "github.com/fwojciec/tropy/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_ListTropes(t *testing.T) {
	t.Parallel()

	t.Run("logs reference count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		e := tropyslog.NewLoggingExtractor(&mock.TropeExtractor{
			ListTropesFn: func(ctx context.Context, url string) ([]*tropy.Trope, error) {
				return []*tropy.Trope{{ID: "A"}, {ID: "B"}}, nil
			},
		}, debugLogger(&buf))

		tropes, err := e.ListTropes(context.Background(), "http://tvtropes.org/list")
		require.NoError(t, err)
		assert.Len(t, tropes, 2)
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), `msg="list tropes"`)
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("warns on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		e := tropyslog.NewLoggingExtractor(&mock.TropeExtractor{
			ListTropesFn: func(ctx context.Context, url string) ([]*tropy.Trope, error) {
				return nil, tropy.Errorf(tropy.ENOTIMPLEMENTED, "no strategy")
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := e.ListTropes(context.Background(), "http://tvtropes.org/list")
		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "message=no strategy")
	})
}

func TestLoggingExtractor_FetchTrope(t *testing.T) {
	t.Parallel()

	t.Run("logs resolved trope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		e := tropyslog.NewLoggingExtractor(&mock.TropeExtractor{
			FetchTropeFn: func(ctx context.Context, url string) (*tropy.Trope, error) {
				return &tropy.Trope{ID: "FooBar", Type: "Film", URL: url, Content: "<p></p>"}, nil
			},
		}, debugLogger(&buf))

		trope, err := e.FetchTrope(context.Background(), "http://tvtropes.org/pmwiki/pmwiki.php/Film/FooBar")
		require.NoError(t, err)
		assert.Equal(t, "FooBar", trope.ID)
		output := buf.String()
		assert.Contains(t, output, `msg="fetch trope"`)
		assert.Contains(t, output, "id=FooBar")
		assert.Contains(t, output, "type=Film")
		assert.Contains(t, output, "bytes=7")
	})

	t.Run("logs default trope as not found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		e := tropyslog.NewLoggingExtractor(&mock.TropeExtractor{
			FetchTropeFn: func(ctx context.Context, url string) (*tropy.Trope, error) {
				return &tropy.Trope{}, nil
			},
		}, debugLogger(&buf))

		_, err := e.FetchTrope(context.Background(), "http://tvtropes.org/x")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "found=false")
	})

	t.Run("stays quiet on success above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		e := tropyslog.NewLoggingExtractor(&mock.TropeExtractor{
			FetchTropeFn: func(ctx context.Context, url string) (*tropy.Trope, error) {
				return &tropy.Trope{ID: "FooBar"}, nil
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := e.FetchTrope(context.Background(), "http://tvtropes.org/x")
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("warns on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		e := tropyslog.NewLoggingExtractor(&mock.TropeExtractor{
			FetchTropeFn: func(ctx context.Context, url string) (*tropy.Trope, error) {
				return nil, tropy.Errorf(tropy.EINVALID, "off site")
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := e.FetchTrope(context.Background(), "invalid_url")
		assert.Equal(t, tropy.EINVALID, tropy.ErrorCode(err))
		assert.Contains(t, buf.String(), "level=WARN")
	})
}
