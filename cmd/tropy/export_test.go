package main_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/tropy"
	main "github.com/fwojciec/tropy/cmd/tropy"
	"github.com/fwojciec/tropy/goquery"
	"github.com/fwojciec/tropy/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportDeps(tropes []*tropy.Trope, filters *[]tropy.TropeFilter, stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Tropes: &mock.TropeService{
			FindTropesFn: func(_ context.Context, filter tropy.TropeFilter) ([]*tropy.Trope, error) {
				*filters = append(*filters, filter)
				if filter.Offset >= len(tropes) {
					return nil, nil
				}
				end := min(filter.Offset+filter.Limit, len(tropes))
				return tropes[filter.Offset:end], nil
			},
		},
		Parser: goquery.NewParser(),
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) { return html, nil },
		},
	}
}

func resolvedTropes(n int) []*tropy.Trope {
	tropes := make([]*tropy.Trope, n)
	for i := range tropes {
		id := fmt.Sprintf("Trope%03d", i)
		tropes[i] = &tropy.Trope{ID: id, Type: "Main", URL: "http://tvtropes.org/pmwiki/pmwiki.php/Main/" + id, Content: "<p>" + id + "</p>"}
	}
	return tropes
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes every resolved trope in batches", func(t *testing.T) {
		t.Parallel()

		var filters []tropy.TropeFilter
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		dir := filepath.Join(t.TempDir(), "out")
		deps := exportDeps(resolvedTropes(150), &filters, stdout, stderr)

		err := (&main.ExportCmd{Dir: dir}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Exported 150 tropes")
		entries, err := os.ReadDir(filepath.Join(dir, "Main"))
		require.NoError(t, err)
		assert.Len(t, entries, 150)

		require.Len(t, filters, 2)
		for _, f := range filters {
			require.NotNil(t, f.Resolved)
			assert.True(t, *f.Resolved)
			assert.Nil(t, f.Type)
		}
		assert.Equal(t, 0, filters[0].Offset)
		assert.Equal(t, 100, filters[1].Offset)
	})

	t.Run("filters by type", func(t *testing.T) {
		t.Parallel()

		var filters []tropy.TropeFilter
		deps := exportDeps(nil, &filters, &bytes.Buffer{}, &bytes.Buffer{})

		err := (&main.ExportCmd{Dir: filepath.Join(t.TempDir(), "out"), Type: "Film"}).Run(deps)

		require.NoError(t, err)
		require.Len(t, filters, 1)
		require.NotNil(t, filters[0].Type)
		assert.Equal(t, "Film", *filters[0].Type)
	})

	t.Run("keeps previous export when a write fails", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "out")
		previous := filepath.Join(dir, "Main", "Old.md")
		require.NoError(t, os.MkdirAll(filepath.Dir(previous), 0755))
		require.NoError(t, os.WriteFile(previous, []byte("old"), 0644))

		tropes := resolvedTropes(2)
		tropes[1].ID = "../bad"
		var filters []tropy.TropeFilter
		stderr := &bytes.Buffer{}
		deps := exportDeps(tropes, &filters, &bytes.Buffer{}, stderr)

		err := (&main.ExportCmd{Dir: dir}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, tropy.EINVALID, tropy.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
		_, err = os.Stat(previous)
		require.NoError(t, err)
		_, err = os.Stat(dir + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})
}
