package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/tropy"
)

// Ensure FileStore implements tropy.TropeWriter at compile time.
var _ tropy.TropeWriter = (*FileStore)(nil)

// FileStore exports tropes with atomic update semantics.
// Tropes are written to a temporary directory, then moved into place on Commit.
// A temporary directory left over from an earlier export is cleared before
// the first write.
type FileStore struct {
	baseDir  string
	name     string
	writer   *Writer
	prepared bool
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are written to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string, parser tropy.Parser, converter tropy.Converter) *FileStore {
	s := &FileStore{baseDir: baseDir, name: name}
	s.writer = NewWriter(s.tempDir(), parser, converter)
	return s
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// prepare removes a stale temporary directory, once per store.
func (s *FileStore) prepare() error {
	if s.prepared {
		return nil
	}
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return err
	}
	s.prepared = true
	return nil
}

// WriteTrope writes the trope into the pending export.
func (s *FileStore) WriteTrope(ctx context.Context, trope *tropy.Trope) error {
	if err := s.prepare(); err != nil {
		return err
	}
	return s.writer.WriteTrope(ctx, trope)
}

// Commit replaces any previous export with the pending one.
func (s *FileStore) Commit() error {
	if err := s.prepare(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the pending export.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
