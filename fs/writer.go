// Package fs exports tropes as markdown files.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/tropy"
	"gopkg.in/yaml.v3"
)

// DefaultTypeDir is the directory for tropes without a type.
const DefaultTypeDir = "Main"

// TropePath returns the path of a trope's file relative to the export root:
// <Type>/<ID>.md, with DefaultTypeDir standing in for an empty type.
func TropePath(trope *tropy.Trope) (string, error) {
	dir := trope.Type
	if dir == "" {
		dir = DefaultTypeDir
	}
	for _, part := range []string{dir, trope.ID} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", tropy.Errorf(tropy.EINVALID, "cannot export trope %q of type %q", trope.ID, trope.Type)
		}
	}
	return filepath.Join(dir, trope.ID+".md"), nil
}

type frontmatter struct {
	ID     string `yaml:"id"`
	Type   string `yaml:"type"`
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Hash   string `yaml:"hash"`
}

// FormatTrope formats a trope's markdown body with YAML frontmatter.
func FormatTrope(trope *tropy.Trope, body string) (string, error) {
	meta, err := yaml.Marshal(frontmatter{
		ID:     trope.ID,
		Type:   trope.Type,
		Name:   trope.Name,
		Source: trope.URL,
		Hash:   fmt.Sprintf("%016x", xxhash.Sum64String(trope.Content)),
	})
	if err != nil {
		return "", tropy.Errorf(tropy.EINTERNAL, "encoding frontmatter for trope %q: %v", trope.ID, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}

// Ensure Writer implements tropy.TropeWriter at compile time.
var _ tropy.TropeWriter = (*Writer)(nil)

// Writer writes resolved tropes as markdown files to a directory.
type Writer struct {
	baseDir   string
	parser    tropy.Parser
	converter tropy.Converter
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string, parser tropy.Parser, converter tropy.Converter) *Writer {
	return &Writer{baseDir: baseDir, parser: parser, converter: converter}
}

// WriteTrope converts the trope page's main body to markdown and writes it
// to disk. Pages without a main body are converted whole.
func (w *Writer) WriteTrope(ctx context.Context, trope *tropy.Trope) error {
	if err := trope.Validate(); err != nil {
		return err
	}
	if !trope.IsResolved() {
		return tropy.Errorf(tropy.EINVALID, "trope %q has no content to export", trope.ID)
	}

	relPath, err := TropePath(trope)
	if err != nil {
		return err
	}

	doc, err := w.parser.Parse(trope.URL, trope.Content)
	if err != nil {
		return err
	}
	html, ok := tropy.ContentRegion(doc)
	if !ok {
		html = trope.Content
	}
	body, err := w.converter.Convert(html)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatTrope(trope, body)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
