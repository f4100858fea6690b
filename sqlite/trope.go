package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/fwojciec/tropy"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ tropy.TropeService = (*TropeService)(nil)

// TropeService implements tropy.TropeService using SQLite.
type TropeService struct {
	db     *DB
	logger *slog.Logger
}

// NewTropeService creates a new TropeService. A nil logger discards.
func NewTropeService(db *DB, logger *slog.Logger) *TropeService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TropeService{db: db, logger: logger}
}

// CreateTrope stores a new trope. If a trope with the same ID or URL is
// already stored the insert is rejected by the database, logged, and
// treated as done.
func (s *TropeService) CreateTrope(ctx context.Context, trope *tropy.Trope) error {
	if err := trope.Validate(); err != nil {
		return err
	}

	err := s.insert(ctx, trope)
	if isConstraint(err) {
		s.logger.Info("trope already stored", "id", trope.ID, "url", trope.URL)
		return nil
	}
	return err
}

func (s *TropeService) insert(ctx context.Context, trope *tropy.Trope) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tropes (id, type, name, url, content)
		VALUES (?, ?, ?, ?, ?)
	`, trope.ID, trope.Type, trope.Name, trope.URL, trope.Content)
	return err
}

// FindTropeByURL retrieves a trope by URL.
// Returns the default empty trope if none matches.
func (s *TropeService) FindTropeByURL(ctx context.Context, url string) (*tropy.Trope, error) {
	var trope tropy.Trope

	err := s.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(type, ''), COALESCE(name, ''), url, COALESCE(content, '')
		FROM tropes
		WHERE url = ?
	`, url).Scan(&trope.ID, &trope.Type, &trope.Name, &trope.URL, &trope.Content)

	if err == sql.ErrNoRows {
		return &tropy.Trope{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &trope, nil
}

// FindTropeIDs returns the IDs of every stored trope.
func (s *TropeService) FindTropeIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM tropes")
	if err != nil {
		return nil, err
	}
	return scanStrings(rows)
}

// FindURLsMissingContent returns the URL of every stored trope whose content
// is the empty string.
func (s *TropeService) FindURLsMissingContent(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT url FROM tropes WHERE content = ''")
	if err != nil {
		return nil, err
	}
	return scanStrings(rows)
}

// ResolveTrope records the result of a detail fetch. The stored reference
// for trope.URL gets its ID, type and content filled in, provided it has
// no content yet; the stored name is kept. An unknown URL is inserted, and
// an already resolved one is left untouched.
func (s *TropeService) ResolveTrope(ctx context.Context, trope *tropy.Trope) error {
	if err := trope.Validate(); err != nil {
		return err
	}
	if !trope.IsResolved() {
		return tropy.Errorf(tropy.EINVALID, "trope content required")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tropes
		SET id = ?, type = ?, content = ?
		WHERE url = ? AND content = ''
	`, trope.ID, trope.Type, trope.Content, trope.URL)
	if isConstraint(err) {
		return tropy.Errorf(tropy.ECONFLICT, "trope id %q already belongs to another url", trope.ID)
	}
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	existing, err := s.FindTropeByURL(ctx, trope.URL)
	if err != nil {
		return err
	}
	if !existing.IsZero() {
		s.logger.Info("trope already resolved", "id", existing.ID, "url", trope.URL)
		return nil
	}

	if err := s.insert(ctx, trope); isConstraint(err) {
		return tropy.Errorf(tropy.ECONFLICT, "trope id %q already belongs to another url", trope.ID)
	} else if err != nil {
		return err
	}
	return nil
}

// FindTropes retrieves tropes matching the filter, ordered by ID.
func (s *TropeService) FindTropes(ctx context.Context, filter tropy.TropeFilter) ([]*tropy.Trope, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, COALESCE(type, ''), COALESCE(name, ''), url, COALESCE(content, '') FROM tropes WHERE 1=1")

	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, *filter.Type)
	}
	if filter.Resolved != nil {
		if *filter.Resolved {
			query.WriteString(" AND content != ''")
		} else {
			query.WriteString(" AND content = ''")
		}
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tropes []*tropy.Trope
	for rows.Next() {
		var trope tropy.Trope
		if err := rows.Scan(&trope.ID, &trope.Type, &trope.Name, &trope.URL, &trope.Content); err != nil {
			return nil, err
		}
		tropes = append(tropes, &trope)
	}

	return tropes, rows.Err()
}

// isConstraint reports whether err is a uniqueness or other constraint violation.
func isConstraint(err error) bool {
	return err != nil && errors.Is(err, sqlite3.CONSTRAINT)
}
