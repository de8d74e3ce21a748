// Package store handles SQLite persistence of lookup history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuidict/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for lookup history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lookups (
			id INTEGER PRIMARY KEY,
			looked_up_at TEXT NOT NULL,
			dictionary_path TEXT NOT NULL,
			kind TEXT NOT NULL,
			term TEXT NOT NULL,
			found INTEGER NOT NULL,
			entry_name TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lookups_looked_up_at ON lookups(looked_up_at);`,
		`CREATE INDEX IF NOT EXISTS idx_lookups_term ON lookups(term);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record implements the session recorder by inserting the lookup.
func (s *Store) Record(ctx context.Context, lookup model.Lookup) error {
	_, err := s.InsertLookup(ctx, lookup)
	return err
}

// InsertLookup stores a lookup and returns its id.
func (s *Store) InsertLookup(ctx context.Context, lookup model.Lookup) (int64, error) {
	found := 0
	if lookup.Found {
		found = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO lookups (looked_up_at, dictionary_path, kind, term, found, entry_name)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		lookup.LookedUpAt.UTC().Format(timeLayout),
		lookup.DictionaryPath,
		string(lookup.Kind),
		lookup.Term,
		found,
		lookup.EntryName,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListLookups returns lookups filtered by cfg, oldest first. Last keeps only
// the most recent N rows.
func (s *Store) ListLookups(ctx context.Context, cfg model.HistoryConfig) ([]model.Lookup, error) {
	where, args := historyFilter(cfg)
	query := fmt.Sprintf(`SELECT id, looked_up_at, dictionary_path, kind, term, found, entry_name
		FROM lookups
		WHERE %s
		ORDER BY looked_up_at DESC, id DESC`, where)
	if cfg.Last > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var lookups []model.Lookup
	for rows.Next() {
		var l model.Lookup
		var at, kind string
		var found int
		if err := rows.Scan(&l.ID, &at, &l.DictionaryPath, &kind, &l.Term, &found, &l.EntryName); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, at)
		if err != nil {
			return nil, err
		}
		l.LookedUpAt = parsed
		l.Kind = model.LookupKind(kind)
		l.Found = found != 0
		lookups = append(lookups, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(lookups)-1; i < j; i, j = i+1, j-1 {
		lookups[i], lookups[j] = lookups[j], lookups[i]
	}
	return lookups, nil
}

// TermAggregates counts searches per term, ignoring ASCII case.
func (s *Store) TermAggregates(ctx context.Context, cfg model.HistoryConfig) ([]model.TermAggregate, error) {
	where, args := historyFilter(cfg)
	query := fmt.Sprintf(`SELECT LOWER(term) AS t, COUNT(*) AS searches, SUM(found) AS hits
		FROM lookups
		WHERE kind = ? AND %s
		GROUP BY t`, where)
	args = append([]any{string(model.LookupSearch)}, args...)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.TermAggregate
	for rows.Next() {
		var agg model.TermAggregate
		if err := rows.Scan(&agg.Term, &agg.Searches, &agg.Hits); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Totals counts every lookup in the Since window. Last does not apply.
func (s *Store) Totals(ctx context.Context, cfg model.HistoryConfig) (model.LookupTotals, error) {
	where, args := historyFilter(cfg)
	query := fmt.Sprintf(`SELECT COUNT(*),
			COALESCE(SUM(kind = ?), 0),
			COALESCE(SUM(kind = ? AND found = 1), 0),
			COALESCE(SUM(kind = ?), 0)
		FROM lookups
		WHERE %s`, where)
	args = append([]any{
		string(model.LookupSearch),
		string(model.LookupSearch),
		string(model.LookupRandom),
	}, args...)

	var totals model.LookupTotals
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&totals.Lookups, &totals.Searches, &totals.Hits, &totals.Random)
	if err != nil {
		return model.LookupTotals{}, err
	}
	return totals, nil
}

func historyFilter(cfg model.HistoryConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "looked_up_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	return strings.Join(clauses, " AND "), args
}
