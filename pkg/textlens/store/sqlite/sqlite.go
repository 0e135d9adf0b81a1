package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/lexicon"
	"github.com/cognicore/textlens/pkg/textlens/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS lexicon_entries (
	word TEXT NOT NULL,
	class TEXT NOT NULL,
	PRIMARY KEY(word, class)
);

CREATE TABLE IF NOT EXISTS lemma_forms (
	lemma TEXT NOT NULL,
	position INTEGER NOT NULL,
	form TEXT NOT NULL,
	PRIMARY KEY(lemma, position)
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertEntries inserts class memberships in a single transaction
func (s *sqliteStore) UpsertEntries(ctx context.Context, entries []lexicon.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO lexicon_entries (word, class) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.Word == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, e.Word, string(e.Class)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) DeleteEntry(ctx context.Context, e lexicon.Entry) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lexicon_entries WHERE word = ? AND class = ?`, e.Word, string(e.Class))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %q", internalerr.ErrNotFound, e.Class, e.Word)
	}
	return nil
}

// Entries returns all memberships sorted by class then word
func (s *sqliteStore) Entries(ctx context.Context) ([]lexicon.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, class FROM lexicon_entries ORDER BY class, word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []lexicon.Entry
	for rows.Next() {
		var word, class string
		if err := rows.Scan(&word, &class); err != nil {
			return nil, err
		}
		c, err := lexicon.ParseClass(class)
		if err != nil {
			return nil, fmt.Errorf("%w: stored entry %q: %v", internalerr.ErrInvalidConfig, word, err)
		}
		out = append(out, lexicon.Entry{Word: word, Class: c})
	}
	return out, rows.Err()
}

// UpsertLemma replaces the forms of a lemma group, preserving their order
func (s *sqliteStore) UpsertLemma(ctx context.Context, lemma string, forms []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lemma_forms WHERE lemma = ?`, lemma); err != nil {
		return err
	}
	for i, f := range forms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lemma_forms (lemma, position, form) VALUES (?, ?, ?)`,
			lemma, i, f,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) DeleteLemma(ctx context.Context, lemma string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lemma_forms WHERE lemma = ?`, lemma)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: lemma %q", internalerr.ErrNotFound, lemma)
	}
	return nil
}

func (s *sqliteStore) Lemmas(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT lemma, form FROM lemma_forms ORDER BY lemma, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var lemma, form string
		if err := rows.Scan(&lemma, &form); err != nil {
			return nil, err
		}
		out[lemma] = append(out[lemma], form)
	}
	return out, rows.Err()
}
