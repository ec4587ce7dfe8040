// internal/wordstore/wordstore.go
//
// SQLite-backed word lists.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Importing a language's word list and serving it back as a words.Source.

package wordstore

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/RubyShuey/Otter/internal/words"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store wraps the word database.
type Store struct {
	db *sql.DB
}

/**
 * Open opens (and creates if missing) a SQLite database file and migrates it.
 *
 * - Ensures parent directory exists for relative DSNs (e.g. ./data/words.db).
 * - Configures busy timeout and WAL journaling mode.
 */
func Open(ctx context.Context, dsn string) (*Store, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// migrate applies the embedded migrations in lexical order, skipping those
// already recorded in _migrations. Each runs in its own transaction.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlText, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlText)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Import replaces the word list of lang with the words read from r, using
// the same parsing rules as words.Load. It returns the number of words stored.
func (s *Store) Import(ctx context.Context, lang string, r io.Reader) (int, error) {
	bank, err := words.Load(r, lang)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE lang=?`, lang); err != nil {
		return 0, fmt.Errorf("clear %s: %w", lang, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words(lang, word, length) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for _, length := range bank.Lengths() {
		for _, w := range bank.WordsOf(length) {
			if _, err := stmt.ExecContext(ctx, lang, w.String(), length); err != nil {
				return 0, fmt.Errorf("insert %q: %w", w, err)
			}
			n++
		}
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO imports(lang, word_count, imported_at) VALUES (?, ?, ?)
        ON CONFLICT(lang) DO UPDATE SET word_count=excluded.word_count, imported_at=excluded.imported_at`,
		lang, n, time.Now().UTC(),
	); err != nil {
		return 0, fmt.Errorf("record import: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info().Str("lang", lang).Int("words", n).Msg("word list imported")
	return n, nil
}

// Words returns the words of lang ordered by length, then alphabetically.
func (s *Store) Words(ctx context.Context, lang string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM words WHERE lang=? ORDER BY length, word`, lang)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// LangStats summarizes one imported language.
type LangStats struct {
	Lang       string
	Words      int
	ImportedAt time.Time
}

// Languages lists the imported languages in alphabetical order.
func (s *Store) Languages(ctx context.Context) ([]LangStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT lang, word_count, imported_at FROM imports ORDER BY lang`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LangStats
	for rows.Next() {
		var ls LangStats
		if err := rows.Scan(&ls.Lang, &ls.Words, &ls.ImportedAt); err != nil {
			return nil, err
		}
		out = append(out, ls)
	}
	return out, rows.Err()
}

// Source returns a words.Source reading lang's list from the store.
func (s *Store) Source(lang string) words.Source {
	return source{store: s, lang: lang}
}

type source struct {
	store *Store
	lang  string
}

func (src source) Open(ctx context.Context) (io.ReadCloser, error) {
	list, err := src.store.Words(ctx, src.lang)
	if err != nil {
		return nil, fmt.Errorf("query %s words: %w", src.lang, err)
	}
	var buf bytes.Buffer
	for _, w := range list {
		buf.WriteString(w)
		buf.WriteByte('\n')
	}
	return io.NopCloser(&buf), nil
}

func (src source) String() string { return "sqlite:" + src.lang }
