// internal/cache/sqlite.go
//
// SQLite-backed score cache.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Reading and replacing ranked score lists.

package cache

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

//go:embed sql/*.sql
var migrations embed.FS

// Open opens (and creates if missing) a SQLite database file.
//
//   - Ensures the parent directory exists for relative paths (e.g. ./data/scores.db).
//   - Configures busy timeout, WAL journaling and foreign keys on every connection.
//   - ":memory:" is pinned to a single connection so all queries see one database.
func Open(dsn string) (*sql.DB, error) {
	memory := dsn == ":memory:"
	if !memory {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if memory {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dsn, err)
	}
	return db, nil
}

// Migrate applies the embedded SQL migrations.
//
//   - Uses a _migrations table to track applied files.
//   - Executes each *.sql file in lexical order, each in its own transaction.
//   - Skips files already applied.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(migrations, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk sql dir: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
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

// SQLiteStore is a Store backed by the score_sets / score_entries tables.
type SQLiteStore struct{ db *sql.DB }

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore wraps a migrated database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore { return &SQLiteStore{db: db} }

// Get loads the ranked list for key in rank order.
func (s *SQLiteStore) Get(ctx context.Context, key Key) ([]solver.Entry, error) {
	var (
		id    int64
		count int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, word_count FROM score_sets WHERE word_len=? AND fingerprint=?`,
		key.Length, key.Fingerprint,
	).Scan(&id, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query score_sets: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word, entropy FROM score_entries WHERE set_id=? ORDER BY rank ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query score_entries: %w", err)
	}
	defer rows.Close()

	out := make([]solver.Entry, 0, count)
	for rows.Next() {
		var e solver.Entry
		if err := rows.Scan(&e.Word, &e.Entropy); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) != count {
		return nil, fmt.Errorf("cache: set %d has %d entries, want %d", id, len(out), count)
	}
	return out, nil
}

// Put replaces the ranked list for key inside one transaction.
func (s *SQLiteStore) Put(ctx context.Context, key Key, entries []solver.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM score_entries WHERE set_id IN
		   (SELECT id FROM score_sets WHERE word_len=? AND fingerprint=?)`,
		key.Length, key.Fingerprint,
	); err != nil {
		return fmt.Errorf("clear score_entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM score_sets WHERE word_len=? AND fingerprint=?`,
		key.Length, key.Fingerprint,
	); err != nil {
		return fmt.Errorf("clear score_sets: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO score_sets (word_len, fingerprint, word_count, created_at) VALUES (?,?,?,?)`,
		key.Length, key.Fingerprint, len(entries), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert score_sets: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO score_entries (set_id, rank, word, entropy) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, id, i, e.Word, e.Entropy); err != nil {
			return fmt.Errorf("insert score_entries: %w", err)
		}
	}
	return tx.Commit()
}
