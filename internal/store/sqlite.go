package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), "str8ts.sqlite")
}

// openSQLite opens the database, migrates, and attempts the one-time legacy
// import. strictImport controls whether a corrupt legacy file fails the open:
// loads want the error surfaced, while writes, listing and deletion must not
// be wedged by a file they don't depend on.
func (s Store) openSQLite(ctx context.Context, strictImport bool) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when a second process peeks at saves.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.importLegacySave(ctx, db); err != nil {
		var dec legacyDecodeError
		if strictImport || !errors.As(err, &dec) {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS saves (
			name TEXT PRIMARY KEY,
			cells_json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s Store) writeSlot(ctx context.Context, name, cellsJSON string) error {
	db, err := s.openSQLite(ctx, false)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO saves(name, cells_json, updated_at_unixms) VALUES(?, ?, ?)`,
		name, cellsJSON, time.Now().UTC().UnixMilli())
	return err
}

func (s Store) readSlot(ctx context.Context, name string) (string, bool, error) {
	db, err := s.openSQLite(ctx, true)
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT cells_json FROM saves WHERE name = ?`, name).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

// List returns all slots, most recently written first.
func (s Store) List(ctx context.Context) ([]SaveMeta, error) {
	db, err := s.openSQLite(ctx, false)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT name, updated_at_unixms FROM saves ORDER BY updated_at_unixms DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SaveMeta{}
	for rows.Next() {
		var name string
		var ms int64
		if err := rows.Scan(&name, &ms); err != nil {
			return nil, err
		}
		out = append(out, SaveMeta{Name: name, UpdatedAt: time.UnixMilli(ms).UTC()})
	}
	return out, rows.Err()
}

// Delete removes a slot; deleting a missing slot is not an error.
func (s Store) Delete(ctx context.Context, name string) error {
	db, err := s.openSQLite(ctx, false)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM saves WHERE name = ?`, name)
	return err
}
