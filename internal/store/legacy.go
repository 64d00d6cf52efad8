package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"str8ts-cli/internal/board"
)

const legacySaveFileName = "game_state.json"

// legacyDecodeError marks a game_state.json that exists but cannot be
// decoded. Write paths skip the import and keep working; the error only
// surfaces on a load, where the imported board would have been needed.
type legacyDecodeError struct {
	err error
}

func (e legacyDecodeError) Error() string { return e.err.Error() }
func (e legacyDecodeError) Unwrap() error { return e.err }

// importLegacySave performs a one-time import of the old single-file JSON
// savegame into the "default" slot. The legacy format is an array of 81
// tuples: [value, isWhite, isFixed, smallValues[9]], value -1 for empty.
// Pencil marks are session-only and are not carried over.
func (s Store) importLegacySave(ctx context.Context, db *sql.DB) error {
	var done string
	_ = db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = 'legacy_imported'`).Scan(&done)
	if done == "1" {
		return nil
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM saves`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return s.markLegacyImported(ctx, db)
	}

	raw, err := os.ReadFile(filepath.Join(s.Dir, legacySaveFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.markLegacyImported(ctx, db)
		}
		return err
	}

	b, err := decodeLegacyCells(raw)
	if err != nil {
		// Not marked imported: fixing the file by hand lets the next
		// open pick it up.
		return legacyDecodeError{err: err}
	}

	cells := b.Cells()
	wire := make([]savedCell, board.NumCells)
	for i, c := range cells {
		wire[i] = savedCell{V: c.Value, B: c.Color == board.Black, F: c.Fixed}
	}
	enc, err := json.Marshal(wire)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO saves(name, cells_json, updated_at_unixms) VALUES(?, ?, ?)`,
		DefaultSaveName, string(enc), time.Now().UTC().UnixMilli()); err != nil {
		return err
	}
	return s.markLegacyImported(ctx, db)
}

func (s Store) markLegacyImported(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES('legacy_imported', '1')`)
	return err
}

func decodeLegacyCells(raw []byte) (*board.Board, error) {
	var tuples [][]json.RawMessage
	if err := json.Unmarshal(raw, &tuples); err != nil {
		return nil, fmt.Errorf("malformed legacy save: %w", err)
	}
	if len(tuples) != board.NumCells {
		return nil, fmt.Errorf("malformed legacy save: %d cells, want %d", len(tuples), board.NumCells)
	}

	var cells [board.NumCells]board.Cell
	for i, tup := range tuples {
		if len(tup) != 4 {
			return nil, fmt.Errorf("malformed legacy save: cell %d has %d fields", i, len(tup))
		}
		var value int
		var isWhite, isFixed bool
		var small []bool
		if err := json.Unmarshal(tup[0], &value); err != nil {
			return nil, fmt.Errorf("malformed legacy save: cell %d value: %w", i, err)
		}
		if err := json.Unmarshal(tup[1], &isWhite); err != nil {
			return nil, fmt.Errorf("malformed legacy save: cell %d color: %w", i, err)
		}
		if err := json.Unmarshal(tup[2], &isFixed); err != nil {
			return nil, fmt.Errorf("malformed legacy save: cell %d fixed: %w", i, err)
		}
		if err := json.Unmarshal(tup[3], &small); err != nil {
			return nil, fmt.Errorf("malformed legacy save: cell %d small values: %w", i, err)
		}
		if value != -1 && (value < 1 || value > 9) {
			return nil, fmt.Errorf("malformed legacy save: cell %d value %d", i, value)
		}
		if len(small) != 9 {
			return nil, fmt.Errorf("malformed legacy save: cell %d has %d small values", i, len(small))
		}

		c := board.Cell{Fixed: isFixed}
		if value > 0 {
			c.Value = value
		}
		if !isWhite {
			c.Color = board.Black
			// The old app could attach clue digits to black cells; the
			// board model keeps black cells digit-free.
			c.Value = 0
			c.Fixed = false
		}
		cells[i] = c
	}
	return board.Restore(cells), nil
}
