// Package store persists boards as named save slots in a per-user SQLite
// database. A save holds the minimal contract per cell: color, fixed flag
// and value; pencil marks, focus and mode are session-only.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"str8ts-cli/internal/board"
)

const DefaultSaveName = "default"

type Store struct {
	Dir string
}

type NotFoundError struct {
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("save not found: %s", e.Name)
}

// DefaultDir is ~/.str8ts unless the caller overrides Dir explicitly.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".str8ts"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// savedCell is the wire shape of one cell inside a slot's cells_json.
// Position is implied by the row-major array index.
type savedCell struct {
	V int  `json:"v,omitempty"`
	B bool `json:"b,omitempty"` // black
	F bool `json:"f,omitempty"` // fixed clue
}

type SaveMeta struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Save writes the board into the named slot, replacing any previous content.
func (s Store) Save(ctx context.Context, name string, b *board.Board) error {
	if name == "" {
		name = DefaultSaveName
	}
	cells := b.Cells()
	wire := make([]savedCell, board.NumCells)
	for i, c := range cells {
		wire[i] = savedCell{V: c.Value, B: c.Color == board.Black, F: c.Fixed}
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return err
	}
	return s.writeSlot(ctx, name, string(raw))
}

// Load reconstructs the board stored in the named slot. Malformed slot data
// surfaces as an error; the caller keeps whatever board it already had.
func (s Store) Load(ctx context.Context, name string) (*board.Board, error) {
	if name == "" {
		name = DefaultSaveName
	}
	raw, ok, err := s.readSlot(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundError{Name: name}
	}
	return decodeCells([]byte(raw), name)
}

func decodeCells(raw []byte, name string) (*board.Board, error) {
	var wire []savedCell
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("malformed save %q: %w", name, err)
	}
	if len(wire) != board.NumCells {
		return nil, fmt.Errorf("malformed save %q: %d cells, want %d", name, len(wire), board.NumCells)
	}
	var cells [board.NumCells]board.Cell
	for i, w := range wire {
		if w.V < 0 || w.V > 9 {
			return nil, fmt.Errorf("malformed save %q: cell %d value %d", name, i, w.V)
		}
		if w.B && w.V != 0 {
			return nil, fmt.Errorf("malformed save %q: black cell %d holds value %d", name, i, w.V)
		}
		c := board.Cell{Value: w.V, Fixed: w.F}
		if w.B {
			c.Color = board.Black
		}
		cells[i] = c
	}
	return board.Restore(cells), nil
}
