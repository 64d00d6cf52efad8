// Package segment derives the straight structure of a board: the maximal
// contiguous white runs per row and per column. The index is a pure snapshot
// of the black/white pattern and is rebuilt from scratch whenever a cell
// changes color; it is never patched incrementally.
package segment

import "str8ts-cli/internal/board"

// Line is one full row or column together with its white runs.
type Line struct {
	Cells    []board.Pos
	Segments [][]board.Pos
}

// Index holds the 9 row lines and 9 column lines and a per-cell lookup of
// the segment each white cell belongs to.
type Index struct {
	Rows [board.Size]Line
	Cols [board.Size]Line

	rowSegOf [board.NumCells]int // ordinal into Rows[r].Segments; -1 for black
	colSegOf [board.NumCells]int
}

// Rebuild scans the board and returns a fresh index. Deterministic, O(81).
func Rebuild(b *board.Board) *Index {
	ix := &Index{}
	for i := range ix.rowSegOf {
		ix.rowSegOf[i] = -1
		ix.colSegOf[i] = -1
	}

	for r := 0; r < board.Size; r++ {
		cells := make([]board.Pos, board.Size)
		for c := 0; c < board.Size; c++ {
			cells[c] = board.Pos{Row: r, Col: c}
		}
		ix.Rows[r] = Line{Cells: cells, Segments: splitWhiteRuns(b, cells)}
		for k, seg := range ix.Rows[r].Segments {
			for _, p := range seg {
				ix.rowSegOf[p.Index()] = k
			}
		}
	}
	for c := 0; c < board.Size; c++ {
		cells := make([]board.Pos, board.Size)
		for r := 0; r < board.Size; r++ {
			cells[r] = board.Pos{Row: r, Col: c}
		}
		ix.Cols[c] = Line{Cells: cells, Segments: splitWhiteRuns(b, cells)}
		for k, seg := range ix.Cols[c].Segments {
			for _, p := range seg {
				ix.colSegOf[p.Index()] = k
			}
		}
	}
	return ix
}

// splitWhiteRuns cuts a line into maximal white runs, dropping black cells.
func splitWhiteRuns(b *board.Board, cells []board.Pos) [][]board.Pos {
	var runs [][]board.Pos
	var cur []board.Pos
	for _, p := range cells {
		if b.At(p).Color == board.Black {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// RowSegment returns the row straight containing p, or nil for black cells.
func (ix *Index) RowSegment(p board.Pos) []board.Pos {
	k := ix.rowSegOf[p.Index()]
	if k < 0 {
		return nil
	}
	return ix.Rows[p.Row].Segments[k]
}

// ColSegment returns the column straight containing p, or nil for black cells.
func (ix *Index) ColSegment(p board.Pos) []board.Pos {
	k := ix.colSegOf[p.Index()]
	if k < 0 {
		return nil
	}
	return ix.Cols[p.Col].Segments[k]
}

// Lines returns all 18 lines, rows first. The validator walks these for the
// duplicate rule (whole line) and the straight rule (per segment).
func (ix *Index) Lines() []Line {
	out := make([]Line, 0, 2*board.Size)
	for i := range ix.Rows {
		out = append(out, ix.Rows[i])
	}
	for i := range ix.Cols {
		out = append(out, ix.Cols[i])
	}
	return out
}
