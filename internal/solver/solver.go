// Package solver fills the unknown white cells of a board by backtracking
// search with constraint propagation. Fixed clues and pre-filled values are
// never touched; the input board is treated as immutable and the search runs
// on a private copy.
package solver

import (
	"context"
	"errors"

	"str8ts-cli/internal/board"
	"str8ts-cli/internal/segment"
)

// ErrUnsolvable reports that the search exhausted every branch, or that the
// clues already conflict so no completion can exist.
var ErrUnsolvable = errors.New("puzzle has no solution")

// Solve returns the first completion found under a deterministic ordering:
// most-constrained cell first, lowest index on ties, digits ascending. The
// caller's board is left unchanged. Cancellation of ctx aborts the search
// at the next node and returns ctx.Err().
func Solve(ctx context.Context, b *board.Board) (*board.Board, error) {
	s, err := newSearch(b)
	if err != nil {
		return nil, err
	}
	ok, err := s.run(ctx, 1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnsolvable
	}
	return s.first, nil
}

// Uniqueness classifies how many completions a board has, stopping the
// search as soon as a second one is found. The returned board is the first
// completion under the deterministic ordering, or nil when none exists.
type Uniqueness int

const (
	NoSolution Uniqueness = iota
	UniqueSolution
	MultipleSolutions
)

func Classify(ctx context.Context, b *board.Board) (Uniqueness, *board.Board, error) {
	s, err := newSearch(b)
	if err != nil {
		if errors.Is(err, ErrUnsolvable) {
			return NoSolution, nil, nil
		}
		return NoSolution, nil, err
	}
	if _, err := s.run(ctx, 2); err != nil {
		return NoSolution, nil, err
	}
	switch s.found {
	case 0:
		return NoSolution, nil, nil
	case 1:
		return UniqueSolution, s.first, nil
	default:
		return MultipleSolutions, s.first, nil
	}
}

// feasible is the search-time admissibility test: no duplicate digit in any
// full line, and no segment whose present digits already span a wider range
// than its length. Unlike rules.Evaluate's display flags it tolerates gaps
// in partially filled straights, since those may still close up.
func feasible(b *board.Board, ix *segment.Index) bool {
	for _, line := range ix.Lines() {
		var seen board.DigitSet
		for _, p := range line.Cells {
			v := b.At(p).Value
			if v == 0 {
				continue
			}
			if seen.Has(v) {
				return false
			}
			seen = seen.Add(v)
		}
		for _, seg := range line.Segments {
			min, max := 10, 0
			for _, p := range seg {
				if v := b.At(p).Value; v != 0 {
					if v < min {
						min = v
					}
					if v > max {
						max = v
					}
				}
			}
			if max != 0 && max-min+1 > len(seg) {
				return false
			}
		}
	}
	return true
}

type search struct {
	grid     *board.Board
	ix       *segment.Index
	unknowns []board.Pos

	found int
	first *board.Board
}

func newSearch(b *board.Board) (*search, error) {
	grid := b.Clone()
	ix := segment.Rebuild(grid)

	// Clues that already conflict cannot be rearranged; refuse to search.
	if !feasible(grid, ix) {
		return nil, ErrUnsolvable
	}

	var unknowns []board.Pos
	for i := 0; i < board.NumCells; i++ {
		p := board.PosAt(i)
		c := grid.At(p)
		if c.Color == board.White && c.Value == 0 {
			unknowns = append(unknowns, p)
		}
	}
	return &search{grid: grid, ix: ix, unknowns: unknowns}, nil
}

// run searches for up to limit completions. Returns whether at least one
// was found.
func (s *search) run(ctx context.Context, limit int) (bool, error) {
	if err := s.dfs(ctx, limit); err != nil {
		return false, err
	}
	return s.found > 0, nil
}

func (s *search) dfs(ctx context.Context, limit int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p, cands, done := s.pickCell()
	if done {
		s.found++
		if s.first == nil {
			s.first = s.grid.Clone()
		}
		return nil
	}
	if len(cands) == 0 {
		return nil
	}

	for _, v := range cands {
		s.grid.Place(p, v)
		if err := s.dfs(ctx, limit); err != nil {
			s.grid.Place(p, 0)
			return err
		}
		s.grid.Place(p, 0)
		if s.found >= limit {
			return nil
		}
	}
	return nil
}

// pickCell chooses the empty unknown with the fewest remaining candidates
// (lowest index wins ties). done is true when no unknown is empty.
func (s *search) pickCell() (board.Pos, []int, bool) {
	var best board.Pos
	var bestCands []int
	have := false
	for _, p := range s.unknowns {
		if s.grid.At(p).Value != 0 {
			continue
		}
		cands := s.candidates(p)
		if !have || len(cands) < len(bestCands) {
			have = true
			best = p
			bestCands = cands
			if len(cands) == 0 {
				break
			}
		}
	}
	if !have {
		return board.Pos{}, nil, true
	}
	return best, bestCands, false
}

// candidates computes the digits placeable at p right now: not present in
// the full row or column, and fitting the straight windows of both the row
// and column segment. The window test is the conservative pruning from the
// straights rule: a digit is kept only if the segment's eventual fill can
// still cover a contiguous range containing it.
func (s *search) candidates(p board.Pos) []int {
	used := s.lineValues(s.ix.Rows[p.Row]) | s.lineValues(s.ix.Cols[p.Col])

	out := make([]int, 0, 9)
	for v := 1; v <= 9; v++ {
		if used.Has(v) {
			continue
		}
		if !s.fitsWindow(s.ix.RowSegment(p), v) {
			continue
		}
		if !s.fitsWindow(s.ix.ColSegment(p), v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s *search) lineValues(line segment.Line) board.DigitSet {
	var set board.DigitSet
	for _, p := range line.Cells {
		if v := s.grid.At(p).Value; v != 0 {
			set = set.Add(v)
		}
	}
	return set
}

// fitsWindow reports whether digit v can join the segment without pushing
// its value range beyond the segment length.
func (s *search) fitsWindow(seg []board.Pos, v int) bool {
	min, max := 10, 0
	for _, q := range seg {
		if w := s.grid.At(q).Value; w != 0 {
			if w < min {
				min = w
			}
			if w > max {
				max = w
			}
		}
	}
	if max == 0 {
		// Empty segment: any digit opens the window.
		return true
	}
	n := len(seg)
	switch {
	case v > min && v < max:
		return true
	case v < min:
		return max-v < n
	case v > max:
		return v-min < n
	default:
		// v equals a present digit; the duplicate rule already rejected it
		// for row segments, and it cannot extend a column window either.
		return false
	}
}
