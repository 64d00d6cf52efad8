// Package rules scores a board against the Str8ts ruleset. Evaluation is a
// pure recomputation over all 81 cells; with a fixed board size there is
// nothing to gain from incremental invalidation.
package rules

import (
	"str8ts-cli/internal/board"
	"str8ts-cli/internal/segment"
)

// Result carries the per-cell validity flags the presentation layer shows.
//
// ValidInRow is the merged duplicate flag: false when the cell's digit
// occurs more than once in its full row or its full column. ValidInStraight
// is false for every cell of a segment whose filled digits do not form a
// contiguous range. The duplicate rule spans whole rows/columns while the
// straight rule is per segment; that asymmetry is inherent to Str8ts.
type Result struct {
	ValidInRow      [board.NumCells]bool
	ValidInStraight [board.NumCells]bool

	Complete bool // every white cell holds a value
	Valid    bool // both flags true everywhere
	Solved   bool // Complete && Valid
}

// Evaluate recomputes all flags for the board under the given segment index.
func Evaluate(b *board.Board, ix *segment.Index) Result {
	var res Result
	for i := range res.ValidInRow {
		res.ValidInRow[i] = true
		res.ValidInStraight[i] = true
	}

	for _, line := range ix.Lines() {
		markLineDuplicates(b, line, &res)
		for _, seg := range line.Segments {
			if !straightValid(b, seg) {
				for _, p := range seg {
					res.ValidInStraight[p.Index()] = false
				}
			}
		}
	}

	res.Complete = b.Complete()
	res.Valid = true
	for i := range res.ValidInRow {
		if !res.ValidInRow[i] || !res.ValidInStraight[i] {
			res.Valid = false
			break
		}
	}
	res.Solved = res.Complete && res.Valid
	return res
}

// markLineDuplicates flags every holder of a digit that occurs more than
// once in the full line.
func markLineDuplicates(b *board.Board, line segment.Line, res *Result) {
	var holders [10][]board.Pos
	for _, p := range line.Cells {
		v := b.At(p).Value
		if v >= 1 && v <= 9 {
			holders[v] = append(holders[v], p)
		}
	}
	for v := 1; v <= 9; v++ {
		if len(holders[v]) > 1 {
			for _, p := range holders[v] {
				res.ValidInRow[p.Index()] = false
			}
		}
	}
}

// straightValid checks set-contiguity of the digits present in a segment:
// the distinct filled digits must form a gap-free range. Segments with at
// most one filled cell are vacuously valid.
func straightValid(b *board.Board, seg []board.Pos) bool {
	var present board.DigitSet
	filled := 0
	min, max := 10, 0
	for _, p := range seg {
		v := b.At(p).Value
		if v == 0 {
			continue
		}
		filled++
		present = present.Add(v)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if filled <= 1 {
		return true
	}
	return present.Count() == max-min+1
}
