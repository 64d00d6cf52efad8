package rules

import (
	"testing"

	"str8ts-cli/internal/board"
	"str8ts-cli/internal/segment"
)

func mustSet(t *testing.T, b *board.Board, r, c, v int) {
	t.Helper()
	if err := b.SetValue(board.Pos{Row: r, Col: c}, v, board.ModePlayValues); err != nil {
		t.Fatalf("SetValue(%d,%d,%d): %v", r, c, v, err)
	}
}

func mustBlack(t *testing.T, b *board.Board, r, c int) {
	t.Helper()
	if err := b.SetColor(board.Pos{Row: r, Col: c}, board.Black, board.ModeEditColors); err != nil {
		t.Fatalf("SetColor(%d,%d): %v", r, c, err)
	}
}

func eval(b *board.Board) Result {
	return Evaluate(b, segment.Rebuild(b))
}

func TestDuplicateInRowFlagsAllHolders(t *testing.T) {
	b := board.New()
	mustSet(t, b, 0, 0, 5)
	mustSet(t, b, 0, 4, 5)
	mustSet(t, b, 0, 7, 3)

	res := eval(b)
	for _, c := range []int{0, 4} {
		if res.ValidInRow[(board.Pos{Row: 0, Col: c}).Index()] {
			t.Fatalf("duplicate holder at col %d must be flagged", c)
		}
	}
	if !res.ValidInRow[(board.Pos{Row: 0, Col: 7}).Index()] {
		t.Fatalf("unique digit must stay valid")
	}
	if res.Valid {
		t.Fatalf("board with duplicates must not be valid")
	}
}

func TestDuplicateInColumnMergedIntoSameFlag(t *testing.T) {
	b := board.New()
	mustSet(t, b, 1, 2, 8)
	mustSet(t, b, 6, 2, 8)

	res := eval(b)
	for _, r := range []int{1, 6} {
		if res.ValidInRow[(board.Pos{Row: r, Col: 2}).Index()] {
			t.Fatalf("column duplicate at row %d must be flagged", r)
		}
	}
}

func TestDuplicateFlagClearsOnRemoval(t *testing.T) {
	b := board.New()
	p := board.Pos{Row: 3, Col: 3}
	mustSet(t, b, 3, 3, 4)
	mustSet(t, b, 3, 8, 4)
	if eval(b).ValidInRow[p.Index()] {
		t.Fatalf("expected duplicate flagged")
	}

	if err := b.Clear(board.Pos{Row: 3, Col: 8}, board.ModePlayValues); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if !eval(b).ValidInRow[p.Index()] {
		t.Fatalf("flag must clear once the duplicate is removed")
	}
}

func TestStraightContiguity(t *testing.T) {
	// Row 0 split into a length-3 segment [0..2] and a length-5 segment [4..8].
	b := board.New()
	mustBlack(t, b, 0, 3)

	// {1,3} in the length-3 run: gap at 2, invalid even though completable.
	mustSet(t, b, 0, 0, 1)
	mustSet(t, b, 0, 1, 3)
	res := eval(b)
	for _, c := range []int{0, 1, 2} {
		if res.ValidInStraight[(board.Pos{Row: 0, Col: c}).Index()] {
			t.Fatalf("gap-y straight must flag every cell of the segment (col %d)", c)
		}
	}

	// Filling the gap restores contiguity.
	mustSet(t, b, 0, 2, 2)
	res = eval(b)
	for _, c := range []int{0, 1, 2} {
		if !res.ValidInStraight[(board.Pos{Row: 0, Col: c}).Index()] {
			t.Fatalf("contiguous straight must be valid (col %d)", c)
		}
	}
}

func TestStraightOrderDoesNotMatter(t *testing.T) {
	b := board.New()
	mustBlack(t, b, 4, 0)
	mustBlack(t, b, 4, 4)
	// Segment [1..3] filled 6,8,7: unsorted but contiguous as a set.
	mustSet(t, b, 4, 1, 6)
	mustSet(t, b, 4, 2, 8)
	mustSet(t, b, 4, 3, 7)

	res := eval(b)
	for _, c := range []int{1, 2, 3} {
		if !res.ValidInStraight[(board.Pos{Row: 4, Col: c}).Index()] {
			t.Fatalf("order inside a straight is free; col %d flagged", c)
		}
	}
}

func TestStraightVacuouslyValidWithOneFill(t *testing.T) {
	b := board.New()
	mustBlack(t, b, 2, 2)
	mustSet(t, b, 2, 0, 9)

	res := eval(b)
	if !res.ValidInStraight[(board.Pos{Row: 2, Col: 0}).Index()] {
		t.Fatalf("a single filled cell cannot violate the straight rule")
	}
	if !res.ValidInStraight[(board.Pos{Row: 2, Col: 1}).Index()] {
		t.Fatalf("empty cells of the segment stay valid too")
	}
}

func TestSolvedOnTwoCellBoard(t *testing.T) {
	// Only (0,0) and (0,1) are white: a single row straight of length 2 and
	// two singleton column straights.
	b := board.New()
	for i := 0; i < board.NumCells; i++ {
		p := board.PosAt(i)
		if p.Row == 0 && p.Col <= 1 {
			continue
		}
		mustBlack(t, b, p.Row, p.Col)
	}

	res := eval(b)
	if res.Complete || res.Solved {
		t.Fatalf("empty white cells: not complete")
	}
	if !res.Valid {
		t.Fatalf("empty board must be valid")
	}

	mustSet(t, b, 0, 0, 4)
	mustSet(t, b, 0, 1, 5)
	res = eval(b)
	if !res.Complete || !res.Valid || !res.Solved {
		t.Fatalf("expected solved, got %+v", res)
	}

	// 4,6 is complete but breaks the straight.
	mustSet(t, b, 0, 1, 6)
	res = eval(b)
	if !res.Complete {
		t.Fatalf("still complete")
	}
	if res.Valid || res.Solved {
		t.Fatalf("gap-y completion must not count as solved")
	}
}

func TestCluesConflictLikeAnyOtherValue(t *testing.T) {
	b := board.New()
	for _, c := range []int{0, 1} {
		if err := b.SetValue(board.Pos{Row: 5, Col: c}, 5, board.ModeEditFixed); err != nil {
			t.Fatalf("SetValue clue: %v", err)
		}
	}
	res := eval(b)
	for _, c := range []int{0, 1} {
		if res.ValidInRow[(board.Pos{Row: 5, Col: c}).Index()] {
			t.Fatalf("conflicting clues are flagged like player values (col %d)", c)
		}
	}
}
