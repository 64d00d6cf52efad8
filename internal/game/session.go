// Package game is the interaction layer between a presentation surface and
// the board. A Session owns the live board, the current mode and focus, and
// re-derives the segment index and validity flags after every successful
// mutation. All methods are synchronous; one input is fully processed before
// the next is accepted.
package game

import (
	"context"

	"str8ts-cli/internal/board"
	"str8ts-cli/internal/rules"
	"str8ts-cli/internal/segment"
	"str8ts-cli/internal/solver"
)

// CellView is the read model for one cell, in the shape the presentation
// layer consumes.
type CellView struct {
	Pos             board.Pos `json:"pos"`
	Value           int       `json:"value,omitempty"`
	Candidates      [9]bool   `json:"candidates,omitempty"`
	Black           bool      `json:"black,omitempty"`
	Fixed           bool      `json:"fixed,omitempty"`
	Focused         bool      `json:"focused,omitempty"`
	ValidInRow      bool      `json:"validInRow"`
	ValidInStraight bool      `json:"validInStraight"`
}

type Session struct {
	b   *board.Board
	ix  *segment.Index
	res rules.Result

	mode     board.Mode
	focus    board.Pos
	hasFocus bool

	justSolved bool

	// rev counts successful mutations. Background solves snapshot the board
	// together with the current rev; a result tagged with a stale rev is
	// discarded because the live board has moved on.
	rev uint64
}

// New starts a session over b, or over an empty all-white board when b is
// nil. The initial mode is play-values.
func New(b *board.Board) *Session {
	if b == nil {
		b = board.New()
	}
	s := &Session{b: b, mode: board.ModePlayValues}
	s.ix = segment.Rebuild(s.b)
	s.res = rules.Evaluate(s.b, s.ix)
	return s
}

func (s *Session) Mode() board.Mode { return s.mode }

// SetMode switches the input mode. Transitions only happen through explicit
// requests; nothing switches modes as a side effect.
func (s *Session) SetMode(m board.Mode) { s.mode = m }

func (s *Session) Focus() (board.Pos, bool) { return s.focus, s.hasFocus }

// Click focuses the clicked cell, defocusing any previous one. Focusing a
// clue cell is allowed even in play modes; the board rejects edits later.
func (s *Session) Click(p board.Pos) error {
	if !p.InBounds() {
		return board.OutOfBoundsError{Row: p.Row, Col: p.Col}
	}
	s.focus = p
	s.hasFocus = true
	return nil
}

// Defocus drops the focus without touching the board.
func (s *Session) Defocus() { s.hasFocus = false }

// MoveFocus shifts the focus by (dr,dc), clamped to the grid. With no focus
// it lands on the top-left cell.
func (s *Session) MoveFocus(dr, dc int) {
	if !s.hasFocus {
		s.focus = board.Pos{}
		s.hasFocus = true
		return
	}
	s.focus.Row = clamp(s.focus.Row+dr, 0, board.Size-1)
	s.focus.Col = clamp(s.focus.Col+dc, 0, board.Size-1)
}

// PressDigit routes a digit key to the focused cell: value entry in
// play-values and edit-fixed-values, pencil-mark toggle in play-candidates.
// Digit keys are ignored in edit-colors mode and without a focused cell.
func (s *Session) PressDigit(d int) error {
	if !s.hasFocus {
		return nil
	}
	switch s.mode {
	case board.ModePlayValues, board.ModeEditFixed:
		if err := s.b.SetValue(s.focus, d, s.mode); err != nil {
			return err
		}
	case board.ModePlayCandidates:
		if err := s.b.ToggleCandidate(s.focus, d, s.mode); err != nil {
			return err
		}
	default:
		return nil
	}
	s.afterMutation(false)
	return nil
}

// PressClear erases the focused cell (delete/backspace).
func (s *Session) PressClear() error {
	if !s.hasFocus {
		return nil
	}
	if s.mode == board.ModeEditColors {
		return nil
	}
	if err := s.b.Clear(s.focus, s.mode); err != nil {
		return err
	}
	s.afterMutation(false)
	return nil
}

// ToggleColor flips the focused cell's color. Only meaningful in edit-colors
// mode; the board enforces that.
func (s *Session) ToggleColor() error {
	if !s.hasFocus {
		return nil
	}
	if err := s.b.ToggleColor(s.focus, s.mode); err != nil {
		return err
	}
	s.afterMutation(true)
	return nil
}

// Reset clears all non-fixed content; clues and colors survive.
func (s *Session) Reset() {
	s.b.Reset()
	s.afterMutation(false)
}

// Replace swaps in a freshly loaded board, dropping focus and pulse state.
func (s *Session) Replace(b *board.Board) {
	s.b = b
	s.hasFocus = false
	s.justSolved = false
	s.rev++
	s.ix = segment.Rebuild(s.b)
	s.res = rules.Evaluate(s.b, s.ix)
}

// Snapshot returns a copy of the live board together with the revision it
// was taken at, for handing to a background solve.
func (s *Session) Snapshot() (*board.Board, uint64) {
	return s.b.Clone(), s.rev
}

func (s *Session) Revision() uint64 { return s.rev }

// Solve runs the solver synchronously on a snapshot and applies the result.
// On failure the live board is untouched and the error is surfaced.
func (s *Session) Solve(ctx context.Context) error {
	snap, rev := s.Snapshot()
	sol, err := solver.Solve(ctx, snap)
	if err != nil {
		return err
	}
	s.ApplySolution(sol, rev)
	return nil
}

// ApplySolution copies every non-fixed white cell's value from sol into the
// live board. A result taken at a revision other than the current one is
// discarded and false is returned; the live board is the source of truth.
func (s *Session) ApplySolution(sol *board.Board, rev uint64) bool {
	if rev != s.rev {
		return false
	}
	for i := 0; i < board.NumCells; i++ {
		p := board.PosAt(i)
		c := s.b.At(p)
		if c.Color != board.White || c.Fixed {
			continue
		}
		if err := s.b.SetValue(p, sol.At(p).Value, board.ModePlayValues); err != nil {
			// Non-fixed white cells always accept values; nothing to recover.
			continue
		}
	}
	s.afterMutation(false)
	return true
}

// Validity returns the flags derived from the last mutation.
func (s *Session) Validity() rules.Result { return s.res }

// JustSolved reads the one-shot pulse without clearing it.
func (s *Session) JustSolved() bool { return s.justSolved }

// ConsumeJustSolved returns the pulse and clears it, so external consumers
// see the solved edge exactly once. The next mutation also clears it.
func (s *Session) ConsumeJustSolved() bool {
	v := s.justSolved
	s.justSolved = false
	return v
}

// View returns the 81 cell view records in row-major order.
func (s *Session) View() []CellView {
	out := make([]CellView, 0, board.NumCells)
	for i := 0; i < board.NumCells; i++ {
		p := board.PosAt(i)
		c := s.b.At(p)
		cv := CellView{
			Pos:             p,
			Value:           c.Value,
			Black:           c.Color == board.Black,
			Fixed:           c.Fixed,
			Focused:         s.hasFocus && s.focus == p,
			ValidInRow:      s.res.ValidInRow[i],
			ValidInStraight: s.res.ValidInStraight[i],
		}
		for d := 1; d <= 9; d++ {
			cv.Candidates[d-1] = c.Candidates.Has(d)
		}
		out = append(out, cv)
	}
	return out
}

// Board exposes the live board read-only for persistence.
func (s *Session) Board() *board.Board { return s.b }

func (s *Session) afterMutation(colorsChanged bool) {
	s.rev++
	s.justSolved = false
	if colorsChanged {
		s.ix = segment.Rebuild(s.b)
	}
	wasSolved := s.res.Solved
	s.res = rules.Evaluate(s.b, s.ix)
	if !wasSolved && s.res.Solved {
		s.justSolved = true
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
