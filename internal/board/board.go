package board

// Size is the board edge length; NumCells the total cell count.
const (
	Size     = 9
	NumCells = Size * Size
)

type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Pos identifies a cell by zero-based row and column.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) Index() int { return p.Row*Size + p.Col }

func (p Pos) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// PosAt converts a flat 0..80 index back to a position.
func PosAt(index int) Pos {
	return Pos{Row: index / Size, Col: index % Size}
}

// Cell is one square of the grid. Value 0 means empty; digits are only
// meaningful on white cells. Candidates are the player's pencil marks and
// are independent of Value, except that committing a value clears them.
type Cell struct {
	Color      Color
	Value      int
	Fixed      bool
	Candidates DigitSet
}

// Board owns the 81 cells exclusively. The zero value is an all-white empty
// board. Board is a value type; assignment copies the whole grid, which the
// solver and the background-solve snapshot rely on.
type Board struct {
	cells [NumCells]Cell
}

func New() *Board { return &Board{} }

func (b *Board) Get(p Pos) (Cell, error) {
	if !p.InBounds() {
		return Cell{}, OutOfBoundsError{Row: p.Row, Col: p.Col}
	}
	return b.cells[p.Index()], nil
}

// At is the unchecked accessor for internal hot paths that already iterate
// valid positions.
func (b *Board) At(p Pos) Cell { return b.cells[p.Index()] }

// SetValue writes a digit (or 0 to erase) into a white cell. Clue cells
// reject the write outside the authoring modes. In edit-fixed-values mode a
// nonzero write marks the cell as a clue and a zero write unmarks it.
// Committing a value clears the cell's pencil marks.
func (b *Board) SetValue(p Pos, v int, mode Mode) error {
	if !p.InBounds() {
		return OutOfBoundsError{Row: p.Row, Col: p.Col}
	}
	if v < 0 || v > 9 {
		return InvalidDigitError{Digit: v}
	}
	c := &b.cells[p.Index()]
	// Black cells are separators and never hold digits.
	if c.Color == Black {
		return CellLockedError{Row: p.Row, Col: p.Col}
	}
	if c.Fixed && !mode.Editing() {
		return CellLockedError{Row: p.Row, Col: p.Col}
	}
	c.Value = v
	c.Candidates = 0
	if mode == ModeEditFixed {
		c.Fixed = v != 0
	}
	return nil
}

// ToggleCandidate flips a pencil mark on a white, non-clue cell.
func (b *Board) ToggleCandidate(p Pos, d int, mode Mode) error {
	if !p.InBounds() {
		return OutOfBoundsError{Row: p.Row, Col: p.Col}
	}
	if d < 1 || d > 9 {
		return InvalidDigitError{Digit: d}
	}
	c := &b.cells[p.Index()]
	if c.Fixed && !mode.Editing() {
		return CellLockedError{Row: p.Row, Col: p.Col}
	}
	if c.Color == Black {
		return CellLockedError{Row: p.Row, Col: p.Col}
	}
	c.Candidates = c.Candidates.Toggle(d)
	return nil
}

// Clear erases the cell's value and pencil marks. Clue cells reject the
// erase outside the authoring modes; in edit-fixed-values mode clearing a
// clue also removes its fixed flag.
func (b *Board) Clear(p Pos, mode Mode) error {
	if !p.InBounds() {
		return OutOfBoundsError{Row: p.Row, Col: p.Col}
	}
	c := &b.cells[p.Index()]
	if c.Fixed && !mode.Editing() {
		return CellLockedError{Row: p.Row, Col: p.Col}
	}
	c.Value = 0
	c.Candidates = 0
	if mode == ModeEditFixed {
		c.Fixed = false
	}
	return nil
}

// SetColor recolors a cell. Only legal in edit-colors mode. A color change
// invalidates whatever was entered on the cell, so value, pencil marks and
// the fixed flag are dropped; the caller must rebuild the segment index.
func (b *Board) SetColor(p Pos, col Color, mode Mode) error {
	if !p.InBounds() {
		return OutOfBoundsError{Row: p.Row, Col: p.Col}
	}
	if mode != ModeEditColors {
		return CellLockedError{Row: p.Row, Col: p.Col}
	}
	c := &b.cells[p.Index()]
	if c.Color == col {
		return nil
	}
	c.Color = col
	c.Value = 0
	c.Candidates = 0
	c.Fixed = false
	return nil
}

// ToggleColor flips white<->black under the same rules as SetColor.
func (b *Board) ToggleColor(p Pos, mode Mode) error {
	if !p.InBounds() {
		return OutOfBoundsError{Row: p.Row, Col: p.Col}
	}
	next := Black
	if b.cells[p.Index()].Color == Black {
		next = White
	}
	return b.SetColor(p, next, mode)
}

// Reset clears all non-fixed content (values and pencil marks) and keeps
// colors and clues.
func (b *Board) Reset() {
	for i := range b.cells {
		c := &b.cells[i]
		c.Candidates = 0
		if !c.Fixed {
			c.Value = 0
		}
	}
}

func (b *Board) Clone() *Board {
	out := *b
	return &out
}

// Complete reports whether every white cell holds a value.
func (b *Board) Complete() bool {
	for i := range b.cells {
		if b.cells[i].Color == White && b.cells[i].Value == 0 {
			return false
		}
	}
	return true
}

// Place writes a value directly, bypassing mode and lock checks. It exists
// for the solver, which operates on a private clone; interactive mutations
// go through SetValue.
func (b *Board) Place(p Pos, v int) { b.cells[p.Index()].Value = v }

// setCell is for loaders that reconstruct a board from persisted state.
func (b *Board) setCell(i int, c Cell) { b.cells[i] = c }

// Restore replaces the full grid from 81 persisted cells.
func Restore(cells [NumCells]Cell) *Board {
	b := &Board{}
	for i, c := range cells {
		b.setCell(i, c)
	}
	return b
}

// Cells returns a copy of the grid in row-major order.
func (b *Board) Cells() [NumCells]Cell { return b.cells }
