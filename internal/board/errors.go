package board

import "fmt"

type OutOfBoundsError struct {
	Row int
	Col int
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("position out of bounds: (%d,%d)", e.Row, e.Col)
}

// InvalidDigitError rejects a digit outside the board's value domain. Like
// OutOfBoundsError it indicates a caller bug, not user input.
type InvalidDigitError struct {
	Digit int
}

func (e InvalidDigitError) Error() string {
	return fmt.Sprintf("digit out of range: %d", e.Digit)
}

// CellLockedError is an expected rejection, not a failure: the UI routinely
// sends edits to clue cells and the board refuses them without side effects.
type CellLockedError struct {
	Row int
	Col int
}

func (e CellLockedError) Error() string {
	return fmt.Sprintf("cell locked: (%d,%d)", e.Row, e.Col)
}
