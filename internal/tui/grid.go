package tui

import (
	"fmt"
	"strings"

	"str8ts-cli/internal/board"
	"str8ts-cli/internal/game"

	"github.com/charmbracelet/lipgloss"
)

// Grid geometry, shared by the renderer and mouse hit-testing.
const (
	gridTop   = 2 // header + blank line
	gridLeft  = 1
	cellWidth = 4
)

// renderGrid draws the 81 cells as 9 terminal rows of fixed-width cells.
func renderGrid(cells []game.CellView, flash bool) string {
	var rows []string
	for r := 0; r < board.Size; r++ {
		var row strings.Builder
		for c := 0; c < board.Size; c++ {
			cv := cells[r*board.Size+c]
			row.WriteString(cellStyle(cv, flash).Render(cellContent(cv)))
		}
		rows = append(rows, strings.Repeat(" ", gridLeft)+row.String())
	}
	return strings.Join(rows, "\n")
}

func cellContent(cv game.CellView) string {
	if cv.Black {
		return strings.Repeat(" ", cellWidth)
	}
	val := " "
	if cv.Value != 0 {
		val = fmt.Sprintf("%d", cv.Value)
	}
	mark := " "
	if cv.Value == 0 && hasAnyCandidate(cv) {
		mark = "·"
	}
	return fmt.Sprintf(" %s%s ", val, mark)
}

func hasAnyCandidate(cv game.CellView) bool {
	for _, on := range cv.Candidates {
		if on {
			return true
		}
	}
	return false
}

func cellStyle(cv game.CellView, flash bool) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorCellFg).Background(colorCellBg)
	if cv.Black {
		return lipgloss.NewStyle().Foreground(colorBlackCellFg).Background(colorBlackCellBg)
	}
	if cv.Fixed {
		st = st.Bold(true)
	}
	if !cv.ValidInStraight {
		st = st.Background(colorInvalidStraightBg)
	}
	if !cv.ValidInRow {
		st = st.Foreground(colorInvalidFg).Bold(true)
	}
	if flash {
		st = st.Background(colorSolvedBg).Foreground(colorSolvedFg)
	}
	if cv.Focused {
		st = st.Background(colorAccent).Foreground(colorAccentFg).Bold(true)
	}
	return st
}

// hitTest maps terminal coordinates to a board position.
func hitTest(x, y int) (board.Pos, bool) {
	r := y - gridTop
	c := (x - gridLeft) / cellWidth
	p := board.Pos{Row: r, Col: c}
	if x < gridLeft || !p.InBounds() {
		return board.Pos{}, false
	}
	return p, true
}

// candidateLine lists the focused cell's pencil marks for the status area.
func candidateLine(cv game.CellView) string {
	var marks []string
	for d := 1; d <= 9; d++ {
		if cv.Candidates[d-1] {
			marks = append(marks, fmt.Sprintf("%d", d))
		}
	}
	if len(marks) == 0 {
		return ""
	}
	return "marks: " + strings.Join(marks, " ")
}
