package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"str8ts-cli/internal/board"
	"str8ts-cli/internal/game"
	"str8ts-cli/internal/solver"
	"str8ts-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// solvedFlashDuration matches the short "just solved" pulse the game
// exposes; the banner clears on its own after this long.
const solvedFlashDuration = 400 * time.Millisecond

type solveResultMsg struct {
	rev uint64
	sol *board.Board
	err error
}

type flashDoneMsg struct{}

type appModel struct {
	st       store.Store
	saveName string
	session  *game.Session

	keys keyMap
	help help.Model

	width  int
	height int

	status  string
	solving bool
	flash   bool
}

func newAppModel(st store.Store, saveName string, b *board.Board) appModel {
	return appModel{
		st:       st,
		saveName: saveName,
		session:  game.New(b),
		keys:     newKeyMap(),
		help:     help.New(),
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if p, ok := hitTest(msg.X, msg.Y); ok {
				m.status = ""
				_ = m.session.Click(p)
			}
		}
		return m, nil

	case solveResultMsg:
		m.solving = false
		if msg.err != nil {
			m.status = "solve failed: " + msg.err.Error()
			return m, nil
		}
		if !m.session.ApplySolution(msg.sol, msg.rev) {
			// The board moved on while the solver ran; the live board wins.
			m.status = "board changed during solve; result discarded"
			return m, nil
		}
		m.status = "solved"
		return m, m.maybeFlash()

	case flashDoneMsg:
		m.flash = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.Up):
		m.session.MoveFocus(-1, 0)
		return m, nil
	case key.Matches(msg, keys.Down):
		m.session.MoveFocus(1, 0)
		return m, nil
	case key.Matches(msg, keys.Left):
		m.session.MoveFocus(0, -1)
		return m, nil
	case key.Matches(msg, keys.Right):
		m.session.MoveFocus(0, 1)
		return m, nil

	case key.Matches(msg, keys.ModeColors):
		m.session.SetMode(board.ModeEditColors)
		m.status = ""
		return m, nil
	case key.Matches(msg, keys.ModeFixed):
		m.session.SetMode(board.ModeEditFixed)
		m.status = ""
		return m, nil
	case key.Matches(msg, keys.ModeValues):
		m.session.SetMode(board.ModePlayValues)
		m.status = ""
		return m, nil
	case key.Matches(msg, keys.ModeCandidates):
		m.session.SetMode(board.ModePlayCandidates)
		m.status = ""
		return m, nil

	case key.Matches(msg, keys.Digit):
		d := int(msg.String()[0] - '0')
		return m.afterInput(m.session.PressDigit(d))

	case key.Matches(msg, keys.Clear):
		return m.afterInput(m.session.PressClear())

	case key.Matches(msg, keys.Color):
		return m.afterInput(m.session.ToggleColor())

	case key.Matches(msg, keys.Reset):
		m.session.Reset()
		m.status = "reset"
		return m, nil

	case key.Matches(msg, keys.Save):
		if err := m.st.Save(context.Background(), m.saveName, m.session.Board()); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = "saved"
		}
		return m, nil

	case key.Matches(msg, keys.Reload):
		b, err := m.st.Load(context.Background(), m.saveName)
		if err != nil {
			m.status = "load failed: " + err.Error()
		} else {
			m.session.Replace(b)
			m.status = "loaded"
		}
		return m, nil

	case key.Matches(msg, keys.Solve):
		if m.solving {
			return m, nil
		}
		m.solving = true
		m.status = "solving…"
		snap, rev := m.session.Snapshot()
		return m, func() tea.Msg {
			sol, err := solver.Solve(context.Background(), snap)
			return solveResultMsg{rev: rev, sol: sol, err: err}
		}
	}
	return m, nil
}

// afterInput folds a board mutation result into the status line and starts
// the solved flash when the mutation completed the puzzle.
func (m appModel) afterInput(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		// CellLocked is the expected rejection of edits to clue cells;
		// anything else would be a programming error worth showing too.
		m.status = err.Error()
		return m, nil
	}
	m.status = ""
	return m, m.maybeFlash()
}

func (m *appModel) maybeFlash() tea.Cmd {
	if !m.session.ConsumeJustSolved() {
		return nil
	}
	m.flash = true
	return tea.Tick(solvedFlashDuration, func(time.Time) tea.Msg { return flashDoneMsg{} })
}

func (m appModel) View() string {
	left := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf(" Str8ts  save=%s  mode=%s", m.saveName, m.session.Mode()))

	right := m.headerStatus()
	pad := m.width - ansi.StringWidth(left) - ansi.StringWidth(right) - 1
	if pad < 1 {
		pad = 1
	}
	header := left + strings.Repeat(" ", pad) + right

	grid := renderGrid(m.session.View(), m.flash)

	status := m.status
	if status == "" {
		if cv, ok := m.focusedView(); ok {
			status = candidateLine(cv)
		}
	}

	parts := []string{header, "", grid, "", styleMuted().Render(" " + status), m.help.View(m.keys)}
	return strings.Join(parts, "\n")
}

func (m appModel) headerStatus() string {
	res := m.session.Validity()
	switch {
	case m.solving:
		return styleMuted().Render("solving…")
	case res.Solved:
		return lipgloss.NewStyle().Foreground(colorSolvedBg).Bold(true).Render("solved")
	case !res.Valid:
		return lipgloss.NewStyle().Foreground(colorInvalidFg).Render("conflicts")
	case res.Complete:
		return styleMuted().Render("complete")
	default:
		return styleMuted().Render("playing")
	}
}

func (m appModel) focusedView() (game.CellView, bool) {
	p, ok := m.session.Focus()
	if !ok {
		return game.CellView{}, false
	}
	return m.session.View()[p.Index()], true
}
