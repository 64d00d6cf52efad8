package board

import (
	"fmt"
	"strings"
)

// Mode selects which cell field a click or key press mutates.
type Mode int

const (
	ModeEditColors Mode = iota
	ModeEditFixed
	ModePlayValues
	ModePlayCandidates
)

func (m Mode) String() string {
	switch m {
	case ModeEditColors:
		return "edit-colors"
	case ModeEditFixed:
		return "edit-fixed-values"
	case ModePlayValues:
		return "play-values"
	case ModePlayCandidates:
		return "play-candidates"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Editing reports whether m is an authoring mode, in which clue cells may be
// altered.
func (m Mode) Editing() bool {
	return m == ModeEditColors || m == ModeEditFixed
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "edit-colors":
		return ModeEditColors, nil
	case "edit-fixed-values":
		return ModeEditFixed, nil
	case "play-values":
		return ModePlayValues, nil
	case "play-candidates":
		return ModePlayCandidates, nil
	default:
		return 0, fmt.Errorf("invalid mode: %q (expected edit-colors|edit-fixed-values|play-values|play-candidates)", s)
	}
}
