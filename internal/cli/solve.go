package cli

import (
	"context"
	"time"

	"str8ts-cli/internal/board"
	"str8ts-cli/internal/solver"

	"github.com/spf13/cobra"
)

func newSolveCmd(app *App) *cobra.Command {
	var write bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the save slot's puzzle and report uniqueness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, st, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			uniq, sol, err := solver.Classify(ctx, b)
			if err != nil {
				return writeErr(cmd, err)
			}
			if uniq == solver.NoSolution {
				return writeErr(cmd, solver.ErrUnsolvable)
			}

			if write {
				// Persist the completion; clue cells are untouched, so the
				// saved board still round-trips fixed flags and colors.
				merged := b.Clone()
				for i := 0; i < board.NumCells; i++ {
					p := board.PosAt(i)
					c := merged.At(p)
					if c.Color != board.White || c.Fixed {
						continue
					}
					if err := merged.SetValue(p, sol.At(p).Value, board.ModePlayValues); err != nil {
						return writeErr(cmd, err)
					}
				}
				if err := st.Save(context.Background(), app.SaveName, merged); err != nil {
					return writeErr(cmd, err)
				}
				sol = merged
			}

			values := make([][board.Size]int, board.Size)
			for r := 0; r < board.Size; r++ {
				for c := 0; c < board.Size; c++ {
					values[r][c] = sol.At(board.Pos{Row: r, Col: c}).Value
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"save":    app.SaveName,
				"unique":  uniq == solver.UniqueSolution,
				"values":  values,
				"written": write,
			}})
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Write the solution back into the save slot")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Abort the search after this long")

	return cmd
}
