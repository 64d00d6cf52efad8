package cli

import (
	"context"
	"fmt"

	"str8ts-cli/internal/board"
	"str8ts-cli/internal/game"

	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty all-white board in the save slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := context.Background()
			if !force {
				if _, err := st.Load(ctx, app.SaveName); err == nil {
					return writeErr(cmd, fmt.Errorf("save %q already exists (use --force to overwrite)", app.SaveName))
				}
			}
			if err := st.Save(ctx, app.SaveName, board.New()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"save": app.SaveName, "created": true}})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing save")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the 81 cell view records for the save slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := game.New(b)
			res := s.Validity()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"save":     app.SaveName,
				"cells":    s.View(),
				"complete": res.Complete,
				"valid":    res.Valid,
				"solved":   res.Solved,
			}})
		},
	}
}

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the save slot against the Str8ts rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := loadBoard(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := game.New(b)
			res := s.Validity()

			var conflicts []board.Pos
			for i := 0; i < board.NumCells; i++ {
				if !res.ValidInRow[i] || !res.ValidInStraight[i] {
					conflicts = append(conflicts, board.PosAt(i))
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"save":      app.SaveName,
				"complete":  res.Complete,
				"valid":     res.Valid,
				"solved":    res.Solved,
				"conflicts": conflicts,
			}})
		},
	}
}

func newSavesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Manage save slots",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List save slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			saves, err := st.List(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"saves": saves}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.Delete(context.Background(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	})

	return cmd
}
