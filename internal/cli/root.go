package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"str8ts-cli/internal/board"
	"str8ts-cli/internal/format"
	"str8ts-cli/internal/store"
	"str8ts-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	SaveName   string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "str8ts",
		Short:        "Str8ts puzzle game (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive game
  str8ts

  # Scriptable commands
  str8ts show --pretty
  str8ts validate
  str8ts solve --write
  str8ts saves list
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("STR8TS_DIR", ""), "Path to the store dir (default: ~/.str8ts)")
	cmd.PersistentFlags().StringVar(&app.SaveName, "save", envOr("STR8TS_SAVE", store.DefaultSaveName), "Save slot name")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("STR8TS_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newNewCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newSolveCmd(app))
	cmd.AddCommand(newSavesCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, err := openStore(app)
	if err != nil {
		return err
	}
	b, err := st.Load(context.Background(), app.SaveName)
	if err != nil {
		var nf store.NotFoundError
		if !errors.As(err, &nf) {
			return err
		}
		b = board.New()
	}
	return tui.Run(st, app.SaveName, b)
}

func openStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir}, nil
}

func loadBoard(app *App) (*board.Board, store.Store, error) {
	st, err := openStore(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	b, err := st.Load(context.Background(), app.SaveName)
	if err != nil {
		return nil, st, err
	}
	return b, st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
