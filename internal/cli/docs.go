package cli

import (
	"fmt"
	"sort"

	"str8ts-cli/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show the rules and key bindings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				sort.Strings(topics)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": topics}})
			}

			body, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `str8ts docs` to list topics)", args[0]))
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			// One-shot CLI output; auto style detection is fine here (in the
			// TUI it can block on terminal queries, so it uses fixed styles).
			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(80),
			)
			if err != nil {
				_, werr := fmt.Fprint(cmd.OutOrStdout(), body)
				return werr
			}
			out, err := r.Render(body)
			if err != nil {
				out = body
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	return cmd
}
