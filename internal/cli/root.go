package cli

import (
	"fmt"
	"os"
	"strings"

	"memberbook/internal/api"
	"memberbook/internal/format"
	"memberbook/internal/roster"
	"memberbook/internal/tui"

	"github.com/spf13/cobra"
)

const defaultAPIBase = "http://localhost:4000"

type App struct {
	APIBase    string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "memberbook",
		Short:        "Member registry client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  memberbook

  # Scriptable commands
  memberbook members list
  memberbook members list --search lee --sort last_name --desc
  memberbook members create --prefix Miss --first Ann --last Lee --birth 1990-03-14
  memberbook report age
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return tui.Run(newController(app))
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIBase, "api", envOr("MEMBERBOOK_API", defaultAPIBase), "Base URL of the member store")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newMembersCmd(app))
	cmd.AddCommand(newReportCmd(app))

	return cmd
}

func newController(app *App) *roster.Controller {
	return roster.NewController(api.New(app.APIBase))
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
