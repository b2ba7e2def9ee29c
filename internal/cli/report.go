package cli

import (
	"time"

	"memberbook/internal/report"

	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Derived statistics",
	}
	cmd.AddCommand(newReportAgeCmd(app))
	return cmd
}

func newReportAgeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "age",
		Short: "Member count per age",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newController(app)
			if err := c.Refresh(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			rows := report.CountByAge(c.Members(), time.Now().UTC())
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
	return cmd
}
