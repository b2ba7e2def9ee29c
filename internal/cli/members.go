package cli

import (
	"fmt"

	"memberbook/internal/api"
	"memberbook/internal/attach"
	"memberbook/internal/model"
	"memberbook/internal/roster"

	"github.com/spf13/cobra"
)

func newMembersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Member commands",
	}
	cmd.AddCommand(newMembersListCmd(app))
	cmd.AddCommand(newMembersCreateCmd(app))
	cmd.AddCommand(newMembersDeleteCmd(app))
	return cmd
}

func newMembersListCmd(app *App) *cobra.Command {
	var search string
	var sortField string
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members, filtered and sorted like the table view",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newController(app)
			if err := c.Refresh(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}

			params := roster.Params{
				Search:    search,
				SortField: roster.SortField(sortField),
			}
			if desc {
				params.SortDir = roster.Descending
			}
			view := roster.Project(c.Members(), params)
			return writeOut(cmd, app, map[string]any{"data": view})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter on first or last name (case-insensitive substring)")
	cmd.Flags().StringVar(&sortField, "sort", string(roster.SortID), "Sort field (id|prefix|first_name|last_name|birth_date|created_at|updated_at)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	return cmd
}

func newMembersCreateCmd(app *App) *cobra.Command {
	var prefix, first, last, birth, imagePath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new member",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePrefix(prefix)
			if err != nil {
				return writeErr(cmd, err)
			}
			bd, err := model.ParseDate(birth)
			if err != nil {
				return writeErr(cmd, err)
			}
			if first == "" || last == "" {
				return writeErr(cmd, fmt.Errorf("first and last name must be non-empty"))
			}

			nm := api.NewMember{
				Prefix:    p,
				FirstName: first,
				LastName:  last,
				BirthDate: bd.Time(),
			}
			if imagePath != "" {
				uri, err := attach.EncodeFile(imagePath, 0)
				if err != nil {
					return writeErr(cmd, err)
				}
				nm.ProfileImage = uri
			}

			created, err := newController(app).Create(cmd.Context(), nm)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", string(model.PrefixMr), "Honorific (Mr|Mrs|Miss)")
	cmd.Flags().StringVar(&first, "first", "", "First name")
	cmd.Flags().StringVar(&last, "last", "", "Last name")
	cmd.Flags().StringVar(&birth, "birth", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a profile image file")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	_ = cmd.MarkFlagRequired("birth")
	return cmd
}

func newMembersDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <member-id>",
		Short: "Delete a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newController(app)
			if err := c.Refresh(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			if err := c.Delete(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": args[0]}})
		},
	}
	return cmd
}
