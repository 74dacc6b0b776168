package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"atelier/internal/cms"
	"atelier/internal/state"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage the work-log archive",
	}

	archiveCmd.AddCommand(newArchiveAddCommand(ctx))
	archiveCmd.AddCommand(newArchiveListCommand(ctx))
	archiveCmd.AddCommand(newArchiveRemoveCommand(ctx))

	return archiveCmd
}

func newArchiveAddCommand(ctx *commandContext) *cobra.Command {
	var year, company, category, project string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an archive entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(project) == "" {
				return fmt.Errorf("--project is required")
			}
			normalized, err := resolveCategory(category)
			if err != nil {
				return err
			}

			item := state.ArchiveItem{
				ID:       state.NewArchiveID(),
				Year:     strings.TrimSpace(year),
				Company:  strings.TrimSpace(company),
				Category: normalized,
				Project:  strings.TrimSpace(project),
			}

			return ctx.withEditSession(cmd, func(session *cms.Session) error {
				session.AddArchiveItem(item)
				fmt.Fprintf(cmd.OutOrStdout(), "Added archive entry %s (%s)\n", item.Project, item.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "Year of the work")
	cmd.Flags().StringVar(&company, "company", "", "Company or client")
	cmd.Flags().StringVar(&category, "category", "", "Category ("+strings.Join(state.Categories, ", ")+")")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	return cmd
}

func newArchiveListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archive entries in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(session *cms.Session) error {
				items := session.Snapshot().ArchiveItems
				if jsonOut {
					return writeJSON(cmd, items)
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Archive is empty")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					thumb := "-"
					if item.ImageURL != "" {
						thumb = "embedded"
					}
					rows = append(rows, []string{item.ID, item.Year, item.Company, item.Category, truncate(item.Project, 40), thumb})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Year", "Company", "Category", "Project", "Thumb"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newArchiveRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an archive entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEditSession(cmd, func(session *cms.Session) error {
				if !session.DeleteArchiveItem(args[0]) {
					return fmt.Errorf("no archive entry with id %s", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed archive entry %s\n", args[0])
				return nil
			})
		},
	}
}
