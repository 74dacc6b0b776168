package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"atelier/internal/cms"
	"atelier/internal/state"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage portfolio projects",
	}

	projectCmd.AddCommand(newProjectAddCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectUpdateCommand(ctx))
	projectCmd.AddCommand(newProjectRemoveCommand(ctx))

	return projectCmd
}

type projectFlags struct {
	title       string
	category    string
	client      string
	status      string
	date        string
	description string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Project title")
	cmd.Flags().StringVar(&f.category, "category", "", "Project category ("+strings.Join(state.Categories, ", ")+")")
	cmd.Flags().StringVar(&f.client, "client", "", "Client name")
	cmd.Flags().StringVar(&f.status, "status", "", "Project status (IN_PROGRESS, COMPLETED, ARCHIVED)")
	cmd.Flags().StringVar(&f.date, "date", "", "Display date, free-form")
	cmd.Flags().StringVar(&f.description, "description", "", "Project description")
}

func resolveCategory(value string) (string, error) {
	normalized := state.NormalizeCategory(value)
	if !state.KnownCategory(normalized) {
		return "", fmt.Errorf("unknown category %q (expected one of %s)", value, strings.Join(state.Categories, ", "))
	}
	return normalized, nil
}

func newProjectAddCommand(ctx *commandContext) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(flags.title) == "" {
				return fmt.Errorf("--title is required")
			}
			category, err := resolveCategory(flags.category)
			if err != nil {
				return err
			}
			status, err := parseStatus(flags.status)
			if err != nil {
				return err
			}

			project := state.Project{
				ID:          state.NewProjectID(),
				Title:       strings.TrimSpace(flags.title),
				Category:    category,
				Client:      strings.TrimSpace(flags.client),
				Status:      status,
				Date:        strings.TrimSpace(flags.date),
				Description: strings.TrimSpace(flags.description),
			}

			return ctx.withEditSession(cmd, func(session *cms.Session) error {
				session.AddProject(project)
				fmt.Fprintf(cmd.OutOrStdout(), "Added project %s (%s)\n", project.Title, project.ID)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(session *cms.Session) error {
				projects := session.Snapshot().Projects
				if statusFilter != "" {
					status, err := parseStatus(statusFilter)
					if err != nil {
						return err
					}
					filtered := make([]state.Project, 0, len(projects))
					for _, p := range projects {
						if p.Status == status {
							filtered = append(filtered, p)
						}
					}
					projects = filtered
				}
				if jsonOut {
					return writeJSON(cmd, projects)
				}
				if len(projects) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No projects")
					return nil
				}
				rows := make([][]string, 0, len(projects))
				for _, p := range projects {
					rows = append(rows, []string{
						p.ID,
						truncate(p.Title, 40),
						p.Category,
						string(p.Status),
						p.Date,
						summarizeImages(p.ImageURLs),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Title", "Category", "Status", "Date", "Images"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show projects with this status")
	return cmd
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(session *cms.Session) error {
				project, ok := state.FindProject(session.Snapshot(), args[0])
				if !ok {
					return fmt.Errorf("no project with id %s", args[0])
				}
				if jsonOut {
					return writeJSON(cmd, project)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-13s %s\n", "ID:", project.ID)
				fmt.Fprintf(out, "%-13s %s\n", "Title:", project.Title)
				fmt.Fprintf(out, "%-13s %s\n", "Category:", project.Category)
				fmt.Fprintf(out, "%-13s %s\n", "Client:", project.Client)
				fmt.Fprintf(out, "%-13s %s\n", "Status:", project.Status)
				fmt.Fprintf(out, "%-13s %s\n", "Date:", project.Date)
				fmt.Fprintf(out, "%-13s %s\n", "Description:", project.Description)
				fmt.Fprintf(out, "%-13s %s\n", "Images:", summarizeImages(project.ImageURLs))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of text")
	return cmd
}

func newProjectUpdateCommand(ctx *commandContext) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an existing project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEditSession(cmd, func(session *cms.Session) error {
				project, ok := state.FindProject(session.Snapshot(), args[0])
				if !ok {
					return fmt.Errorf("no project with id %s", args[0])
				}

				if cmd.Flags().Changed("title") {
					project.Title = strings.TrimSpace(flags.title)
				}
				if cmd.Flags().Changed("category") {
					category, err := resolveCategory(flags.category)
					if err != nil {
						return err
					}
					project.Category = category
				}
				if cmd.Flags().Changed("client") {
					project.Client = strings.TrimSpace(flags.client)
				}
				if cmd.Flags().Changed("status") {
					status, err := parseStatus(flags.status)
					if err != nil {
						return err
					}
					project.Status = status
				}
				if cmd.Flags().Changed("date") {
					project.Date = strings.TrimSpace(flags.date)
				}
				if cmd.Flags().Changed("description") {
					project.Description = strings.TrimSpace(flags.description)
				}

				if !session.UpdateProject(project.ID, project) {
					fmt.Fprintln(cmd.OutOrStdout(), "No changes")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", project.ID)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newProjectRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEditSession(cmd, func(session *cms.Session) error {
				if !session.DeleteProject(args[0]) {
					return fmt.Errorf("no project with id %s", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", args[0])
				return nil
			})
		},
	}
}
