package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atelier/internal/cms"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Site title and tagline",
	}

	settingsCmd.AddCommand(newSettingsShowCommand(ctx))
	settingsCmd.AddCommand(newSettingsSetCommand(ctx))

	return settingsCmd
}

func newSettingsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show site settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(session *cms.Session) error {
				snapshot := session.Snapshot()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-9s %s\n", "Title:", snapshot.SiteTitle)
				fmt.Fprintf(out, "%-9s %s\n", "Tagline:", snapshot.Tagline)
				return nil
			})
		},
	}
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	var title, tagline string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update site settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("tagline") {
				return fmt.Errorf("nothing to set: pass --title and/or --tagline")
			}
			return ctx.withEditSession(cmd, func(session *cms.Session) error {
				snapshot := session.Snapshot()
				nextTitle := snapshot.SiteTitle
				nextTagline := snapshot.Tagline
				if cmd.Flags().Changed("title") {
					nextTitle = title
				}
				if cmd.Flags().Changed("tagline") {
					nextTagline = tagline
				}
				session.UpdateSettings(nextTitle, nextTagline)
				fmt.Fprintln(cmd.OutOrStdout(), "Settings updated")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Site title")
	cmd.Flags().StringVar(&tagline, "tagline", "", "Site tagline")
	return cmd
}
