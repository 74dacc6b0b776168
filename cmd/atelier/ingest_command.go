package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atelier/internal/cms"
	"atelier/internal/imaging"
	"atelier/internal/ingest"
	"atelier/internal/state"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var presetName string
	var projectID string
	var archiveID string

	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Embed images into a project or archive entry",
		Long: "Decodes, resizes, and re-encodes each file in order, then embeds the " +
			"results into the dataset as data-URI strings. Files over the upload " +
			"ceiling and undecodable files are skipped and reported.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (projectID == "") == (archiveID == "") {
				return fmt.Errorf("pass exactly one of --project or --archive")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			preset, ok := imaging.PresetByName(cfg, presetName)
			if !ok {
				return fmt.Errorf("unknown preset %q (expected gallery or thumbnail)", presetName)
			}
			if archiveID != "" {
				// Archive rows carry a single thumbnail.
				preset = imaging.ThumbnailPreset(cfg)
				if len(args) != 1 {
					return fmt.Errorf("--archive takes exactly one file")
				}
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withEditSession(cmd, func(session *cms.Session) error {
				queue := ingest.NewQueue(cfg, logger)
				embedded, skips, err := queue.Ingest(cmd.Context(), args, preset)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, skip := range skips {
					fmt.Fprintf(out, "skipped %s: %s\n", skip.Path, skip.Reason)
				}

				if len(embedded) == 0 {
					fmt.Fprintln(out, "No images embedded")
					return nil
				}

				switch {
				case projectID != "":
					project, ok := state.FindProject(session.Snapshot(), projectID)
					if !ok {
						return fmt.Errorf("no project with id %s", projectID)
					}
					project.ImageURLs = append(project.ImageURLs, embedded...)
					session.UpdateProject(project.ID, project)
					fmt.Fprintf(out, "Embedded %d image(s) into project %s\n", len(embedded), project.ID)
				case archiveID != "":
					item, ok := state.FindArchiveItem(session.Snapshot(), archiveID)
					if !ok {
						return fmt.Errorf("no archive entry with id %s", archiveID)
					}
					item.ImageURL = embedded[0]
					session.UpdateArchiveItem(item.ID, item)
					fmt.Fprintf(out, "Embedded thumbnail into archive entry %s\n", item.ID)
				}

				ctx.notifier().NotifyIngestCompleted(cmd.Context(), len(embedded), len(skips))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&presetName, "preset", "gallery", "Encoding preset (gallery or thumbnail)")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id to append gallery images to")
	cmd.Flags().StringVar(&archiveID, "archive", "", "Archive entry id to set the thumbnail on")
	return cmd
}
