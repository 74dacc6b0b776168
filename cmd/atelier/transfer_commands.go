package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atelier/internal/cms"
	"atelier/internal/storage"
	"atelier/internal/transfer"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the dataset to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, func(session *cms.Session) error {
				path, err := transfer.Export(cmd.Context(), cfg, session.Snapshot(), logger, ctx.notifier())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported dataset to %s\n", path)
				return nil
			})
		},
	}
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the dataset with an exported JSON file",
		Long: "Writes the file's contents straight into the storage slot. The " +
			"replacement takes effect on the next command; only the presence of a " +
			"projects list is checked, so import files you trust.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.requirePasscode(); err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := storage.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := transfer.Import(cmd.Context(), cfg, store, args[0], logger, ctx.notifier())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d project(s) from %s\n", count, args[0])
			return nil
		},
	}
}
