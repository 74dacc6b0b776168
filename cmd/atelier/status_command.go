package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atelier/internal/cms"
	"atelier/internal/storage"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show dataset and storage status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(session *cms.Session) error {
				usage, err := session.Store().Usage(cmd.Context())
				if err != nil {
					return err
				}
				health, healthErr := session.Store().CheckHealth(cmd.Context())
				snapshot := session.Snapshot()

				if jsonOut {
					return writeJSON(cmd, struct {
						Projects     int            `json:"projects"`
						ArchiveItems int            `json:"archiveItems"`
						Services     int            `json:"services"`
						Usage        storage.Usage  `json:"usage"`
						Health       storage.Health `json:"health"`
					}{
						Projects:     len(snapshot.Projects),
						ArchiveItems: len(snapshot.ArchiveItems),
						Services:     len(snapshot.Services),
						Usage:        usage,
						Health:       health,
					})
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				for _, line := range renderSectionHeader("Dataset", colorize) {
					fmt.Fprintln(out, line)
				}
				rows := [][]string{
					{"Projects", fmt.Sprintf("%d", len(snapshot.Projects))},
					{"Archive entries", fmt.Sprintf("%d", len(snapshot.ArchiveItems))},
					{"Services", fmt.Sprintf("%d", len(snapshot.Services))},
					{"Site title", snapshot.SiteTitle},
				}
				fmt.Fprintln(out, renderTable([]string{"Collection", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

				for _, line := range renderSectionHeader("Storage", colorize) {
					fmt.Fprintln(out, line)
				}
				usageKind := statusOK
				usageMessage := fmt.Sprintf("%s of %s used", formatBytes(usage.UsedBytes), formatBytes(usage.QuotaBytes))
				if usage.QuotaBytes > 0 && usage.UsedBytes*10 >= usage.QuotaBytes*9 {
					usageKind = statusWarn
				}
				fmt.Fprintln(out, renderStatusLine("Slot usage", usageKind, usageMessage, colorize))
				if !usage.UpdatedAt.IsZero() {
					fmt.Fprintln(out, renderStatusLine("Last write", statusInfo, usage.UpdatedAt.Local().Format("2006-01-02 15:04:05"), colorize))
				}

				switch {
				case healthErr != nil:
					fmt.Fprintln(out, renderStatusLine("Database", statusError, healthErr.Error(), colorize))
				case !health.DatabaseExists:
					fmt.Fprintln(out, renderStatusLine("Database", statusWarn, "not created yet", colorize))
				case !health.IntegrityCheck:
					fmt.Fprintln(out, renderStatusLine("Database", statusError, "integrity check failed", colorize))
				default:
					fmt.Fprintln(out, renderStatusLine("Database", statusOK, health.DBPath, colorize))
				}
				datasetKind := statusWarn
				datasetMessage := "no dataset stored yet"
				if health.DatasetPresent {
					datasetKind = statusOK
					datasetMessage = formatBytes(health.DatasetBytes)
				}
				fmt.Fprintln(out, renderStatusLine("Dataset slot", datasetKind, datasetMessage, colorize))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of text")
	return cmd
}
