package main

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/export"
	"github.com/shipcube/leads-cli/internal/store"
)

var (
	exportRunID  string
	exportStatus string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored leads to a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx, cfg)
		if err != nil {
			return eris.Wrap(err, "cmd: init store")
		}
		defer st.Close()

		leads, err := st.ListLeads(ctx, store.LeadFilter{
			RunID:  exportRunID,
			Status: exportStatus,
		})
		if err != nil {
			return err
		}
		if len(leads) == 0 {
			zap.L().Warn("no leads matched the export filter",
				zap.String("run_id", exportRunID),
				zap.String("status", exportStatus))
		}

		switch exportFormat {
		case "xlsx":
			if err := export.WriteXLSX(exportOut, leads); err != nil {
				return err
			}
		case "csv":
			f, err := os.Create(exportOut)
			if err != nil {
				return eris.Wrap(err, "cmd: create output file")
			}
			defer f.Close()
			w := csv.NewWriter(f)
			if err := w.WriteAll(export.WriteCSVRows(leads)); err != nil {
				return eris.Wrap(err, "cmd: write csv")
			}
		default:
			return eris.Errorf("cmd: unknown format %q", exportFormat)
		}

		zap.L().Info("export complete",
			zap.String("path", exportOut),
			zap.String("format", exportFormat),
			zap.Int("leads", len(leads)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRunID, "run-id", "", "only leads from this run")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "only leads with this status")
	exportCmd.Flags().StringVar(&exportFormat, "format", "xlsx", "output format: xlsx or csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "leads.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
