package main

import (
	"fmt"
	"time"

	"bluesphere-studio/internal/config"
	"bluesphere-studio/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportSince time.Duration
	exportDir   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to spreadsheets",
}

var exportInquiriesCmd = &cobra.Command{
	Use:   "inquiries",
	Short: "Write recent contact inquiries to an Excel report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbCfg, err := config.LoadDatabase()
		if err != nil {
			return err
		}

		pgStorage, err := storage.NewPostgresStorage(cmd.Context(), *dbCfg, log)
		if err != nil {
			return err
		}
		defer pgStorage.Close()

		since := time.Time{}
		if exportSince > 0 {
			since = time.Now().Add(-exportSince)
		}

		path, err := pgStorage.ExportInquiriesToExcel(cmd.Context(), exportDir, since)
		if err != nil {
			return err
		}

		counts, err := pgStorage.InquiryStatusCounts(cmd.Context())
		if err != nil {
			log.Warn("Failed to load inquiry status counts", zap.Error(err))
		} else {
			log.Info("Inquiry totals",
				zap.Int(storage.StatusNew, counts[storage.StatusNew]),
				zap.Int(storage.StatusSent, counts[storage.StatusSent]),
				zap.Int(storage.StatusFailed, counts[storage.StatusFailed]))
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportInquiriesCmd.Flags().DurationVar(&exportSince, "since", 30*24*time.Hour, "Only include inquiries newer than this (0 for all)")
	exportInquiriesCmd.Flags().StringVar(&exportDir, "dir", "reports", "Directory the report is written to")
}
