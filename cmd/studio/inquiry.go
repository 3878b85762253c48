package main

import (
	"encoding/json"

	"bluesphere-studio/internal/config"
	"bluesphere-studio/internal/storage"

	"github.com/spf13/cobra"
)

var inquiryCmd = &cobra.Command{
	Use:   "inquiry",
	Short: "Look up contact inquiries",
}

var inquiryShowCmd = &cobra.Command{
	Use:   "show <reference>",
	Short: "Print one inquiry as JSON, found by the reference given to the customer",
	Args:  cobra.ExactArgs(1),
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

		inq, err := pgStorage.GetInquiry(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(inq)
	},
}
