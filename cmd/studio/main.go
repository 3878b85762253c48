package main

import (
	"fmt"
	"os"

	"bluesphere-studio/internal/config"
	"bluesphere-studio/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string
	log      *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "studio",
	Short:         "BlueSphere Photography website",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logCfg, err := config.LoadLog()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			logCfg.Level = logLevel
		}

		log, err = logger.New(logCfg.Level, logCfg.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (overrides LOG_LEVEL)")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	exportCmd.AddCommand(exportInquiriesCmd)
	inquiryCmd.AddCommand(inquiryShowCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, exportCmd, inquiryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error("Command failed", zap.Error(err))
			_ = log.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
