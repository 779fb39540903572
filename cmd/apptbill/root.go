package main

import (
	"github.com/spf13/cobra"

	"github.com/gyeh/apptbill/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "apptbill",
	Short: "Appointment export → billing sheet transformer",
	Long: "Reads a Healthie appointment export (CSV or XLSX) and writes one billing row per client " +
		"with CPT codes, appointment IDs and missing-information flags.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg.ConfigFile == "" {
			return nil
		}
		return cfg.LoadFromFile(cfg.ConfigFile)
	},
}

func init() {
	config.LoadEnv()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ConfigFile, "config", "", "Path to YAML config file")
	pf.StringVar(&cfg.LogFormat, "log-format", config.EnvOr("APPTBILL_LOG_FORMAT", "text"), "Log format: text or json (or set APPTBILL_LOG_FORMAT)")
	pf.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
}
