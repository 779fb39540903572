package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/apptbill/internal/exitcode"
	"github.com/gyeh/apptbill/internal/logging"
	"github.com/gyeh/apptbill/internal/model"
	"github.com/gyeh/apptbill/internal/transform"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to appointment export, .csv or .xlsx (required)")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	summary, err := transform.Plan(context.Background(), log, cfg.FilePath)
	if err != nil {
		if pe, ok := err.(*transform.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("plan failed")
			os.Exit(exitCodeFor(pe))
		}
		log.Error().Err(err).Msg("plan failed")
		os.Exit(exitcode.TransformError)
	}

	fmt.Println("=== apptbill plan ===")
	fmt.Printf("File:           %s\n", summary.FilePath)
	fmt.Printf("SHA-256:        %s\n", summary.FileSHA256)
	fmt.Printf("Format:         %s\n", summary.InputFormat)
	fmt.Printf("Appointments:   %d\n", summary.RowsRead)
	fmt.Printf("Billing rows:   %d\n", summary.RowsWritten)
	fmt.Printf("Group sessions: %d\n", summary.GroupRows)
	fmt.Printf("Unparsed dates: %d\n", summary.UnparsedDates)
	fmt.Println()
	fmt.Println("Missing info:")
	for _, tag := range model.MissingInfoTags {
		fmt.Printf("  %-10s %d\n", tag, summary.MissingInfo[tag])
	}
	fmt.Println()
	fmt.Println("Column mapping:")
	for _, col := range model.BillingHeaders {
		if src, ok := model.SourceColumn(col); ok {
			fmt.Printf("  %-20s ← %s\n", col, src)
		}
	}
	if len(summary.RemovableColumns) > 0 {
		fmt.Println()
		fmt.Println("Unused columns (safe to drop from the export):")
		for _, col := range summary.RemovableColumns {
			fmt.Printf("  %s\n", col)
		}
	}
	return nil
}
