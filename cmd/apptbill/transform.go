package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gyeh/apptbill/internal/exitcode"
	"github.com/gyeh/apptbill/internal/logging"
	"github.com/gyeh/apptbill/internal/model"
	"github.com/gyeh/apptbill/internal/transform"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform an appointment export into a billing sheet",
	RunE:  runTransform,
}

func init() {
	f := transformCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to appointment export, .csv or .xlsx (required)")
	f.StringVar(&cfg.OutPath, "out", "", "Output path (default transformed_output.<format> in --output-dir)")
	f.StringVar(&cfg.OutputDir, "output-dir", "", "Directory for the default output file")
	f.StringVar(&cfg.OutputFormat, "format", "", "Output format: csv, xlsx or parquet (default from --out extension, else csv)")
	_ = transformCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	summary, err := transform.Run(ctx, log, &cfg)
	if err != nil {
		var pe *transform.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("transform failed")
			os.Exit(exitCodeFor(pe))
		}
		log.Error().Err(err).Msg("transform failed")
		os.Exit(exitcode.TransformError)
	}

	fmt.Printf("Transform complete: %d appointments → %d billing rows written to %s (%.1fs)\n",
		summary.RowsRead, summary.RowsWritten, summary.OutputPath, summary.DurationTotal.Seconds())
	return nil
}

func exitCodeFor(pe *transform.PipelineError) int {
	if errors.Is(pe.Err, model.ErrMissingClientName) {
		return exitcode.ValidationError
	}
	switch pe.Phase {
	case transform.PhasePreflight, transform.PhaseValidate:
		return exitcode.ValidationError
	case transform.PhaseRead:
		return exitcode.ReadError
	case transform.PhaseWrite:
		return exitcode.WriteError
	default:
		return exitcode.TransformError
	}
}
