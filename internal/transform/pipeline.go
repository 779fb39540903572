package transform

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/apptbill/internal/config"
	"github.com/gyeh/apptbill/internal/model"
	"github.com/gyeh/apptbill/internal/tableread"
	"github.com/gyeh/apptbill/internal/tablewrite"
)

// Pipeline phases, reported in PipelineError.
const (
	PhasePreflight = "preflight"
	PhaseRead      = "read"
	PhaseValidate  = "validate"
	PhaseTransform = "transform"
	PhaseWrite     = "write"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full file pipeline: preflight → read → validate →
// transform → write.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config) (*model.TransformSummary, error) {
	outPath, outFormat, err := cfg.Output()
	if err != nil {
		return nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}

	summary, rows, err := prepare(ctx, log, cfg.FilePath)
	if err != nil {
		return nil, err
	}
	summary.OutputPath = outPath
	summary.OutputFormat = outFormat

	if err := ctx.Err(); err != nil {
		return nil, &PipelineError{Phase: PhaseWrite, Err: err}
	}

	log.Info().Str("out", outPath).Str("format", string(outFormat)).Msg("writing billing sheet")
	writeStart := time.Now()
	if err := tablewrite.WriteFile(outPath, outFormat, rows); err != nil {
		return nil, &PipelineError{Phase: PhaseWrite, Err: err}
	}
	summary.DurationWrite = time.Since(writeStart)
	summary.DurationTotal += summary.DurationWrite

	log.Info().
		Str("run_id", summary.RunID).
		Int64("rows_read", summary.RowsRead).
		Int64("rows_written", summary.RowsWritten).
		Int64("group_rows", summary.GroupRows).
		Int64("unparsed_dates", summary.UnparsedDates).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("transform pipeline complete")

	return summary, nil
}

// Plan runs every phase except write and returns what Run would produce.
func Plan(ctx context.Context, log zerolog.Logger, filePath string) (*model.TransformSummary, error) {
	summary, _, err := prepare(ctx, log, filePath)
	return summary, err
}

func prepare(ctx context.Context, log zerolog.Logger, filePath string) (*model.TransformSummary, []model.BillingRow, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	pf, err := Preflight(log, filePath)
	if err != nil {
		return nil, nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}

	// Phase 2: Read
	if err := ctx.Err(); err != nil {
		return nil, nil, &PipelineError{Phase: PhaseRead, Err: err}
	}
	readStart := time.Now()
	table, _, err := tableread.Open(pf.FilePath)
	if err != nil {
		return nil, nil, &PipelineError{Phase: PhaseRead, Err: err}
	}
	readDur := time.Since(readStart)
	log.Info().Int("rows", len(table.Rows)).Int("columns", len(table.Header)).Dur("duration", readDur).Msg("read complete")

	// Phase 3: Validate
	if err := tableread.ValidateHeader(table.Header); err != nil {
		return nil, nil, &PipelineError{Phase: PhaseValidate, Err: err}
	}
	if missing := tableread.MissingRecommended(table.Header); len(missing) > 0 {
		log.Warn().Strs("columns", missing).Msg("export is missing columns; their billing values will be blank")
	}
	removable := model.RemovableColumnsPresent(table.Header)
	log.Debug().Strs("columns", removable).Msg("ignoring unused export columns")

	// Phase 4: Transform
	if err := ctx.Err(); err != nil {
		return nil, nil, &PipelineError{Phase: PhaseTransform, Err: err}
	}
	transformStart := time.Now()
	rows, stats, err := Records(table)
	if err != nil {
		return nil, nil, &PipelineError{Phase: PhaseTransform, Err: err}
	}
	transformDur := time.Since(transformStart)
	log.Info().
		Int64("rows_in", stats.RowsRead).
		Int64("rows_out", stats.RowsWritten).
		Dur("duration", transformDur).
		Msg("transform complete")

	return &model.TransformSummary{
		RunID:             pf.RunID.String(),
		FilePath:          pf.FilePath,
		FileSHA256:        pf.FileSHA256,
		InputFormat:       pf.Format,
		RowsRead:          stats.RowsRead,
		RowsWritten:       stats.RowsWritten,
		GroupRows:         stats.GroupRows,
		UnparsedDates:     stats.UnparsedDates,
		MissingInfo:       stats.MissingInfo,
		RemovableColumns:  removable,
		DurationRead:      readDur,
		DurationTransform: transformDur,
		DurationTotal:     time.Since(totalStart),
	}, rows, nil
}
