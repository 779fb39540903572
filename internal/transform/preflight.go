package transform

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/apptbill/internal/model"
	"github.com/gyeh/apptbill/internal/normalize"
)

// PreflightResult holds everything resolved about the input before it is read.
type PreflightResult struct {
	// RunID identifies this run in logs and the summary.
	RunID uuid.UUID
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file.
	FileSHA256 string
	// FileSize is the file size in bytes from os.Stat.
	FileSize int64
	// Format is the input encoding inferred from the extension.
	Format model.Format
}

// Preflight stats and hashes the input file and resolves its format.
func Preflight(log zerolog.Logger, filePath string) (*PreflightResult, error) {
	start := time.Now()

	format, err := model.FormatFromPath(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight format: %w", err)
	}
	if format == model.FormatParquet {
		return nil, fmt.Errorf("preflight format: parquet is an output-only format")
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("preflight stat: %s is a directory", filePath)
	}

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	pf := &PreflightResult{
		RunID:      uuid.New(),
		FilePath:   filePath,
		FileSHA256: sha,
		FileSize:   stat.Size(),
		Format:     format,
	}

	log.Info().
		Str("run_id", pf.RunID.String()).
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("bytes", pf.FileSize).
		Str("format", string(format)).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	return pf, nil
}
