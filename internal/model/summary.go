package model

import "time"

// TransformSummary captures metrics from a single file transform run.
type TransformSummary struct {
	RunID             string
	FilePath          string
	FileSHA256        string
	InputFormat       Format
	OutputPath        string
	OutputFormat      Format
	RowsRead          int64
	RowsWritten       int64
	GroupRows         int64
	UnparsedDates     int64
	MissingInfo       map[string]int64
	RemovableColumns  []string
	DurationRead      time.Duration
	DurationTransform time.Duration
	DurationWrite     time.Duration
	DurationTotal     time.Duration
}
