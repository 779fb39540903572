package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Table is a header plus records of the same shape.
type Table struct {
	Header []string
	Rows   [][]string

	// Lines holds the 1-based source line of each row when the reader knows it.
	Lines []int
}

// Line returns the source line of row i, assuming one line per record when
// the reader did not track lines.
func (t Table) Line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

// Format identifies a tabular file encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
)

// ParseFormat validates a format name such as "csv" or ".XLSX".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatCSV, FormatXLSX, FormatParquet:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want csv, xlsx or parquet)", s)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer format of %q: no extension", path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatParquet:
		return "application/vnd.apache.parquet"
	default:
		return "text/csv"
	}
}
