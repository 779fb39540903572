package tableread

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/apptbill/internal/model"
)

// ErrEmptyInput is returned when the input has no header row.
var ErrEmptyInput = errors.New("input has no header row")

// ErrInvalidUTF8 is returned when a CSV record is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 (save the export as UTF-8 CSV)")

const utf8BOM = "\ufeff"

// Open reads the export at path, choosing the decoder from the file extension.
func Open(path string) (model.Table, model.Format, error) {
	format, err := model.FormatFromPath(path)
	if err != nil {
		return model.Table{}, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return model.Table{}, "", fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	t, err := Read(f, format)
	return t, format, err
}

// Read decodes an export in the given format.
func Read(r io.Reader, format model.Format) (model.Table, error) {
	switch format {
	case model.FormatCSV:
		return ReadCSV(r)
	case model.FormatXLSX:
		return ReadXLSX(r)
	default:
		return model.Table{}, fmt.Errorf("%s is not a supported input format", format)
	}
}

// ReadCSV decodes a comma-delimited export with a header row. Records may be
// shorter or longer than the header; blank lines are skipped.
func ReadCSV(r io.Reader) (model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return model.Table{}, ErrEmptyInput
	}
	if err != nil {
		return model.Table{}, fmt.Errorf("read csv header: %w", err)
	}
	if !validRecord(header) {
		return model.Table{}, fmt.Errorf("csv header: %w", ErrInvalidUTF8)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	t := model.Table{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if !validRecord(rec) {
			return model.Table{}, fmt.Errorf("csv line %d: %w", line, ErrInvalidUTF8)
		}
		t.Rows = append(t.Rows, rec)
		t.Lines = append(t.Lines, line)
	}
	return t, nil
}

// ReadXLSX decodes the first sheet of a workbook, treating its first row as the header.
func ReadXLSX(r io.Reader) (model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.Table{}, ErrEmptyInput
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return model.Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return model.Table{}, ErrEmptyInput
	}

	t := model.Table{Header: rows[0]}
	for i, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
		t.Lines = append(t.Lines, i+2)
	}
	return t, nil
}

// ReadBytes decodes an in-memory upload, sniffing XLSX by its zip signature.
func ReadBytes(b []byte) (model.Table, model.Format, error) {
	if bytes.HasPrefix(b, []byte("PK\x03\x04")) {
		t, err := ReadXLSX(bytes.NewReader(b))
		return t, model.FormatXLSX, err
	}
	t, err := ReadCSV(bytes.NewReader(b))
	return t, model.FormatCSV, err
}

func validRecord(rec []string) bool {
	for _, field := range rec {
		if !utf8.ValidString(field) {
			return false
		}
	}
	return true
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
