package tablewrite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/gyeh/apptbill/internal/model"
)

// SheetName is the worksheet the billing rows are written to; the billing
// workbook pastes into its "Data" sheet.
const SheetName = "Data"

// Write encodes billing rows in the given format.
func Write(w io.Writer, format model.Format, rows []model.BillingRow) error {
	switch format {
	case model.FormatCSV:
		return WriteCSV(w, rows)
	case model.FormatXLSX:
		return WriteXLSX(w, rows)
	case model.FormatParquet:
		return WriteParquet(w, rows)
	default:
		return fmt.Errorf("%s is not a supported output format", format)
	}
}

// WriteCSV writes the billing header and rows with CRLF line endings.
func WriteCSV(w io.Writer, rows []model.BillingRow) error {
	return writeCSVTable(w, billingTable(rows))
}

// WriteXLSX writes a workbook with the billing header and rows as text cells.
func WriteXLSX(w io.Writer, rows []model.BillingRow) error {
	return writeXLSXTable(w, billingTable(rows))
}

// WriteTable encodes an arbitrary table as CSV or XLSX. Parquet needs a row
// schema and is only available for billing rows.
func WriteTable(w io.Writer, format model.Format, t model.Table) error {
	switch format {
	case model.FormatCSV:
		return writeCSVTable(w, t)
	case model.FormatXLSX:
		return writeXLSXTable(w, t)
	default:
		return fmt.Errorf("%s is not a supported table format", format)
	}
}

func billingTable(rows []model.BillingRow) model.Table {
	t := model.Table{Header: model.BillingHeaders, Rows: make([][]string, len(rows))}
	for i := range rows {
		t.Rows[i] = rows[i].Values()
	}
	return t
}

// writeCSVTable writes CRLF-terminated records, quoting a field only when it
// holds a comma, a double quote, CR or LF. Unlike encoding/csv, a leading space
// or a lone `\.` is written bare.
func writeCSVTable(w io.Writer, t model.Table) error {
	bw := bufio.NewWriter(w)
	if err := writeCSVRecord(bw, t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, rec := range t.Rows {
		if err := writeCSVRecord(bw, rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}

func writeCSVRecord(bw *bufio.Writer, rec []string) error {
	for i, field := range rec {
		if i > 0 {
			bw.WriteByte(',')
		}
		if !strings.ContainsAny(field, ",\"\r\n") {
			bw.WriteString(field)
			continue
		}
		bw.WriteByte('"')
		bw.WriteString(strings.ReplaceAll(field, `"`, `""`))
		bw.WriteByte('"')
	}
	_, err := bw.WriteString("\r\n")
	return err
}

func writeXLSXTable(w io.Writer, t model.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	header := t.Header
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &t.Rows[i]); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// WriteParquet writes the billing rows with the BillingRow schema.
func WriteParquet(w io.Writer, rows []model.BillingRow) error {
	pw := parquet.NewGenericWriter[model.BillingRow](w)
	if _, err := pw.Write(rows); err != nil {
		pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// WriteFile encodes rows to path. The output is staged in a temporary file in the
// same directory and renamed into place, so a failed run leaves no partial file.
func WriteFile(path string, format model.Format, rows []model.BillingRow) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".apptbill-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := Write(tmp, format, rows); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move output into place: %w", err)
	}
	return nil
}
