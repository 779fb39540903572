package transform

import (
	"strings"

	"github.com/gyeh/apptbill/internal/model"
	"github.com/gyeh/apptbill/internal/normalize"
	"github.com/gyeh/apptbill/internal/tableread"
)

// Stats counts what a transform read and produced.
type Stats struct {
	RowsRead      int64
	RowsWritten   int64
	GroupRows     int64
	UnparsedDates int64
	MissingInfo   map[string]int64
}

// Records expands every appointment record into billing rows, preserving input
// order and client-list order within a record. It fails on the first record that
// cannot be expanded, so a bad export never yields a partial sheet.
func Records(t model.Table) ([]model.BillingRow, *Stats, error) {
	if err := tableread.ValidateHeader(t.Header); err != nil {
		return nil, nil, err
	}

	stats := &Stats{MissingInfo: make(map[string]int64, len(model.MissingInfoTags))}
	out := make([]model.BillingRow, 0, len(t.Rows))
	for i, values := range t.Rows {
		rows, err := normalize.ExpandRow(model.NewAppointmentRow(t.Header, values, t.Line(i)))
		if err != nil {
			return nil, nil, err
		}
		stats.RowsRead++
		if len(rows) > 1 {
			stats.GroupRows++
		}
		if rows[0].DateFixed == "" {
			stats.UnparsedDates++
		}
		for j := range rows {
			if rows[j].MissingInfo == "" {
				continue
			}
			for _, tag := range strings.Split(rows[j].MissingInfo, ", ") {
				stats.MissingInfo[tag]++
			}
		}
		out = append(out, rows...)
	}
	stats.RowsWritten = int64(len(out))
	return out, stats, nil
}

// Transform maps an appointment export table to the billing sheet table: the
// fixed billing header followed by one row per client.
func Transform(t model.Table) (model.Table, error) {
	rows, _, err := Records(t)
	if err != nil {
		return model.Table{}, err
	}
	out := model.Table{
		Header: append([]string(nil), model.BillingHeaders...),
		Rows:   make([][]string, len(rows)),
	}
	for i := range rows {
		out.Rows[i] = rows[i].Values()
	}
	return out, nil
}
