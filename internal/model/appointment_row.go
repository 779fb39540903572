package model

// AppointmentRow is one record of the appointment export, keyed by header name.
// Lookups are total: a column absent from the export reads as "".
type AppointmentRow struct {
	// Line is the 1-based line of the record in the source file, counting the header.
	Line   int
	fields map[string]string
}

// NewAppointmentRow zips a header with one record's values. Cells past the end
// of a short record are treated as absent, extra cells past the header are dropped.
// When a header repeats a name, the last occurrence wins.
func NewAppointmentRow(header, values []string, line int) AppointmentRow {
	fields := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(values) {
			fields[h] = values[i]
		}
	}
	return AppointmentRow{Line: line, fields: fields}
}

// Field returns the value of the named column, or "" when the column is absent.
func (r AppointmentRow) Field(name string) string {
	return r.fields[name]
}

// Has reports whether the record carries a value for the named column.
func (r AppointmentRow) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}
