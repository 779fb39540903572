package normalize

import (
	"fmt"
	"strings"

	"github.com/gyeh/apptbill/internal/model"
)

// RowError reports a record that cannot be expanded.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ExpandRow converts one appointment record into one billing row per client.
// A group session listing N clients yields N rows in client-list order.
func ExpandRow(row model.AppointmentRow) ([]model.BillingRow, error) {
	if !row.Has(model.ColClientName) {
		return nil, &RowError{Line: row.Line, Err: model.ErrMissingClientName}
	}

	names := SplitNames(row.Field(model.ColClientName))
	n := len(names)
	uniqueIDs := SplitAligned(row.Field(model.ColUniqueID), n)
	attendance := SplitAligned(row.Field(model.ColGroupAttendance), n)
	diagnoses := SplitAligned(row.Field(model.ColDiagnosisCodes), n)

	normalizedType := NormalizeAppointmentType(row.Field(model.ColAppointmentType))
	cleanedType := CleanAppointmentType(normalizedType)
	cptCode, _ := model.CPTCodeFor(normalizedType)

	date, _ := SplitDate(row.Field(model.ColDate))

	typeAbbr := Abbreviate(cleanedType)
	providerAbbr := Abbreviate(row.Field(model.ColProvider))

	out := make([]model.BillingRow, n)
	for i := range names {
		b := model.BillingRow{
			DateFixed:        date.ISODate,
			Week:             date.Week,
			Month:            date.Month,
			AppointmentID:    strings.Join([]string{date.IDDate, date.IDTime, uniqueIDs[i], typeAbbr, providerAbbr}, "-"),
			AppointmentType:  cleanedType,
			CPTCode:          cptCode,
			Provider:         row.Field(model.ColProvider),
			Status:           row.Field(model.ColStatus),
			Name:             names[i],
			UniqueID:         uniqueIDs[i],
			GroupAttendance:  attendance[i],
			ChartNoteWritten: row.Field(model.ColChartNote),
		}
		if uniqueIDs[i] != "" {
			b.CMS1500 = model.CMS1500URLPrefix + uniqueIDs[i]
		}
		if n > 1 {
			b.Status = GroupStatus(b.GroupAttendance, b.Status)
		}
		b.MissingInfo = strings.Join(MissingInfo(&b, n > 1, diagnoses[i]), ", ")
		out[i] = b
	}
	return out, nil
}

// GroupStatus derives a group client's status from their attendance flag.
// Attendance other than yes or no keeps the exported status.
func GroupStatus(attendance, status string) string {
	switch strings.ToLower(strings.TrimSpace(attendance)) {
	case "yes":
		return model.StatusOccurred
	case "no":
		return model.StatusDidNotAttend
	default:
		return status
	}
}

// MissingInfo returns the tags flagging a billing row for manual review.
// The status check sees the group-attendance override.
func MissingInfo(b *model.BillingRow, group bool, diagnosis string) []string {
	var tags []string
	if group && IsBlank(b.GroupAttendance) {
		tags = append(tags, model.TagAttendance)
	}
	status := strings.TrimSpace(b.Status)
	if status == "" {
		tags = append(tags, model.TagStatus)
	}
	note := strings.ToLower(strings.TrimSpace(b.ChartNoteWritten))
	if note == "no" || note == "" {
		tags = append(tags, model.TagNote)
	}
	if b.CPTCode == model.EvaluationCPTCode && status == model.StatusOccurred && IsBlank(diagnosis) {
		tags = append(tags, model.TagDiagnosis)
	}
	return tags
}
