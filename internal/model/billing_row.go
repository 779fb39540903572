package model

// BillingHeaders is the fixed column order of the billing sheet.
var BillingHeaders = []string{
	"Billed", "CMS1500", "Family ID", "Unique ID", "Appointment ID", "Date Fixed", "Week", "Month",
	"Appointment Type", "CPT Code", "Provider", "Status", "Billing Status",
	"Name", "Group Attendance", "Chart Note Written", "Missing Info",
}

// Missing Info tags, in the order they are appended.
const (
	TagAttendance = "Attendance"
	TagStatus     = "Status"
	TagNote       = "Note"
	TagDiagnosis  = "Diagnosis"
)

// MissingInfoTags lists every Missing Info tag in evaluation order.
var MissingInfoTags = []string{TagAttendance, TagStatus, TagNote, TagDiagnosis}

// Status values written for group sessions from the attendance column.
const (
	StatusOccurred     = "Occurred"
	StatusDidNotAttend = "Did not attend"
)

// BillingRow is one client's line on the billing sheet. Field order matches
// BillingHeaders; the parquet tags are the Parquet output schema.
type BillingRow struct {
	Billed           string `parquet:"billed"`
	CMS1500          string `parquet:"cms1500"`
	FamilyID         string `parquet:"family_id"`
	UniqueID         string `parquet:"unique_id"`
	AppointmentID    string `parquet:"appointment_id"`
	DateFixed        string `parquet:"date_fixed"`
	Week             string `parquet:"week"`
	Month            string `parquet:"month"`
	AppointmentType  string `parquet:"appointment_type"`
	CPTCode          string `parquet:"cpt_code"`
	Provider         string `parquet:"provider"`
	Status           string `parquet:"status"`
	BillingStatus    string `parquet:"billing_status"`
	Name             string `parquet:"name"`
	GroupAttendance  string `parquet:"group_attendance"`
	ChartNoteWritten string `parquet:"chart_note_written"`
	MissingInfo      string `parquet:"missing_info"`
}

// Values returns the row's fields in BillingHeaders order.
func (r *BillingRow) Values() []string {
	return []string{
		r.Billed,
		r.CMS1500,
		r.FamilyID,
		r.UniqueID,
		r.AppointmentID,
		r.DateFixed,
		r.Week,
		r.Month,
		r.AppointmentType,
		r.CPTCode,
		r.Provider,
		r.Status,
		r.BillingStatus,
		r.Name,
		r.GroupAttendance,
		r.ChartNoteWritten,
		r.MissingInfo,
	}
}
