package model

// Input column names read by the transformer.
const (
	ColClientName      = "Client Name"
	ColDate            = "Date"
	ColAppointmentType = "Appointment Type"
	ColUniqueID        = "Unique ID"
	ColGroupAttendance = "Group Attendance"
	ColDiagnosisCodes  = "Client's Diagnosis Codes"
	ColProvider        = "Provider"
	ColStatus          = "Status"
	ColChartNote       = "Chart Note Written"
)

// CMS1500URLPrefix is completed with a client's unique ID to link the claim form.
const CMS1500URLPrefix = "https://secure.gethealthie.com/cms1500s/new/?patient_id="

// CPTCodes maps a raw appointment type to its billing code(s). Keys are matched
// against the whitespace-normalized appointment type, so the double-space entry
// can never match; it is kept as exported by the billing team.
var CPTCodes = map[string]string{
	"Teen Group Session":                          "90853",
	"Parent Group":                                "90853",
	"Individual Therapy Session - 60 minutes":     "90837",
	"Mentor Session - 45 minutes":                 "H0038 - 3",
	"Individual Therapy Session - 45 minutes":     "90834",
	"Case Consultation":                           "90846, 90832",
	"Parent Coaching Session":                     "90846",
	"Family Therapy Session":                      "90847",
	"Evaluation Session":                          "90791",
	"Psychological Assessment":                    "90791",
	"Parent Coaching Session - 30 minutes":        "90846",
	"Individual Therapy Session 30 minutes":       "90832",
	"Individual Therapy Session":                  "90832",
	"Mentor Session - 30 minutes":                 "H0038 - 2",
	"Mentor Session - 60 minutes":                 "H0038 - 4",
	"Parent Coaching Session - Group Appointment": "90846",
	"Health and Wellness Session":                 "H2014",
	"Onboarding Appointment":                      "90791",
	"In-School Session":                           "90837",
	"Family Evaluation Session":                   "90791",
	"Individual Therapy Session  30 minutes":      "90832",
	"Teen Evaluation Session":                     "90791",
}

// EvaluationCPTCode is the code whose occurred sessions require a diagnosis.
const EvaluationCPTCode = "90791"

// CPTCodeFor returns the billing code for a normalized appointment type, or ok=false.
func CPTCodeFor(normalizedType string) (string, bool) {
	code, ok := CPTCodes[normalizedType]
	return code, ok
}

// HeaderMapping maps billing column names to the input column they are copied from.
var HeaderMapping = map[string]string{
	"Date Fixed":         ColDate,
	"Name":               ColClientName,
	"Unique ID":          ColUniqueID,
	"Group Attendance":   ColGroupAttendance,
	"Provider":           ColProvider,
	"Status":             ColStatus,
	"Appointment Type":   ColAppointmentType,
	"Chart Note Written": ColChartNote,
	"Missing Info":       "Missing Info",
	"Appointment ID":     "Appointment ID",
	"CPT Code":           "CPT Code",
}

// SourceColumn returns the input column feeding a billing column, or ok=false
// for billing columns that are derived rather than copied.
func SourceColumn(billingColumn string) (string, bool) {
	col, ok := HeaderMapping[billingColumn]
	return col, ok
}

// ColumnsToRemove lists export columns that carry nothing the billing sheet uses.
// The transformer never reads them; the list is only reported.
var ColumnsToRemove = []string{
	"Client Email", "Client Timezone", "Client State", "Current Status", "DOB",
	"Primary Insurance", "Phone Number", "Scheduled By", "Date of Last Status Change",
	"Scheduled Length", "Actual Duration", "Contact Type", "Location", "Reason", "Notes",
	"Client's Current Group", "Scheduled At",
	"Number of Times Rescheduled By Client", "Tags", "Charting Note Locked",
	"Referring Physician 1 Name", "Referring Physician 1 Phone", "Referring Physician 1 Fax",
	"Referring Physician 2 Name", "Referring Physician 2 Phone", "Referring Physician 2 Fax",
	"Referring Physician 3 Name", "Referring Physician 3 Phone", "Referring Physician 3 Fax",
}

// RemovableColumnsPresent returns the entries of ColumnsToRemove found in header,
// in ColumnsToRemove order.
func RemovableColumnsPresent(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var out []string
	for _, col := range ColumnsToRemove {
		if present[col] {
			out = append(out, col)
		}
	}
	return out
}

// RecommendedColumns are read by the transformer; when absent their values default to "".
var RecommendedColumns = []string{
	ColDate, ColAppointmentType, ColUniqueID, ColGroupAttendance,
	ColDiagnosisCodes, ColProvider, ColStatus, ColChartNote,
}
