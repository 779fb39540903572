package normalize

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gyeh/apptbill/internal/model"
)

func row(fields map[string]string) model.AppointmentRow {
	header := make([]string, 0, len(fields))
	values := make([]string, 0, len(fields))
	for k, v := range fields {
		header = append(header, k)
		values = append(values, v)
	}
	return model.NewAppointmentRow(header, values, 2)
}

func TestExpandRow_GroupSession(t *testing.T) {
	rows, err := ExpandRow(row(map[string]string{
		"Client Name":        "Alice, Bob",
		"Date":               "2024-03-07 10:00:00 EST",
		"Appointment Type":   "Individual Therapy Session - 45 minutes",
		"Unique ID":          "111,222",
		"Group Attendance":   "yes,no",
		"Status":             "",
		"Chart Note Written": "no",
		"Provider":           "Jane Q Doe",
	}))
	if err != nil {
		t.Fatalf("ExpandRow: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	a, b := rows[0], rows[1]
	if a.Name != "Alice" || b.Name != "Bob" {
		t.Errorf("names = %q, %q", a.Name, b.Name)
	}
	if a.Status != "Occurred" {
		t.Errorf("row 1 status = %q, want Occurred", a.Status)
	}
	if b.Status != "Did not attend" {
		t.Errorf("row 2 status = %q, want Did not attend", b.Status)
	}
	if a.MissingInfo != "Note" {
		t.Errorf("row 1 missing info = %q, want Note", a.MissingInfo)
	}
	if a.CPTCode != "90834" {
		t.Errorf("cpt = %q, want 90834", a.CPTCode)
	}
	if a.AppointmentType != "Individual Therapy Session" {
		t.Errorf("appointment type = %q", a.AppointmentType)
	}
	if a.AppointmentID != "030724-1000-111-ITS-JQD" {
		t.Errorf("appointment id = %q", a.AppointmentID)
	}
	if b.CMS1500 != model.CMS1500URLPrefix+"222" {
		t.Errorf("cms1500 = %q", b.CMS1500)
	}
	if a.DateFixed != "2024-03-07" || a.Week != "3/4/2024" || a.Month != "March 24" {
		t.Errorf("date fields = %q %q %q", a.DateFixed, a.Week, a.Month)
	}
	if a.Billed != "" || a.FamilyID != "" || a.BillingStatus != "" {
		t.Errorf("expected blank billed/family/billing status columns")
	}
}

func TestExpandRow_EvaluationNeedsDiagnosis(t *testing.T) {
	rows, err := ExpandRow(row(map[string]string{
		"Client Name":        "Carol",
		"Date":               "2024-01-15 09:30:00 PST",
		"Appointment Type":   "Evaluation  Session",
		"Status":             "Occurred",
		"Chart Note Written": "Yes",
	}))
	if err != nil {
		t.Fatalf("ExpandRow: %v", err)
	}
	if rows[0].CPTCode != "90791" {
		t.Fatalf("cpt = %q, want 90791", rows[0].CPTCode)
	}
	if rows[0].MissingInfo != "Diagnosis" {
		t.Errorf("missing info = %q, want Diagnosis", rows[0].MissingInfo)
	}

	rows, _ = ExpandRow(row(map[string]string{
		"Client Name":              "Carol",
		"Appointment Type":         "Evaluation Session",
		"Status":                   "Occurred",
		"Chart Note Written":       "Yes",
		"Client's Diagnosis Codes": "F41.1",
	}))
	if rows[0].MissingInfo != "" {
		t.Errorf("missing info = %q, want empty", rows[0].MissingInfo)
	}
}

func TestExpandRow_UnparseableDate(t *testing.T) {
	rows, err := ExpandRow(row(map[string]string{
		"Client Name":      "Dan",
		"Date":             "not a date",
		"Appointment Type": "Family Therapy Session",
		"Unique ID":        "42",
		"Provider":         "Sam Lee",
	}))
	if err != nil {
		t.Fatalf("ExpandRow: %v", err)
	}
	r := rows[0]
	if r.DateFixed != "" || r.Week != "" || r.Month != "" {
		t.Errorf("expected empty date fields, got %q %q %q", r.DateFixed, r.Week, r.Month)
	}
	if r.AppointmentID != "--42-FTS-SL" {
		t.Errorf("appointment id = %q, want --42-FTS-SL", r.AppointmentID)
	}
	if strings.Count(r.AppointmentID, "-") != 4 {
		t.Errorf("appointment id lost its dash structure: %q", r.AppointmentID)
	}
}

func TestExpandRow_SingleClientNeverFlagsAttendance(t *testing.T) {
	rows, err := ExpandRow(row(map[string]string{
		"Client Name":        "Erin",
		"Group Attendance":   "  ",
		"Status":             "Occurred",
		"Chart Note Written": "yes",
	}))
	if err != nil {
		t.Fatalf("ExpandRow: %v", err)
	}
	if strings.Contains(rows[0].MissingInfo, "Attendance") {
		t.Errorf("single client flagged attendance: %q", rows[0].MissingInfo)
	}
	if rows[0].Status != "Occurred" {
		t.Errorf("status overridden for single client: %q", rows[0].Status)
	}
}

func TestExpandRow_GroupMissingAttendance(t *testing.T) {
	rows, err := ExpandRow(row(map[string]string{
		"Client Name":        "A, B, C",
		"Group Attendance":   "yes, , maybe",
		"Status":             "Pending",
		"Chart Note Written": "",
	}))
	if err != nil {
		t.Fatalf("ExpandRow: %v", err)
	}
	want := []struct{ status, missing string }{
		{"Occurred", "Note"},
		{"Pending", "Attendance, Note"},
		{"Pending", "Note"},
	}
	for i, w := range want {
		if rows[i].Status != w.status || rows[i].MissingInfo != w.missing {
			t.Errorf("row %d: status=%q missing=%q, want %q %q",
				i, rows[i].Status, rows[i].MissingInfo, w.status, w.missing)
		}
	}
}

func TestExpandRow_AllTagsInOrder(t *testing.T) {
	rows, err := ExpandRow(row(map[string]string{
		"Client Name":      "A, B",
		"Appointment Type": "Teen Evaluation Session",
		"Group Attendance": "",
		"Status":           "",
	}))
	if err != nil {
		t.Fatalf("ExpandRow: %v", err)
	}
	if rows[0].MissingInfo != "Attendance, Status, Note" {
		t.Errorf("missing info = %q", rows[0].MissingInfo)
	}
}

func TestExpandRow_MissingClientName(t *testing.T) {
	_, err := ExpandRow(row(map[string]string{"Date": "2024-03-07 10:00:00 EST"}))
	if !errors.Is(err, model.ErrMissingClientName) {
		t.Fatalf("expected ErrMissingClientName, got %v", err)
	}
	var re *RowError
	if !errors.As(err, &re) || re.Line != 2 {
		t.Errorf("expected RowError on line 2, got %v", err)
	}
}

func TestExpandRow_RowCountMatchesClients(t *testing.T) {
	for _, names := range []string{"", "A", "A,B", "A, B, C, D", " , "} {
		rows, err := ExpandRow(row(map[string]string{"Client Name": names}))
		if err != nil {
			t.Fatalf("ExpandRow(%q): %v", names, err)
		}
		if want := strings.Count(names, ",") + 1; len(rows) != want {
			t.Errorf("ExpandRow(%q) = %d rows, want %d", names, len(rows), want)
		}
	}
}

func TestSplitAligned(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want []string
	}{
		{"", 2, []string{"", ""}},
		{"   ", 1, []string{""}},
		{"1", 3, []string{"1", "", ""}},
		{"1, 2 ,3", 2, []string{"1", "2"}},
		{"1,,3", 3, []string{"1", "", "3"}},
	}
	for _, tt := range tests {
		if got := SplitAligned(tt.in, tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitAligned(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestCleanAppointmentType(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Mentor Session - 45 minutes", "Mentor Session"},
		{"Parent Coaching Session - Group Appointment", "Parent Coaching Session"},
		{"Individual Therapy Session 30 minutes", "Individual Therapy Session"},
		{"Individual Therapy Session  30 minutes", "Individual Therapy Session"},
		{"Family Therapy Session", "Family Therapy Session"},
		{"minutes", "minutes"},
		{"30 minutes", ""},
		{"In-School Session", "In-School Session"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanAppointmentType(tt.in); got != tt.want {
			t.Errorf("CleanAppointmentType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAppointmentType_Idempotent(t *testing.T) {
	for _, in := range []string{"  Evaluation \t Session ", "Mentor Session - 30 minutes", "", "a  b   c"} {
		once := NormalizeAppointmentType(in)
		if twice := NormalizeAppointmentType(once); twice != once {
			t.Errorf("normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestAbbreviate(t *testing.T) {
	tests := map[string]string{
		"Individual Therapy Session": "ITS",
		"  jane   doe ":              "JD",
		"":                           "",
		"In-School Session":          "IS",
		"élan vital":                 "ÉV",
	}
	for in, want := range tests {
		if got := Abbreviate(in); got != want {
			t.Errorf("Abbreviate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitDate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want DateParts
	}{
		{"2024-03-07 10:00:00 EST", true, DateParts{"2024-03-07", "3/4/2024", "March 24", "030724", "1000"}},
		{"2024-03-10 18:45:00 UTC", true, DateParts{"2024-03-10", "3/4/2024", "March 24", "031024", "1845"}},
		{"2024-03-04 08:05:00 ABC", true, DateParts{"2024-03-04", "3/4/2024", "March 24", "030424", "0805"}},
		{"2024-03-04 08:05:00 xyz", true, DateParts{"2024-03-04", "3/4/2024", "March 24", "030424", "0805"}},
		{"2024-03-04 08:05:00 gmt", true, DateParts{"2024-03-04", "3/4/2024", "March 24", "030424", "0805"}},
		{"2024-3-7 9:00:00 EST", true, DateParts{"2024-03-07", "3/4/2024", "March 24", "030724", "0900"}},
		{"2024-3-7 9:5:7 UTC", true, DateParts{"2024-03-07", "3/4/2024", "March 24", "030724", "0905"}},
		{"2024-03-04 08:05:00 +EST", false, DateParts{}},
		{"2024-03-07 10:00:00 AKST", false, DateParts{}},
		{"2024-03-07 10:00:00 CEST", false, DateParts{}},
		{"2024-03-07 10:00:00 AEST", false, DateParts{}},
		{"2024-03-07 10:00:00 GMT+1", false, DateParts{}},
		{"2025-01-01 00:00:00 XYZW", false, DateParts{}},
		{"2024-03-07 10:00:00", false, DateParts{}},
		{"not a date", false, DateParts{}},
		{"", false, DateParts{}},
		{"abc", false, DateParts{}},
	}
	for _, tt := range tests {
		got, ok := SplitDate(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("SplitDate(%q) = %+v, %v; want %+v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
