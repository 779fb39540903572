package normalize

import (
	"strings"
	"time"
)

// dateLayout is one attempt in the appointment date fallback chain. When zones
// is set, the value must end in a space and one of those zone names (any case),
// which is cut off before parsing. Otherwise strip trailing characters are
// removed before parsing.
type dateLayout struct {
	layout string
	zones  []string
	strip  int
}

// Appointment exports write "2024-03-07 10:00:00 EST". Only UTC and GMT are read
// as zone names; any other three-letter zone is dropped with its leading space
// by the second attempt. Month, day and clock fields may omit leading zeros.
var dateLayouts = []dateLayout{
	{layout: "2006-1-2 15:4:5", zones: []string{"UTC", "GMT"}},
	{layout: "2006-1-2 15:4:5", strip: 4},
}

// ParseAppointmentTime parses an export timestamp using the fallback chain.
// The zone is not interpreted; only the wall clock is kept.
func ParseAppointmentTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, dl := range dateLayouts {
		v, ok := dl.trim(s)
		if !ok {
			continue
		}
		if t, err := time.Parse(dl.layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (dl dateLayout) trim(s string) (string, bool) {
	if len(dl.zones) > 0 {
		i := strings.LastIndexByte(s, ' ')
		if i < 0 {
			return "", false
		}
		for _, z := range dl.zones {
			if strings.EqualFold(s[i+1:], z) {
				return s[:i], true
			}
		}
		return "", false
	}
	if len(s) < dl.strip {
		return "", false
	}
	return s[:len(s)-dl.strip], true
}

// DateParts holds every date-derived billing value for one appointment.
// All fields are empty when the date could not be parsed.
type DateParts struct {
	ISODate string // 2024-03-07
	Week    string // Monday of the week, 3/4/2024
	Month   string // March 24
	IDDate  string // 030724
	IDTime  string // 1000
}

// SplitDate derives the billing date values from an export timestamp.
func SplitDate(s string) (DateParts, bool) {
	t, ok := ParseAppointmentTime(s)
	if !ok {
		return DateParts{}, false
	}
	return DateParts{
		ISODate: t.Format("2006-01-02"),
		Week:    WeekStart(t).Format("1/2/2006"),
		Month:   t.Format("January 06"),
		IDDate:  t.Format("010206"),
		IDTime:  t.Format("1504"),
	}, true
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
