package normalize

import "strings"

// typeRule strips a duration or variant suffix from an appointment type and
// reports whether it matched.
type typeRule func(s string) (string, bool)

// appointmentTypeRules are evaluated in order; the first match wins.
var appointmentTypeRules = []typeRule{
	// "Mentor Session - 45 minutes" -> "Mentor Session"
	func(s string) (string, bool) {
		before, _, found := strings.Cut(s, " - ")
		return before, found
	},
	// Only matches input that has not been through NormalizeAppointmentType.
	func(s string) (string, bool) {
		before, _, found := strings.Cut(s, "  ")
		return before, found
	},
	// "Individual Therapy Session 30 minutes" -> "Individual Therapy Session"
	func(s string) (string, bool) {
		if !strings.Contains(s, " ") {
			return s, false
		}
		tokens := strings.Split(s, " ")
		if !strings.HasSuffix(tokens[len(tokens)-1], "minutes") {
			return s, false
		}
		return strings.Join(tokens[:len(tokens)-2], " "), true
	},
}

// NormalizeAppointmentType collapses whitespace; the result is the CPT lookup key.
func NormalizeAppointmentType(raw string) string {
	return CollapseWhitespace(raw)
}

// CleanAppointmentType strips the duration or variant suffix from a normalized
// appointment type.
func CleanAppointmentType(normalized string) string {
	for _, rule := range appointmentTypeRules {
		if out, ok := rule(normalized); ok {
			return out
		}
	}
	return normalized
}
