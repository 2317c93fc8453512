package trace

import "strings"

// Day is a calendar-day label such as "Monday".
type Day = string

// FirstDay is used wherever a day label is missing.
const FirstDay Day = "Monday"

// Days lists the recognized labels in calendar order.
var Days = []Day{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ParseDay trims s and matches it case-insensitively against Days.
// It returns the canonical label and whether s was recognized.
func ParseDay(s string) (Day, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Days {
		if strings.EqualFold(s, d) {
			return d, true
		}
	}
	return "", false
}

// DayOrder returns the calendar position of d, or len(Days) when unknown.
func DayOrder(d Day) int {
	for i, known := range Days {
		if known == d {
			return i
		}
	}
	return len(Days)
}
