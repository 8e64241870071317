package transit

import (
	"strings"
	"time"
)

// TimeOnlyCompare compares two times by hour first, then minute, ignoring
// date and seconds. Returns -1, 0 or 1.
func TimeOnlyCompare(a, b time.Time) int {
	if a.Hour() == b.Hour() && a.Minute() == b.Minute() {
		return 0
	}
	if a.Hour() > b.Hour() {
		return 1
	}
	if a.Hour() == b.Hour() && a.Minute() > b.Minute() {
		return 1
	}
	return -1
}

// FormatTime renders a wall-clock time on a 12-hour clock, e.g. "08:30 AM".
func FormatTime(t time.Time) string {
	return t.Format("03:04 PM")
}

// FirstLetters concatenates the first letter of each whitespace-separated
// word, so "Super Luxury" becomes "SL".
func FirstLetters(s string) string {
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		b.WriteString(word[:1])
	}
	return b.String()
}

// FormatMobileNo groups a raw mobile number for display, e.g. "0712345678"
// becomes "07-123 45678".
func FormatMobileNo(no string) string {
	if len(no) <= 2 {
		return no
	}
	formatted := no[:2] + "-" + no[2:]
	if len(formatted) > 6 {
		formatted = formatted[:6] + " " + formatted[6:]
	}
	return formatted
}
