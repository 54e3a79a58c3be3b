package dateutil

import (
	"strings"
	"time"
)

const (
	displayDateLayout = "02/01/2006"
	wireDateLayout    = "2006-01-02"
	clockLayout       = "15:04"
	localLayout       = "2006-01-02T15:04"
)

// FormatDisplayDate renders the local wall-clock date of t as DD/MM/YYYY.
func FormatDisplayDate(t time.Time) string {
	return t.Local().Format(displayDateLayout)
}

// ParseDisplayDate reshapes DD/MM/YYYY into YYYY-MM-DD. It is a pure string
// transform: impossible dates like 31/02 pass through untouched and only
// fail later, when combined into an instant.
func ParseDisplayDate(display string) string {
	parts := strings.Split(display, "/")
	if len(parts) != 3 {
		return display
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// CombineLocal joins a YYYY-MM-DD date and an HH:MM clock into one local
// date-time literal, parses it in local time, and returns the UTC instant.
// Building the combined literal first is what keeps the wall-clock time
// stable; parsing date and clock separately and merging fields would apply
// the local offset twice.
func CombineLocal(wireDate, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(localLayout, wireDate+"T"+clock, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// DisplayTime inverts CombineLocal's clock component: the local HH:MM of t.
func DisplayTime(t time.Time) string {
	return t.Local().Format(clockLayout)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	lt := t.Local()
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, lt.Location())
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// MaskDate applies the DD/MM/YYYY input mask to free text: non-digits are
// stripped, length is capped at 8 digits, and separators are inserted after
// the 2nd and 4th digit. Incomplete input is kept as typed so far.
func MaskDate(input string) string {
	digits := onlyDigits(input)
	if len(digits) > 8 {
		digits = digits[:8]
	}
	switch {
	case len(digits) >= 5:
		return digits[:2] + "/" + digits[2:4] + "/" + digits[4:]
	case len(digits) >= 3:
		return digits[:2] + "/" + digits[2:]
	default:
		return digits
	}
}

// MaskTime applies the HH:MM input mask: digits only, capped at 4, with ':'
// inserted after the 2nd digit.
func MaskTime(input string) string {
	digits := onlyDigits(input)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) >= 3 {
		return digits[:2] + ":" + digits[2:]
	}
	return digits
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
