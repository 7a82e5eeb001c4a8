package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The DateTermine field carries its timestamp as text in the shape the
// downstream system expects, e.g. "Jan 05 2024  3:30PM": fixed English month
// abbreviation, zero-padded day, four-digit year, two literal spaces, then a
// 12-hour clock with no leading zero on the hour and AM/PM glued to the
// minutes. Month names are pinned to the table below in both directions so
// encode/decode round-trips regardless of the host locale.
var monthAbbrs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var completionPattern = regexp.MustCompile(
	`^([A-Za-z]{3})\s+(\d{1,2})\s+(\d{4})\s{2}(\d{1,2}):(\d{2})(AM|PM)$`,
)

// FormatCompletion encodes a completion timestamp as DateTermine text.
// Hour 0 renders as 12AM, hour 12 as 12PM, and 13-23 as 1-11PM.
func FormatCompletion(t time.Time) string {
	ampm := "AM"
	if t.Hour() >= 12 {
		ampm = "PM"
	}
	hour12 := t.Hour() % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%s %02d %d  %d:%02d%s",
		monthAbbrs[t.Month()-1], t.Day(), t.Year(), hour12, t.Minute(), ampm)
}

// ParseCompletion decodes DateTermine text back into a timestamp. The second
// return value is false for anything that doesn't match the format exactly,
// including unrecognized month abbreviations and out-of-range days. Callers
// treat a failed parse as "no prior value", never as an error.
func ParseCompletion(s string) (time.Time, bool) {
	m := completionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}
	month := 0
	for i, abbr := range monthAbbrs {
		if strings.EqualFold(m[1], abbr) {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	if hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, false
	}
	if m[6] == "PM" && hour != 12 {
		hour += 12
	}
	if m[6] == "AM" && hour == 12 {
		hour = 0
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (Feb 30 becomes Mar 2); a
	// timestamp that moved is not a value, it's garbage.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
