package core

import (
	"testing"
	"time"
)

func ts(y int, mo time.Month, d, h, mi int) time.Time {
	return time.Date(y, mo, d, h, mi, 0, 0, time.UTC)
}

func TestFormatCompletion(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"afternoon", ts(2024, time.January, 5, 15, 30), "Jan 05 2024  3:30PM"},
		{"morning", ts(2024, time.March, 12, 9, 5), "Mar 12 2024  9:05AM"},
		{"midnight", ts(2023, time.December, 31, 0, 0), "Dec 31 2023  12:00AM"},
		{"noon", ts(2024, time.June, 1, 12, 0), "Jun 01 2024  12:00PM"},
		{"late evening", ts(2024, time.October, 9, 23, 59), "Oct 09 2024  11:59PM"},
		{"single digit day pads", ts(2025, time.February, 3, 15, 0), "Feb 03 2025  3:00PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCompletion(tt.in); got != tt.want {
				t.Errorf("FormatCompletion(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCompletion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"canonical", "Jan 05 2024  3:30PM", ts(2024, time.January, 5, 15, 30), true},
		{"midnight", "Dec 31 2023  12:00AM", ts(2023, time.December, 31, 0, 0), true},
		{"noon", "Jun 01 2024  12:00PM", ts(2024, time.June, 1, 12, 0), true},
		{"unpadded day", "Jan 5 2024  3:30PM", ts(2024, time.January, 5, 15, 30), true},
		{"lowercase month", "jan 05 2024  3:30PM", ts(2024, time.January, 5, 15, 30), true},
		{"surrounding whitespace", "  Jan 05 2024  3:30PM  ", ts(2024, time.January, 5, 15, 30), true},
		{"garbage", "garbage", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"single space before time", "Jan 05 2024 3:30PM", time.Time{}, false},
		{"space before meridiem", "Jan 05 2024  3:30 PM", time.Time{}, false},
		{"unknown month", "Foo 05 2024  3:30PM", time.Time{}, false},
		{"two digit year", "Jan 05 24  3:30PM", time.Time{}, false},
		{"hour zero", "Jan 05 2024  0:30AM", time.Time{}, false},
		{"minute out of range", "Jan 05 2024  3:61PM", time.Time{}, false},
		{"day out of range", "Feb 30 2024  3:30PM", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCompletion(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseCompletion(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseCompletion(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompletionRoundTrip(t *testing.T) {
	// decode(encode(d, t)) == (d, t) for every hour and a spread of minutes.
	day := ts(2024, time.July, 19, 0, 0)
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 1, 9, 30, 59} {
			in := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
			text := FormatCompletion(in)
			out, ok := ParseCompletion(text)
			if !ok {
				t.Fatalf("round trip failed to parse %q (hour %d minute %d)", text, hour, minute)
			}
			if !out.Equal(in) {
				t.Fatalf("round trip %v -> %q -> %v", in, text, out)
			}
		}
	}
}

func TestCompletionRoundTrip_AllMonths(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		in := ts(2024, m, 15, 15, 0)
		out, ok := ParseCompletion(FormatCompletion(in))
		if !ok || !out.Equal(in) {
			t.Errorf("month %v did not round trip: got %v, ok=%v", m, out, ok)
		}
	}
}
