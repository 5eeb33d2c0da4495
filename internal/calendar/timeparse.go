// ABOUTME: Fuzzy time parsing for event creation from natural text
// ABOUTME: Handles relative days and H:MM clock times with am/pm suffixes
package calendar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockRegex = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)?`)

// ParseEventTime extracts a point in time from free text relative to now.
// Relative day words shift the date; a trailing H:MM[am|pm] sets the clock
// time on that date. The bool reports whether anything was recognized.
func ParseEventTime(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)

	base := now
	matched := false
	switch {
	case strings.Contains(lower, "tomorrow"):
		base = now.AddDate(0, 0, 1)
		matched = true
	case strings.Contains(lower, "next week"):
		base = now.AddDate(0, 0, 7)
		matched = true
	case strings.Contains(lower, "next month"):
		base = now.AddDate(0, 1, 0)
		matched = true
	case strings.Contains(lower, "today"):
		matched = true
	}

	if m := clockRegex.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		switch m[3] {
		case "pm":
			if hour != 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		if hour < 24 && minute < 60 {
			return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location()), true
		}
	}

	if !matched {
		return time.Time{}, false
	}
	return base, true
}
