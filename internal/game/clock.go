// SPDX-License-Identifier: MIT

package game

import (
	"fmt"
	"time"
)

// Timezone is a fixed UTC offset plus a human label. The display deliberately
// uses a static offset instead of a DST database; the offset is configuration.
type Timezone struct {
	OffsetHours int
	Name        string
}

// FormatLocal renders a UTC start time as "M/D H:MMAM" in the configured
// offset. Hour zero on a 12-hour clock displays as 12.
func FormatLocal(t time.Time, tz Timezone) string {
	if t.IsZero() {
		return "TBD"
	}
	local := t.UTC().Add(time.Duration(tz.OffsetHours) * time.Hour)

	hour := local.Hour()
	amPM := "AM"
	if hour >= 12 {
		amPM = "PM"
	}
	hour12 := hour
	if hour12 > 12 {
		hour12 -= 12
	}
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d/%d %d:%02d%s", int(local.Month()), local.Day(), hour12, local.Minute(), amPM)
}

// ParseEventTime parses the upstream event timestamp. The scoreboard API uses
// RFC 3339 with a "Z" suffix and no seconds in some feeds, so both layouts are
// accepted.
func ParseEventTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty event time")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized event time %q", s)
}
