package obstime

import (
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// ISOT is the canonical DATE-OBS layout: UTC, millisecond precision, no zone.
const ISOT = "2006-01-02T15:04:05.000"

// mjdOffset converts a Julian date to a modified Julian date.
const mjdOffset = 2400000.5

// Accepted DATE-OBS layouts, tried in order. Values without a zone are UTC.
var layouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
}

// Parse reads a DATE-OBS value. Empty or unparseable values report false.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(s, "Z") && !strings.Contains(s, "+") {
		s = strings.TrimSuffix(s, "Z")
	}
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Format renders t as an ISOT string in UTC. The zero time renders as "".
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Round(time.Millisecond).Format(ISOT)
}

// JDay's calendar formula holds from 1900-03-01 up to 2100-03-01.
var (
	julianStart = time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC)
	julianEnd   = time.Date(2100, time.March, 1, 0, 0, 0, 0, time.UTC)
)

// MJD returns the modified Julian date of t. It reports false outside
// 1900-03-01..2100-03-01.
func MJD(t time.Time) (float64, bool) {
	t = t.UTC()
	if t.Before(julianStart) || !t.Before(julianEnd) {
		return 0, false
	}
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	jd += float64(t.Nanosecond()) / float64(24*time.Hour)
	return jd - mjdOffset, true
}
