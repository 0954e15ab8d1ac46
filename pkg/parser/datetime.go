package parser

import (
	"strings"
	"time"
)

// Date layouts tried in priority order. First successful parse wins; a
// string that happens to satisfy an earlier layout is not re-validated
// against later ones.
var dateLayouts = []string{
	"2 Jan 2006",
	"02 Jan 2006",
	"2006-01-02",
	"Jan 2, 2006",
	"01/02/2006",
}

// Time layouts tried in priority order: 24-hour first, then 12-hour.
var timeLayouts = []string{
	"15:04",
	"3:04 PM",
}

// ParseDateToMillis converts a date string to epoch milliseconds at
// midnight UTC. Returns nil for blank input or when no layout matches.
func ParseDateToMillis(s string) *int64 {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ms := t.UnixMilli()
			return &ms
		}
	}
	return nil
}

// ParseDateTimeToMillis combines an optional date string and an optional
// time string into epoch milliseconds. An unparseable date yields nil; a
// parseable date with a missing or unparseable time yields the date at
// midnight. Seconds and smaller units are always zero.
func ParseDateTimeToMillis(dateStr, timeStr string) *int64 {
	dateMillis := ParseDateToMillis(dateStr)
	if dateMillis == nil {
		return nil
	}

	raw := strings.TrimSpace(timeStr)
	if raw == "" {
		return dateMillis
	}

	for _, layout := range timeLayouts {
		tm, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		d := time.UnixMilli(*dateMillis).UTC()
		combined := time.Date(d.Year(), d.Month(), d.Day(), tm.Hour(), tm.Minute(), 0, 0, time.UTC)
		ms := combined.UnixMilli()
		return &ms
	}

	return dateMillis
}
