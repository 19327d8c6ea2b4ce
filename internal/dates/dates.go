// Package dates parses the loosely formatted timestamps the tracker server emits.
package dates

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DisplayLayout renders calendar dates as "Nov 11, 2025".
const DisplayLayout = "Jan 2, 2006"

// Layouts tried after cast's own list; cast has no "Mon D, YYYY" form.
var extraLayouts = []string{
	DisplayLayout,
	"January 2, 2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006 15:04:05",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04",
}

// Parse returns the instant s denotes. Values without a zone are read as UTC.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := cast.ToTimeE(s); err == nil {
		return t, true
	}

	for _, layout := range extraLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Epoch is what missing or unreadable dates sort as.
var Epoch = time.Unix(0, 0).UTC()

// ParseOrEpoch is Parse with the epoch substituted for failures.
func ParseOrEpoch(s string) time.Time {
	if t, ok := Parse(s); ok {
		return t
	}
	return Epoch
}
