package view

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/matthieukhl/parceltrack/internal/dates"
)

const (
	NotAvailable    = "N/A"
	LatestUpdateMax = 50
	ellipsis        = "..."
)

var monthLike = regexp.MustCompile(`[A-Za-z]{3}`)

// FormatOrderDate renders the order date column, falling back to the added date.
// Values that already look human formatted are passed through untouched.
func FormatOrderDate(orderDate, addedDate string) string {
	if orderDate != "" {
		if looksFormatted(orderDate) {
			return orderDate
		}
		if t, ok := dates.Parse(orderDate); ok {
			return t.Format(dates.DisplayLayout)
		}
		return orderDate
	}

	if addedDate != "" {
		if t, ok := dates.Parse(addedDate); ok {
			return t.Format(dates.DisplayLayout)
		}
		if date, _, found := strings.Cut(addedDate, "T"); found {
			return date
		}
		return addedDate
	}

	return NotAvailable
}

func looksFormatted(s string) bool {
	return strings.Contains(s, ",") || monthLike.MatchString(s)
}

// Truncate cuts s to max runes and appends an ellipsis when anything was dropped.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + ellipsis
}

// StatusClass turns a status label into the badge class used by the page, e.g.
// "In Transit" -> "status-in-transit".
func StatusClass(status string) string {
	return "status-" + strings.Join(strings.Fields(strings.ToLower(status)), "-")
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
