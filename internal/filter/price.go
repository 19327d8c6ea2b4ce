package filter

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// priceRun matches digits with optional thousands commas and an optional fraction.
var priceRun = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParsePrice extracts the first numeric run from a free-text price such as
// "US $42.57" or "$1,234.50". It reports false when the string holds no number.
func ParsePrice(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	m := priceRun.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ComparePrices orders parsed prices, keeping unparseable ones last in both directions.
func ComparePrices(a, b string, ascending bool) int {
	numA, okA := ParsePrice(a)
	numB, okB := ParsePrice(b)

	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}

	if ascending {
		return numA.Cmp(numB)
	}
	return numB.Cmp(numA)
}
