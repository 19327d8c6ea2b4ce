package filter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"US $42.57", "42.57"},
		{"$1,234.50", "1234.5"},
		{"42", "42"},
		{"€ 9.99 EUR", "9.99"},
		{"US $42|42|57", "42"},
		{"ILS 1,000", "1000"},
		{"12.", "12"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePrice(tt.in)
			require.True(t, ok)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParsePriceNoValue(t *testing.T) {
	for _, in := range []string{"", "N/A", "free", ", ."} {
		_, ok := ParsePrice(in)
		assert.False(t, ok, in)
	}
}

func TestComparePrices(t *testing.T) {
	assert.Negative(t, ComparePrices("$5", "$10", true))
	assert.Positive(t, ComparePrices("$5", "$10", false))
	assert.Zero(t, ComparePrices("$5.00", "US $5", true))

	// Unparseable prices stay last in both directions.
	assert.Positive(t, ComparePrices("", "$10", true))
	assert.Positive(t, ComparePrices("", "$10", false))
	assert.Negative(t, ComparePrices("$10", "n/a", true))
	assert.Negative(t, ComparePrices("$10", "n/a", false))
	assert.Zero(t, ComparePrices("", "n/a", true))
}
