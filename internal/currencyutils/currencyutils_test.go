package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		ok       bool
		expected string
	}{
		{"plain", "1234.56", true, "1234.56"},
		{"anglo thousands", "1,234.56", true, "1234.56"},
		{"european thousands", "1.234,56", true, "1234.56"},
		{"comma decimal only", "1234,56", true, "1234.56"},
		{"indian grouping", "1,23,456.78", true, "123456.78"},
		{"indian grouping no decimals", "1,23,456", true, "123456"},
		{"rupee symbol", "₹1,500.00", true, "1500"},
		{"rs prefix", "Rs. 2500", true, "2500"},
		{"inr suffix", "4500.00 INR", true, "4500"},
		{"dollar", "$99.95", true, "99.95"},
		{"apostrophe grouping", "1'234.56", true, "1234.56"},
		{"negative", "-500.00", true, "-500"},
		{"parenthesized negative", "(500.00)", true, "-500"},
		{"trailing dr marker", "500.00 DR", true, "500"},
		{"trailing cr mixed case", "500.00 Cr", true, "500"},
		{"trailing dr with period", "750.25 Dr.", true, "750.25"},
		{"empty", "", false, ""},
		{"dash placeholder", "-", false, ""},
		{"double dash", "--", false, ""},
		{"nil placeholder", "NIL", false, ""},
		{"garbage", "abc", false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			expected, _ := decimal.NewFromString(tc.expected)
			assert.True(t, expected.Equal(got), "got %s, want %s", got, expected)
		})
	}
}

// Both locale conventions must resolve to the same magnitude.
func TestLocaleEquivalence(t *testing.T) {
	anglo, err := Parse("1,234.56")
	assert.NoError(t, err)
	european, err := Parse("1.234,56")
	assert.NoError(t, err)
	assert.True(t, anglo.Equal(european))
	assert.True(t, anglo.Equal(decimal.RequireFromString("1234.56")))
}

func TestParseMagnitude(t *testing.T) {
	got, err := Parse("-1,250.75")
	assert.NoError(t, err)
	assert.True(t, got.IsNegative())

	mag, err := ParseMagnitude("-1,250.75")
	assert.NoError(t, err)
	assert.True(t, mag.Equal(decimal.RequireFromString("1250.75")))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("  "))
	assert.True(t, IsBlank("-"))
	assert.True(t, IsBlank("Nil"))
	assert.False(t, IsBlank("0.00"))
	assert.False(t, IsBlank("500"))
}
