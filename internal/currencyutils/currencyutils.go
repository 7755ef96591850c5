// Package currencyutils parses monetary strings from statement cells.
// It tolerates currency symbols, thousands separators and both the
// "1,234.56" and "1.234,56" locale conventions.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Symbols and codes stripped before numeric parsing. Covers the Indian
	// rupee notations the source statements use plus the usual suspects.
	symbolPattern = regexp.MustCompile(`(?i)(₹|rs\.?|inr|chf|eur|usd|gbp|\$|€|£|\s|')`)

	blankValues = map[string]bool{
		"": true, "-": true, "--": true, "nil": true, "n/a": true, "na": true,
	}
)

// IsBlank reports whether a cell holds no monetary value (empty, dash or
// NIL placeholder). Blank cells are expected, e.g. the debit column of a
// credit row, and are not parse errors.
func IsBlank(s string) bool {
	return blankValues[strings.ToLower(strings.TrimSpace(s))]
}

// Parse converts a statement amount cell into a decimal. The sign is
// preserved; callers resolve sign into a direction.
func Parse(s string) (decimal.Decimal, error) {
	if IsBlank(s) {
		return decimal.Zero, fmt.Errorf("blank amount: %q", s)
	}

	d, err := decimal.NewFromString(Standardize(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	return d, nil
}

// ParseMagnitude parses an amount and returns its absolute value.
func ParseMagnitude(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Abs(), nil
}

// Standardize rewrites an amount string into the plain "-1234.56" form
// decimal.NewFromString accepts.
//
// Locale detection: when both separators appear, whichever comes last is
// the decimal point. A lone comma is a decimal point only when the final
// group has at most two digits; otherwise it is a thousands separator.
func Standardize(s string) string {
	s = symbolPattern.ReplaceAllString(s, "")

	// Trailing DR/CR markers occasionally ride along in amount cells,
	// in whatever capitalization the statement uses.
	for _, marker := range []string{"dr.", "cr.", "dr", "cr"} {
		if len(s) > len(marker) && strings.EqualFold(s[len(s)-len(marker):], marker) {
			s = s[:len(s)-len(marker)]
			break
		}
	}

	// Accounting notation: (500.00) means -500.00.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			// European style: 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// Anglo style: 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts[len(parts)-1]) <= 2 {
			// 1234,56: comma is the decimal point
			s = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
		} else {
			// 1,23,456: Indian-style grouping
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	return s
}
