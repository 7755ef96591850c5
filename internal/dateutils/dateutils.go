// Package dateutils provides date parsing for the formats commonly found
// in bank statements. Parsing tries an ordered list of layouts; the first
// match wins, so day-first layouts are listed before their month-first
// lookalikes.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts used throughout the pipeline.
const (
	LayoutISO      = "2006-01-02"
	LayoutDayFirst = "02-01-2006"
)

// statementFormats is the ordered list of layouts attempted when parsing a
// statement date cell. Day-first formats dominate because the source
// statements are Indian/European bank exports.
var statementFormats = []string{
	LayoutDayFirst,     // DD-MM-YYYY
	"02/01/2006",       // DD/MM/YYYY
	LayoutISO,          // YYYY-MM-DD
	"02-Jan-2006",      // DD-MMM-YYYY
	"02 Jan 2006",      // DD MMM YYYY
	"2 Jan 2006",       // D MMM YYYY
	"02.01.2006",       // DD.MM.YYYY
	"2.1.2006",         // D.M.YYYY
	"02-01-06",         // DD-MM-YY
	"02/01/06",         // DD/MM/YY
	"2006/01/02",       // YYYY/MM/DD
	"Jan 02, 2006",     // MMM DD, YYYY
	"January 2, 2006",  // Month D, YYYY
	"2 January 2006",   // D Month YYYY
}

var (
	spaceRun = regexp.MustCompile(`\s+`)

	// numericDate matches DD-MM-YY(YY) or DD/MM/YY(YY) anywhere in a string.
	// Used to rescue a date embedded in a description cell.
	numericDate = regexp.MustCompile(`(\d{1,2})[-/\.](\d{1,2})[-/\.](\d{2,4})`)
)

// Clean trims and collapses whitespace in a date cell.
func Clean(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Parse attempts each known statement format in order and returns the
// first successful parse.
func Parse(s string) (time.Time, error) {
	cleaned := Clean(s)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, layout := range statementFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// Find locates a numeric day-first date embedded anywhere in s, e.g. a
// posting date folded into a wrapped description cell. Two-digit years are
// interpreted as 20xx.
func Find(s string) (time.Time, bool) {
	m := numericDate.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	day, month, year := m[1], m[2], m[3]
	if len(year) == 2 {
		year = "20" + year
	}
	t, err := time.Parse("2-1-2006", fmt.Sprintf("%s-%s-%s", day, month, year))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ContainsDate reports whether s contains anything date-shaped. The table
// extractor uses this to tell continuation rows from transaction rows.
func ContainsDate(s string) bool {
	if numericDate.MatchString(s) {
		return true
	}
	_, err := Parse(s)
	return err == nil
}

// FormatISO renders a date as YYYY-MM-DD, the exchange format used in
// stored ledgers and AI responses.
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LayoutISO)
}
