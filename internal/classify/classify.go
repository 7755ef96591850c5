// Package classify maps the header row of an extracted table onto
// transaction column roles. Matching is keyword driven with a fuzzy
// fallback for noisy extractions, and falls back to positional defaults
// for headerless tables.
package classify

import (
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/models"
	"github.com/akpradhn/nitiArthik/internal/parsererror"
)

// Confidence levels recorded per assigned role.
const (
	ConfidenceExact      = 1.0
	ConfidenceFuzzy      = 0.8
	ConfidencePositional = 0.5
)

// Rule binds one column role to the header keywords that identify it.
// Rules are evaluated in slice order, so narrower roles (debit, credit)
// must precede roles with overlapping vocabulary (amount).
type Rule struct {
	Role     models.Role
	Keywords []string
}

// DefaultRules covers the header vocabulary of common bank statements,
// including the abbreviations Indian banks use.
func DefaultRules() []Rule {
	return []Rule{
		{Role: models.RoleDate, Keywords: []string{
			"date", "txn date", "transaction date", "value date", "post date", "posting date",
		}},
		{Role: models.RoleDescription, Keywords: []string{
			"description", "narration", "particulars", "details", "transaction details", "remarks",
		}},
		{Role: models.RoleDebit, Keywords: []string{
			"debit", "withdrawal", "withdrawals", "dr", "paid out", "debit amount", "withdrawal amt",
		}},
		{Role: models.RoleCredit, Keywords: []string{
			"credit", "deposit", "deposits", "cr", "paid in", "credit amount", "deposit amt",
		}},
		{Role: models.RoleAmount, Keywords: []string{
			"amount", "amt", "transaction amount", "txn amount", "value",
		}},
		{Role: models.RoleBalance, Keywords: []string{
			"balance", "closing balance", "running balance", "available balance", "bal",
		}},
	}
}

// Classifier assigns roles to table columns.
type Classifier struct {
	rules []Rule
	log   logging.Logger
}

// NewClassifier builds a Classifier with the given rules. A nil or empty
// rule set falls back to DefaultRules.
func NewClassifier(rules []Rule, log logging.Logger) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	return &Classifier{rules: rules, log: log}
}

var headerSpace = regexp.MustCompile(`\s+`)

// normalizeHeader lowercases a header cell and collapses whitespace,
// including the newlines multi-line headers extract with.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return headerSpace.ReplaceAllString(s, " ")
}

// Classify maps the first row of the group onto column roles. A group
// whose header matches nothing useful is retried positionally (first
// column date, second description). The group is rejected with
// UnclassifiableTableError when no date column or no monetary column can
// be identified.
func (c *Classifier) Classify(group models.RowGroup) (models.ColumnMap, error) {
	header := group.Header()
	cm := models.ColumnMap{
		Indices:    make(map[models.Role]int),
		Confidence: make(map[models.Role]float64),
	}

	for i, cell := range header {
		role, conf, ok := c.matchCell(normalizeHeader(cell))
		if !ok {
			continue
		}
		if _, taken := cm.Indices[role]; taken {
			continue
		}
		cm.Indices[role] = i
		cm.Confidence[role] = conf
	}

	c.applyPositionalFallback(header, &cm)

	_, hasDate := cm.Indices[models.RoleDate]
	if !hasDate && !cm.HasAmountSource() {
		return models.ColumnMap{}, &parsererror.UnclassifiableTableError{Page: group.Page, Header: header}
	}

	c.log.Debug("classified table",
		logging.Field{Key: "page", Value: group.Page},
		logging.Field{Key: "columns", Value: len(cm.Indices)})

	return cm, nil
}

// matchCell tries every rule in order, exact substring first, then a
// fuzzy pass that tolerates extraction noise such as dropped characters.
func (c *Classifier) matchCell(cell string) (models.Role, float64, bool) {
	if cell == "" {
		return "", 0, false
	}

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if matchesKeyword(cell, kw) {
				return rule.Role, ConfidenceExact, true
			}
		}
	}

	// One edit of slack absorbs the dropped or doubled characters that
	// word reassembly sometimes produces. Short keywords are excluded;
	// one edit is too much of their length.
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if len(kw) >= 5 && fuzzy.LevenshteinDistance(cell, kw) <= 1 {
				return rule.Role, ConfidenceFuzzy, true
			}
		}
	}

	return "", 0, false
}

// matchesKeyword treats short keywords like "dr" as whole words only, so
// "dr" stays out of "address"; longer keywords match as substrings.
func matchesKeyword(cell, kw string) bool {
	if len(kw) > 3 {
		return strings.Contains(cell, kw)
	}
	for _, word := range strings.FieldsFunc(cell, func(r rune) bool {
		return r == ' ' || r == '.' || r == '/' || r == '(' || r == ')'
	}) {
		if word == kw {
			return true
		}
	}
	return false
}

// applyPositionalFallback assumes the common headerless layout of date
// first and description second. It only engages when keyword matching
// identified neither role, which is the signature of a table whose first
// row is already data, and it never reuses a column a keyword claimed.
func (c *Classifier) applyPositionalFallback(header []string, cm *models.ColumnMap) {
	_, hasDate := cm.Indices[models.RoleDate]
	_, hasDesc := cm.Indices[models.RoleDescription]
	if hasDate || hasDesc || len(header) < 2 {
		return
	}

	taken := make(map[int]bool, len(cm.Indices))
	for _, idx := range cm.Indices {
		taken[idx] = true
	}

	assign := func(role models.Role, idx int) {
		if taken[idx] {
			return
		}
		cm.Indices[role] = idx
		cm.Confidence[role] = ConfidencePositional
		taken[idx] = true
	}

	assign(models.RoleDate, 0)
	assign(models.RoleDescription, 1)
}
