// Package normalize turns classified table rows into canonical
// transactions. Row failures are absorbed into the accumulator; a bad row
// never aborts its document.
package normalize

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akpradhn/nitiArthik/internal/currencyutils"
	"github.com/akpradhn/nitiArthik/internal/dateutils"
	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/models"
	"github.com/akpradhn/nitiArthik/internal/parsererror"
)

var (
	errNoDateFormat  = errors.New("no known date format matched")
	errNoAmountValue = errors.New("no monetary value found")
)

// creditHints and debitHints drive direction inference when a positive
// signed amount leaves the direction ambiguous. Debit is the default when
// neither list matches.
var (
	creditHints = []string{"credit", "deposit", "salary", "interest", "refund", "reversal", "transfer in", "cr"}
	debitHints  = []string{"debit", "withdrawal", "payment", "pos", "atm", "neft", "imps", "upi", "emi", "charges", "dr"}
)

// Normalizer converts row-group cells into transactions.
type Normalizer struct {
	currency string
	log      logging.Logger
}

// NewNormalizer returns a Normalizer stamping records with the given
// currency code.
func NewNormalizer(currency string, log logging.Logger) *Normalizer {
	if currency == "" {
		currency = "INR"
	}
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	return &Normalizer{currency: currency, log: log}
}

// NormalizeGroup converts every data row of the group under the given
// column map. Unconvertible rows are recorded in the accumulator and
// dropped. Returned records keep the group's row order.
func (n *Normalizer) NormalizeGroup(group models.RowGroup, cm models.ColumnMap, acc *Accumulator) []models.Transaction {
	rows := group.Rows
	start := 0
	if len(rows) > 0 && isHeaderRow(rows[0], cm) {
		start = 1
	}

	var records []models.Transaction
	for i := start; i < len(rows); i++ {
		tx, reason, rerr := n.normalizeRow(rows[i], cm)
		if reason != "" {
			detail := ""
			if rerr != nil {
				rerr.Page = group.Page
				rerr.Row = i
				detail = rerr.Error()
			}
			acc.Skip(reason, detail)
			n.log.Debug("skipped row",
				logging.Field{Key: "page", Value: group.Page},
				logging.Field{Key: "row", Value: i},
				logging.Field{Key: "reason", Value: reason})
			continue
		}

		tx.Page = group.Page
		tx.Row = i
		tx.Currency = n.currency
		records = append(records, tx)
		acc.Record()
	}
	return records
}

// isHeaderRow reports whether the first row is a label row rather than
// data. Positionally classified groups have no header; the date cell of a
// real header never parses as a date.
func isHeaderRow(row []string, cm models.ColumnMap) bool {
	idx, ok := cm.Index(models.RoleDate)
	if !ok || idx >= len(row) {
		return true
	}
	_, err := dateutils.Parse(row[idx])
	return err != nil
}

// normalizeRow converts one data row. On failure it returns a skip reason
// plus a RowParseError carrying the offending cell; reason is empty on
// success. Page and Row on the error are filled in by the caller.
func (n *Normalizer) normalizeRow(row []string, cm models.ColumnMap) (models.Transaction, string, *parsererror.RowParseError) {
	if isEmptyRow(row) {
		return models.Transaction{}, SkipEmptyRow, nil
	}

	desc := cleanDescription(cellFor(row, cm, models.RoleDescription))

	date, ok := n.resolveDate(row, cm, desc)
	if !ok {
		return models.Transaction{}, SkipBadDate, &parsererror.RowParseError{
			Field: "date",
			Value: cellFor(row, cm, models.RoleDate),
			Err:   errNoDateFormat,
		}
	}

	amount, direction, reason := n.resolveAmount(row, cm, desc)
	if reason != "" {
		return models.Transaction{}, reason, &parsererror.RowParseError{
			Field: "amount",
			Value: strings.Join(row, " | "),
			Err:   errNoAmountValue,
		}
	}

	tx := models.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Direction:   direction,
		Category:    models.CategoryUncategorized,
		RawRow:      append([]string(nil), row...),
	}

	if bal := cellFor(row, cm, models.RoleBalance); !currencyutils.IsBlank(bal) {
		if v, err := currencyutils.Parse(bal); err == nil {
			tx.BalanceAfter = &v
		}
	}

	return tx, "", nil
}

// resolveDate parses the date cell through the known formats, then falls
// back to scanning the description for an embedded date.
func (n *Normalizer) resolveDate(row []string, cm models.ColumnMap, desc string) (time.Time, bool) {
	if t, err := dateutils.Parse(cellFor(row, cm, models.RoleDate)); err == nil {
		return t, true
	}
	if t, ok := dateutils.Find(desc); ok {
		return t, true
	}
	return time.Time{}, false
}

// resolveAmount implements the amount/direction precedence: an explicit
// debit/credit column pair wins, then a signed amount column, then a scan
// of the remaining cells. The returned amount is always a magnitude.
func (n *Normalizer) resolveAmount(row []string, cm models.ColumnMap, desc string) (decimal.Decimal, models.Direction, string) {
	if cm.HasSeparateDebitCredit() {
		return resolveDebitCredit(row, cm)
	}

	if idx, ok := cm.Index(models.RoleAmount); ok && idx < len(row) && !currencyutils.IsBlank(row[idx]) {
		v, err := currencyutils.Parse(row[idx])
		if err == nil && !v.IsZero() {
			return v.Abs(), signedDirection(v, desc), ""
		}
	}

	return scanForAmount(row, cm, desc)
}

func resolveDebitCredit(row []string, cm models.ColumnMap) (decimal.Decimal, models.Direction, string) {
	debit := cellFor(row, cm, models.RoleDebit)
	credit := cellFor(row, cm, models.RoleCredit)

	if currencyutils.IsBlank(debit) && currencyutils.IsBlank(credit) {
		return decimal.Zero, "", SkipNoAmount
	}

	if !currencyutils.IsBlank(debit) {
		if v, err := currencyutils.ParseMagnitude(debit); err == nil && !v.IsZero() {
			return v, models.DirectionDebit, ""
		}
	}
	if !currencyutils.IsBlank(credit) {
		if v, err := currencyutils.ParseMagnitude(credit); err == nil && !v.IsZero() {
			return v, models.DirectionCredit, ""
		}
	}
	return decimal.Zero, "", SkipBadAmount
}

// scanForAmount looks through cells that no role claimed for the first
// parseable non-zero number. Recovers rows whose amount landed in an
// unmapped column.
func scanForAmount(row []string, cm models.ColumnMap, desc string) (decimal.Decimal, models.Direction, string) {
	claimed := make(map[int]bool, len(cm.Indices))
	for role, idx := range cm.Indices {
		if role != models.RoleAmount {
			claimed[idx] = true
		}
	}

	for i, cell := range row {
		if claimed[i] || currencyutils.IsBlank(cell) {
			continue
		}
		v, err := currencyutils.Parse(cell)
		if err != nil || v.IsZero() {
			continue
		}
		return v.Abs(), signedDirection(v, desc), ""
	}
	return decimal.Zero, "", SkipNoAmount
}

// signedDirection maps a signed value to a direction. Negative is always
// a debit; a positive value is ambiguous and falls back to description
// keywords, with debit as the safe default.
func signedDirection(v decimal.Decimal, desc string) models.Direction {
	if v.IsNegative() {
		return models.DirectionDebit
	}
	return inferDirection(desc)
}

func inferDirection(desc string) models.Direction {
	lower := strings.ToLower(desc)
	for _, hint := range creditHints {
		if containsHint(lower, hint) {
			return models.DirectionCredit
		}
	}
	for _, hint := range debitHints {
		if containsHint(lower, hint) {
			return models.DirectionDebit
		}
	}
	return models.DirectionDebit
}

// containsHint matches short hints like "cr" as whole words only.
func containsHint(text, hint string) bool {
	if len(hint) > 3 {
		return strings.Contains(text, hint)
	}
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if word == hint {
			return true
		}
	}
	return false
}

var multiSpace = regexp.MustCompile(`\s+`)

func cleanDescription(s string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}

func cellFor(row []string, cm models.ColumnMap, role models.Role) string {
	idx, ok := cm.Index(role)
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
