package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akpradhn/nitiArthik/internal/models"
)

func debitCreditMap() models.ColumnMap {
	return models.ColumnMap{
		Indices: map[models.Role]int{
			models.RoleDate:        0,
			models.RoleDescription: 1,
			models.RoleDebit:       2,
			models.RoleCredit:      3,
			models.RoleBalance:     4,
		},
		Confidence: map[models.Role]float64{},
	}
}

func amountMap() models.ColumnMap {
	return models.ColumnMap{
		Indices: map[models.Role]int{
			models.RoleDate:        0,
			models.RoleDescription: 1,
			models.RoleAmount:      2,
		},
		Confidence: map[models.Role]float64{},
	}
}

func TestNormalizeDebitCreditLayout(t *testing.T) {
	group := models.RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"01-03-2024", "ATM WITHDRAWAL", "500.00", "", "4500.00"},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, debitCreditMap(), acc)

	require.Len(t, records, 1)
	tx := records[0]
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "ATM WITHDRAWAL", tx.Description)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("500.00")))
	assert.Equal(t, models.DirectionDebit, tx.Direction)
	require.NotNil(t, tx.BalanceAfter)
	assert.True(t, tx.BalanceAfter.Equal(decimal.RequireFromString("4500.00")))
	assert.Equal(t, "INR", tx.Currency)
	assert.Equal(t, models.CategoryUncategorized, tx.Category)
	assert.Equal(t, 1, acc.RowsExtracted)
	assert.Equal(t, 0, acc.RowsSkipped)
}

func TestNormalizeCreditCell(t *testing.T) {
	group := models.RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"02-03-2024", "NEFT IN", "", "45,000.00", "49500.00"},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, debitCreditMap(), acc)

	require.Len(t, records, 1)
	assert.Equal(t, models.DirectionCredit, records[0].Direction)
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("45000.00")))
}

func TestNormalizeSkipsSubtotalRow(t *testing.T) {
	group := models.RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"01-03-2024", "POS PURCHASE", "250.00", "", "4250.00"},
		{"01-03-2024", "TOTAL FOR DAY", "", "", ""},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, debitCreditMap(), acc)

	require.Len(t, records, 1)
	assert.Equal(t, 1, acc.RowsSkipped)
	assert.Equal(t, 1, acc.Reasons[SkipNoAmount])
}

func TestNormalizeSignedAmountPositiveCreditKeyword(t *testing.T) {
	group := models.RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Particulars", "Amount"},
		{"05/03/2024", "SALARY CREDIT", "15000.00"},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, amountMap(), acc)

	require.Len(t, records, 1)
	assert.Equal(t, models.DirectionCredit, records[0].Direction)
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("15000.00")))
}

func TestNormalizeSignedAmountNegativeIsDebit(t *testing.T) {
	group := models.RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Particulars", "Amount"},
		{"05/03/2024", "GROCERY STORE", "-1250.50"},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, amountMap(), acc)

	require.Len(t, records, 1)
	assert.Equal(t, models.DirectionDebit, records[0].Direction)
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("1250.50")))
}

func TestNormalizePositiveAmountDefaultsToDebit(t *testing.T) {
	group := models.RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Particulars", "Amount"},
		{"05/03/2024", "MISC ADJUSTMENT", "300.00"},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, amountMap(), acc)

	require.Len(t, records, 1)
	assert.Equal(t, models.DirectionDebit, records[0].Direction)
}

func TestNormalizeBadDateRescuedFromDescription(t *testing.T) {
	group := models.RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Particulars", "Amount"},
		{"??", "UPI PAYMENT 07-03-2024 REF", "-99.00"},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, amountMap(), acc)

	require.Len(t, records, 1)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), records[0].Date)
}

func TestNormalizeBadDateSkipsRow(t *testing.T) {
	group := models.RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Particulars", "Amount"},
		{"not a date", "NO DATE HERE", "100.00"},
		{"08-03-2024", "OK ROW", "-50.00"},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, amountMap(), acc)

	require.Len(t, records, 1)
	assert.Equal(t, "OK ROW", records[0].Description)
	assert.Equal(t, 1, acc.Reasons[SkipBadDate])
}

func TestNormalizeScanRecoversUnmappedAmount(t *testing.T) {
	// Amount column mapped at 2 is blank; the value sits in an extra column.
	group := models.RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Particulars", "Amount", ""},
		{"09-03-2024", "INTEREST PAID", "", "123.45"},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, amountMap(), acc)

	require.Len(t, records, 1)
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, models.DirectionCredit, records[0].Direction)
}

func TestNormalizeHeaderlessGroupKeepsFirstRow(t *testing.T) {
	group := models.RowGroup{Page: 2, Rows: [][]string{
		{"10-03-2024", "ATM WDL", "-500.00"},
		{"11-03-2024", "REFUND", "250.00"},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, amountMap(), acc)

	require.Len(t, records, 2)
	assert.Equal(t, 0, records[0].Row)
	assert.Equal(t, models.DirectionCredit, records[1].Direction)
}

func TestNormalizeKeepsRowOrder(t *testing.T) {
	group := models.RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"01-03-2024", "FIRST", "10.00", "", ""},
		{"02-03-2024", "SECOND", "", "20.00", ""},
		{"03-03-2024", "THIRD", "30.00", "", ""},
	}}
	acc := NewAccumulator()

	records := NewNormalizer("INR", nil).NormalizeGroup(group, debitCreditMap(), acc)

	require.Len(t, records, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{records[0].Row, records[1].Row, records[2].Row})
}

func TestInferDirection(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want models.Direction
	}{
		{"salary is credit", "MONTHLY SALARY APRIL", models.DirectionCredit},
		{"refund is credit", "AMAZON REFUND 8821", models.DirectionCredit},
		{"cr whole word", "NEFT-CR-AXIS", models.DirectionCredit},
		{"upi is debit", "UPI/GROCERY/1234", models.DirectionDebit},
		{"unknown defaults debit", "MISCELLANEOUS", models.DirectionDebit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferDirection(tt.desc))
		})
	}
}

func TestAccumulatorSummary(t *testing.T) {
	acc := NewAccumulator()
	assert.Empty(t, acc.Summary())

	acc.Skip(SkipBadDate, "row 3")
	acc.Skip(SkipBadDate, "row 7")
	acc.Skip(SkipNoAmount, "row 9")

	assert.Equal(t, "3 row(s) skipped (no_amount: 1, unparseable_date: 2)", acc.Summary())
	assert.Len(t, acc.Details(), 3)
}
