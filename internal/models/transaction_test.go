package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionDirection(t *testing.T) {
	debit := Transaction{Amount: decimal.NewFromFloat(500), Direction: DirectionDebit}
	credit := Transaction{Amount: decimal.NewFromFloat(1500), Direction: DirectionCredit}

	assert.True(t, debit.IsDebit())
	assert.False(t, debit.IsCredit())
	assert.True(t, credit.IsCredit())

	assert.True(t, debit.SignedAmount().Equal(decimal.NewFromFloat(-500)))
	assert.True(t, credit.SignedAmount().Equal(decimal.NewFromFloat(1500)))
}

func TestColumnMapSeparateDebitCredit(t *testing.T) {
	pair := ColumnMap{Indices: map[Role]int{RoleDate: 0, RoleDebit: 2, RoleCredit: 3}}
	single := ColumnMap{Indices: map[Role]int{RoleDate: 0, RoleAmount: 2}}
	none := ColumnMap{Indices: map[Role]int{RoleDate: 0, RoleDescription: 1}}

	assert.True(t, pair.HasSeparateDebitCredit())
	assert.False(t, single.HasSeparateDebitCredit())
	assert.True(t, pair.HasAmountSource())
	assert.True(t, single.HasAmountSource())
	assert.False(t, none.HasAmountSource())
}

func TestRowGroupHeaderAndData(t *testing.T) {
	g := RowGroup{Page: 1, Rows: [][]string{
		{"Date", "Description", "Amount"},
		{"01-03-2024", "ATM WITHDRAWAL", "500.00"},
	}}

	assert.Equal(t, []string{"Date", "Description", "Amount"}, g.Header())
	assert.Len(t, g.DataRows(), 1)

	empty := RowGroup{}
	assert.Nil(t, empty.Header())
	assert.Nil(t, empty.DataRows())
}

func TestDocumentMetaPeriod(t *testing.T) {
	meta := DocumentMeta{
		StatementStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		StatementEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, meta.PeriodDeclared())
	assert.True(t, meta.InPeriod(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, meta.InPeriod(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, meta.InPeriod(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))

	undeclared := DocumentMeta{}
	assert.False(t, undeclared.PeriodDeclared())
	assert.True(t, undeclared.InPeriod(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
}
