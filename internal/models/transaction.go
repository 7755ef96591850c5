// Package models provides the data structures shared across the extraction
// pipeline.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction states whether a transaction decreases (debit) or increases
// (credit) the account balance.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// CategoryUncategorized is the category assigned to freshly parsed
// transactions; the CRUD layer may change it later, the parser never does.
const CategoryUncategorized = "Uncategorized"

// Transaction is the canonical record all extraction strategies converge to.
//
// Amount is always an unsigned magnitude; Direction alone carries the sign.
// This convention is fixed here and applied uniformly: any signed value met
// during parsing is resolved into (magnitude, direction) before a
// Transaction is built.
type Transaction struct {
	Date         time.Time
	Description  string
	Amount       decimal.Decimal
	Direction    Direction
	BalanceAfter *decimal.Decimal
	Currency     string
	Category     string

	// Provenance, used for ordering and audit. RawRow keeps the original
	// cell data (or the raw AI entry) and is not surfaced by default.
	Page   int
	Row    int
	RawRow []string
}

// IsDebit reports whether the transaction moves money out of the account.
func (t Transaction) IsDebit() bool {
	return t.Direction == DirectionDebit
}

// IsCredit reports whether the transaction moves money into the account.
func (t Transaction) IsCredit() bool {
	return t.Direction == DirectionCredit
}

// SignedAmount returns the amount with debits negated, for callers that
// need a single signed series (e.g. running-balance checks).
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}
