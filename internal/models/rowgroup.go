package models

// RowGroup is a contiguous grid of table cells extracted from one page,
// representing one logical table. Ephemeral: produced by the table
// extractor and consumed immediately by the column classifier.
type RowGroup struct {
	Page int
	Rows [][]string
}

// Header returns the first row of the grid, or nil for an empty group.
// Statements without a distinct header line still classify against this
// row; the classifier falls back to positional rules when it matches
// nothing.
func (g RowGroup) Header() []string {
	if len(g.Rows) == 0 {
		return nil
	}
	return g.Rows[0]
}

// DataRows returns everything below the header row.
func (g RowGroup) DataRows() [][]string {
	if len(g.Rows) < 2 {
		return nil
	}
	return g.Rows[1:]
}

// Role is the canonical semantic meaning of a statement table column.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleDebit       Role = "debit"
	RoleCredit      Role = "credit"
	RoleAmount      Role = "amount"
	RoleBalance     Role = "balance"
)

// ColumnMap assigns canonical roles to column indices for one row-group.
// It lives only for the lifetime of that group's processing.
type ColumnMap struct {
	Indices    map[Role]int
	Confidence map[Role]float64
}

// Index returns the column index for a role, with ok=false when the role
// was not resolved.
func (m ColumnMap) Index(r Role) (int, bool) {
	i, ok := m.Indices[r]
	return i, ok
}

// HasSeparateDebitCredit reports whether the statement uses the explicit
// two-column debit/credit layout, which takes precedence over a single
// signed amount column.
func (m ColumnMap) HasSeparateDebitCredit() bool {
	_, d := m.Indices[RoleDebit]
	_, c := m.Indices[RoleCredit]
	return d && c
}

// HasAmountSource reports whether any column can yield a monetary value.
func (m ColumnMap) HasAmountSource() bool {
	for _, r := range []Role{RoleAmount, RoleDebit, RoleCredit} {
		if _, ok := m.Indices[r]; ok {
			return true
		}
	}
	return false
}
