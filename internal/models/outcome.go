package models

import "time"

// ParseStatus is the lifecycle state of a document's parse attempt.
type ParseStatus string

const (
	StatusPending    ParseStatus = "PENDING"
	StatusProcessing ParseStatus = "PROCESSING"
	StatusSuccess    ParseStatus = "SUCCESS"
	StatusPartial    ParseStatus = "PARTIAL"
	StatusFailed     ParseStatus = "FAILED"
)

// Strategy identifies which extraction algorithm produced a result set.
type Strategy string

const (
	StrategyDeterministic Strategy = "deterministic"
	StrategyAI            Strategy = "ai"
)

// ExtractionSummary carries the structured counters accumulated across a
// parse attempt. It backs the human-readable error detail.
type ExtractionSummary struct {
	PagesProcessed   int            `json:"pages_processed"`
	TablesFound      int            `json:"tables_found"`
	TablesClassified int            `json:"tables_classified"`
	RowsExtracted    int            `json:"rows_extracted"`
	RowsSkipped      int            `json:"rows_skipped"`
	SkipReasons      map[string]int `json:"skip_reasons,omitempty"`
}

// ParseOutcome is the terminal result of one parse attempt. A new attempt
// produces a new ParseOutcome; prior outcomes are never mutated.
type ParseOutcome struct {
	Status       ParseStatus       `json:"status"`
	Records      []Transaction     `json:"-"`
	ErrorDetail  string            `json:"error_detail,omitempty"`
	StrategyUsed Strategy          `json:"strategy_used"`
	Summary      ExtractionSummary `json:"summary"`
	CompletedAt  time.Time         `json:"completed_at"`
}

// DocumentMeta is the metadata the upload-handling layer supplies alongside
// the PDF byte stream.
type DocumentMeta struct {
	AccountID      string
	FileName       string
	Currency       string
	StatementStart time.Time // zero when the period was not declared
	StatementEnd   time.Time
}

// PeriodDeclared reports whether the upload declared a statement period.
func (m DocumentMeta) PeriodDeclared() bool {
	return !m.StatementStart.IsZero() && !m.StatementEnd.IsZero()
}

// InPeriod reports whether d falls inside the declared statement period.
// Always true when no period was declared.
func (m DocumentMeta) InPeriod(d time.Time) bool {
	if !m.PeriodDeclared() {
		return true
	}
	return !d.Before(m.StatementStart) && !d.After(m.StatementEnd)
}
