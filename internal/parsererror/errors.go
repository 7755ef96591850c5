// Package parsererror defines the error taxonomy for the statement
// extraction pipeline. Errors are scoped: document-level errors abort a
// parse attempt, table- and row-level errors are accumulated and never
// propagate past the orchestrator.
package parsererror

import "fmt"

// UnreadablePDFError indicates the input is not a valid PDF or carries no
// extractable text layer. Fatal to the document's parse attempt.
type UnreadablePDFError struct {
	FileName string
	Reason   string
	Err      error
}

func (e *UnreadablePDFError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("unreadable PDF '%s': %s", e.FileName, e.Reason)
	}
	return fmt.Sprintf("unreadable PDF: %s", e.Reason)
}

func (e *UnreadablePDFError) Unwrap() error {
	return e.Err
}

// UnclassifiableTableError indicates a row-group whose header resolved to
// neither a date column nor any amount/debit/credit column. Scoped to that
// row-group; the rest of the document continues.
type UnclassifiableTableError struct {
	Page   int
	Header []string
}

func (e *UnclassifiableTableError) Error() string {
	return fmt.Sprintf("page %d: table header %v has no recognizable date or amount columns", e.Page, e.Header)
}

// RowParseError indicates a single data row that could not be normalized.
// Scoped to that row; the containing row-group continues.
type RowParseError struct {
	Page  int
	Row   int
	Field string
	Value string
	Err   error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("page %d row %d: failed to parse %s='%s': %v", e.Page, e.Row, e.Field, e.Value, e.Err)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}

// AIExtractionError indicates the AI strategy attempt failed: the service
// call errored or timed out, the response was not valid JSON, the payload
// failed schema validation, or it contained no entries. Triggers fallback
// to the deterministic pipeline when one is configured.
type AIExtractionError struct {
	Stage string // request, decode, schema, empty
	Err   error
}

func (e *AIExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("AI extraction failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("AI extraction failed at %s", e.Stage)
}

func (e *AIExtractionError) Unwrap() error {
	return e.Err
}
