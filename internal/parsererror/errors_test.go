package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnreadablePDFError(t *testing.T) {
	inner := errors.New("stream is encrypted")
	err := &UnreadablePDFError{FileName: "statement.pdf", Reason: "no text layer", Err: inner}

	assert.Contains(t, err.Error(), "statement.pdf")
	assert.Contains(t, err.Error(), "no text layer")
	assert.Equal(t, inner, errors.Unwrap(err))

	bare := &UnreadablePDFError{Reason: "not a PDF"}
	assert.Equal(t, "unreadable PDF: not a PDF", bare.Error())
}

func TestUnclassifiableTableError(t *testing.T) {
	err := &UnclassifiableTableError{Page: 3, Header: []string{"Summary", "Total"}}
	assert.Contains(t, err.Error(), "page 3")
	assert.Contains(t, err.Error(), "Summary")
}

func TestRowParseError(t *testing.T) {
	inner := errors.New("unable to parse date")
	err := &RowParseError{Page: 1, Row: 4, Field: "date", Value: "32-13-2024", Err: inner}

	assert.Contains(t, err.Error(), "page 1 row 4")
	assert.Contains(t, err.Error(), "date='32-13-2024'")
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestAIExtractionError(t *testing.T) {
	inner := errors.New("invalid character '<'")
	err := &AIExtractionError{Stage: "decode", Err: inner}

	assert.Contains(t, err.Error(), "decode")
	assert.Equal(t, inner, errors.Unwrap(err))
	assert.Equal(t, "AI extraction failed at empty", (&AIExtractionError{Stage: "empty"}).Error())
}

func TestErrorsAsMatching(t *testing.T) {
	wrapped := fmt.Errorf("parse attempt: %w", &AIExtractionError{Stage: "schema", Err: errors.New("missing field")})

	var aiErr *AIExtractionError
	assert.True(t, errors.As(wrapped, &aiErr))
	assert.Equal(t, "schema", aiErr.Stage)

	var rowErr *RowParseError
	assert.False(t, errors.As(wrapped, &rowErr))
}
