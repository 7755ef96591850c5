package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akpradhn/nitiArthik/internal/models"
)

func sampleOutcome() models.ParseOutcome {
	balance := decimal.RequireFromString("4500.00")
	return models.ParseOutcome{
		Status:       models.StatusSuccess,
		StrategyUsed: models.StrategyDeterministic,
		Records: []models.Transaction{
			{
				Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				Description:  "ATM WITHDRAWAL",
				Amount:       decimal.RequireFromString("500.00"),
				Direction:    models.DirectionDebit,
				BalanceAfter: &balance,
				Currency:     "INR",
				Category:     models.CategoryUncategorized,
				Page:         1,
				Row:          1,
			},
			{
				Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
				Description: "SALARY",
				Amount:      decimal.RequireFromString("15000"),
				Direction:   models.DirectionCredit,
				Currency:    "INR",
				Category:    models.CategoryUncategorized,
				Page:        1,
				Row:         2,
			},
		},
		Summary:     models.ExtractionSummary{PagesProcessed: 1, RowsExtracted: 2},
		CompletedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestSaveAndLoadOutcome(t *testing.T) {
	s := NewLedgerStore(t.TempDir(), ',', nil)
	meta := models.DocumentMeta{AccountID: "acct-1", FileName: "stmt.pdf"}

	require.NoError(t, s.SaveOutcome("doc-1", meta, sampleOutcome()))

	loaded, err := s.LoadOutcome("acct-1", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, loaded.Status)
	assert.Equal(t, models.StrategyDeterministic, loaded.StrategyUsed)
	require.Len(t, loaded.Records, 2)
	assert.Equal(t, "ATM WITHDRAWAL", loaded.Records[0].Description)
	assert.True(t, loaded.Records[0].Amount.Equal(decimal.RequireFromString("500.00")))
	require.NotNil(t, loaded.Records[0].BalanceAfter)
	assert.Nil(t, loaded.Records[1].BalanceAfter)
	assert.Equal(t, models.DirectionCredit, loaded.Records[1].Direction)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewLedgerStore(dir, ',', nil)
	meta := models.DocumentMeta{AccountID: "acct-1"}

	require.NoError(t, s.SaveOutcome("doc-1", meta, sampleOutcome()))

	entries, err := os.ReadDir(filepath.Join(dir, "acct-1", "doc-1"))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"records.csv", "outcome.json"}, names)
}

func TestSaveCustomDelimiter(t *testing.T) {
	dir := t.TempDir()
	s := NewLedgerStore(dir, ';', nil)
	meta := models.DocumentMeta{AccountID: "acct-1"}

	require.NoError(t, s.SaveOutcome("doc-1", meta, sampleOutcome()))

	data, err := os.ReadFile(filepath.Join(dir, "acct-1", "doc-1", "records.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "date;description;amount")

	loaded, err := s.LoadOutcome("acct-1", "doc-1")
	require.NoError(t, err)
	assert.Len(t, loaded.Records, 2)
}

func TestSaveFailedOutcomeWritesHeaderOnlyCSV(t *testing.T) {
	dir := t.TempDir()
	s := NewLedgerStore(dir, ',', nil)
	outcome := models.ParseOutcome{
		Status:      models.StatusFailed,
		ErrorDetail: "no transactions could be extracted",
	}

	require.NoError(t, s.SaveOutcome("doc-2", models.DocumentMeta{AccountID: "acct-1"}, outcome))

	data, err := os.ReadFile(filepath.Join(dir, "acct-1", "doc-2", "records.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "date")
}

func TestLoadOutcomeMissingDocument(t *testing.T) {
	s := NewLedgerStore(t.TempDir(), ',', nil)

	_, err := s.LoadOutcome("acct-1", "nope")

	assert.Error(t, err)
}

func TestSaveOutcomeDefaultsAccountDirectory(t *testing.T) {
	dir := t.TempDir()
	s := NewLedgerStore(dir, ',', nil)

	require.NoError(t, s.SaveOutcome("doc-3", models.DocumentMeta{}, sampleOutcome()))

	_, err := os.Stat(filepath.Join(dir, "unassigned", "doc-3", "outcome.json"))
	assert.NoError(t, err)
}
