// Package store persists parse outcomes and their transaction sets. The
// on-disk layout is one directory per document holding a records CSV and
// an outcome JSON; writes go through temp files and renames so a reader
// never sees a terminal status without its records.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/akpradhn/nitiArthik/internal/dateutils"
	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/models"
)

const (
	recordsFile = "records.csv"
	outcomeFile = "outcome.json"
)

// Store is what the parse worker persists through.
type Store interface {
	SaveOutcome(documentID string, meta models.DocumentMeta, outcome models.ParseOutcome) error
}

// LedgerStore is the file-backed Store.
type LedgerStore struct {
	dir       string
	delimiter rune
	log       logging.Logger
}

// NewLedgerStore returns a store rooted at dir. delimiter is the CSV
// field separator; zero means comma.
func NewLedgerStore(dir string, delimiter rune, log logging.Logger) *LedgerStore {
	if delimiter == 0 {
		delimiter = ','
	}
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	return &LedgerStore{dir: dir, delimiter: delimiter, log: log}
}

// csvRecord is the CSV projection of a Transaction.
type csvRecord struct {
	Date         string `csv:"date"`
	Description  string `csv:"description"`
	Amount       string `csv:"amount"`
	Direction    string `csv:"direction"`
	BalanceAfter string `csv:"balance_after"`
	Currency     string `csv:"currency"`
	Category     string `csv:"category"`
	Page         int    `csv:"page"`
	Row          int    `csv:"row"`
}

func toCSVRecord(t models.Transaction) csvRecord {
	r := csvRecord{
		Date:        dateutils.FormatISO(t.Date),
		Description: t.Description,
		Amount:      t.Amount.String(),
		Direction:   string(t.Direction),
		Currency:    t.Currency,
		Category:    t.Category,
		Page:        t.Page,
		Row:         t.Row,
	}
	if t.BalanceAfter != nil {
		r.BalanceAfter = t.BalanceAfter.String()
	}
	return r
}

func fromCSVRecord(r csvRecord) (models.Transaction, error) {
	date, err := dateutils.Parse(r.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("record date %q: %w", r.Date, err)
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("record amount %q: %w", r.Amount, err)
	}

	t := models.Transaction{
		Date:        date,
		Description: r.Description,
		Amount:      amount,
		Direction:   models.Direction(r.Direction),
		Currency:    r.Currency,
		Category:    r.Category,
		Page:        r.Page,
		Row:         r.Row,
	}
	if r.BalanceAfter != "" {
		bal, err := decimal.NewFromString(r.BalanceAfter)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("record balance %q: %w", r.BalanceAfter, err)
		}
		t.BalanceAfter = &bal
	}
	return t, nil
}

// SaveOutcome writes the document's records and outcome. The records CSV
// is renamed into place before the outcome JSON, so a reader that finds a
// terminal outcome always finds the records it refers to.
func (s *LedgerStore) SaveOutcome(documentID string, meta models.DocumentMeta, outcome models.ParseOutcome) error {
	docDir := s.documentDir(meta.AccountID, documentID)
	if err := os.MkdirAll(docDir, 0o755); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	if err := s.writeRecords(docDir, outcome.Records); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(docDir, outcomeFile), outcome); err != nil {
		return err
	}

	s.log.Info("persisted outcome",
		logging.Field{Key: "document", Value: documentID},
		logging.Field{Key: "status", Value: string(outcome.Status)},
		logging.Field{Key: "records", Value: len(outcome.Records)})

	return nil
}

// LoadOutcome reads a previously saved outcome with its records. A missing
// outcome file means the document never reached a terminal state.
func (s *LedgerStore) LoadOutcome(accountID, documentID string) (models.ParseOutcome, error) {
	docDir := s.documentDir(accountID, documentID)

	var outcome models.ParseOutcome
	data, err := os.ReadFile(filepath.Join(docDir, outcomeFile))
	if err != nil {
		return outcome, fmt.Errorf("reading outcome: %w", err)
	}
	if err := json.Unmarshal(data, &outcome); err != nil {
		return outcome, fmt.Errorf("decoding outcome: %w", err)
	}

	f, err := os.Open(filepath.Join(docDir, recordsFile))
	if err != nil {
		return outcome, fmt.Errorf("opening records: %w", err)
	}
	defer f.Close()

	var rows []csvRecord
	reader := csv.NewReader(f)
	reader.Comma = s.delimiter
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return outcome, fmt.Errorf("decoding records: %w", err)
	}

	for _, row := range rows {
		t, err := fromCSVRecord(row)
		if err != nil {
			return outcome, err
		}
		outcome.Records = append(outcome.Records, t)
	}
	return outcome, nil
}

func (s *LedgerStore) documentDir(accountID, documentID string) string {
	if accountID == "" {
		accountID = "unassigned"
	}
	return filepath.Join(s.dir, accountID, documentID)
}

// writeRecords marshals the transactions to a temp CSV and renames it into
// place. An empty record set still produces a file with a header row.
func (s *LedgerStore) writeRecords(docDir string, records []models.Transaction) error {
	rows := make([]csvRecord, 0, len(records))
	for _, t := range records {
		rows = append(rows, toCSVRecord(t))
	}

	tmp, err := os.CreateTemp(docDir, recordsFile+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp records file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	writer.Comma = s.delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		tmp.Close()
		return fmt.Errorf("writing records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp records file: %w", err)
	}

	return os.Rename(tmp.Name(), filepath.Join(docDir, recordsFile))
}

func writeJSON(path string, v interface{}) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp outcome file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("writing outcome: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp outcome file: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}
