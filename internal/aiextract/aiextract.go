// Package aiextract implements transaction extraction through a generative
// model. The model response is never trusted: it is validated against a
// JSON schema and every entry is re-parsed through the same date, amount
// and direction rules the deterministic pipeline uses.
package aiextract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"

	"github.com/akpradhn/nitiArthik/internal/dateutils"
	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/models"
	"github.com/akpradhn/nitiArthik/internal/normalize"
	"github.com/akpradhn/nitiArthik/internal/parsererror"
)

// Client is the transport boundary to the inference service.
type Client interface {
	ExtractTransactions(ctx context.Context, pdfData []byte) (string, error)
}

const responseSchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["date", "description", "amount", "direction"],
		"properties": {
			"date": {"type": "string"},
			"description": {"type": "string"},
			"amount": {"type": "number"},
			"direction": {"enum": ["credit", "debit"]},
			"balance_after": {"type": ["number", "null"]}
		}
	}
}`

var responseSchema = jsonschema.MustCompileString("transactions.json", responseSchemaJSON)

// entry is the wire shape of one model-returned transaction.
type entry struct {
	Date         string       `json:"date"`
	Description  string       `json:"description"`
	Amount       json.Number  `json:"amount"`
	Direction    string       `json:"direction"`
	BalanceAfter *json.Number `json:"balance_after"`
}

// Strategy runs one AI extraction attempt per document.
type Strategy struct {
	client   Client
	currency string
	timeout  time.Duration
	log      logging.Logger
}

// NewStrategy builds a Strategy around the given client. The timeout
// bounds the whole extraction call.
func NewStrategy(client Client, currency string, timeout time.Duration, log logging.Logger) *Strategy {
	if currency == "" {
		currency = "INR"
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	return &Strategy{client: client, currency: currency, timeout: timeout, log: log}
}

// Extract queries the model and converts its response into canonical
// transactions. Structural failures (transport, undecodable or
// schema-invalid payload, zero usable entries) return AIExtractionError
// so the orchestrator can fall back; individually invalid entries are
// counted in the accumulator and dropped.
func (s *Strategy) Extract(ctx context.Context, pdfData []byte, acc *normalize.Accumulator) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.ExtractTransactions(ctx, pdfData)
	if err != nil {
		return nil, &parsererror.AIExtractionError{Stage: "request", Err: err}
	}

	payload := stripFences(raw)

	var generic interface{}
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, &parsererror.AIExtractionError{Stage: "decode", Err: err}
	}

	if err := responseSchema.Validate(generic); err != nil {
		return nil, &parsererror.AIExtractionError{Stage: "schema", Err: err}
	}

	var entries []entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, &parsererror.AIExtractionError{Stage: "decode", Err: err}
	}

	records := make([]models.Transaction, 0, len(entries))
	for i, e := range entries {
		tx, reason := s.convert(e)
		if reason != "" {
			acc.Skip(reason, fmt.Sprintf("entry %d: %s", i, e.Description))
			continue
		}
		tx.Row = i
		records = append(records, tx)
		acc.Record()
	}

	if len(records) == 0 {
		return nil, &parsererror.AIExtractionError{
			Stage: "empty",
			Err:   fmt.Errorf("no usable entries among %d returned", len(entries)),
		}
	}

	s.log.Info("AI extraction complete",
		logging.Field{Key: "entries", Value: len(entries)},
		logging.Field{Key: "records", Value: len(records)})

	return records, nil
}

// convert re-validates one model entry. The schema has already checked
// structure; this checks the values.
func (s *Strategy) convert(e entry) (models.Transaction, string) {
	date, err := dateutils.Parse(e.Date)
	if err != nil {
		return models.Transaction{}, normalize.SkipBadDate
	}

	amount, err := decimal.NewFromString(e.Amount.String())
	if err != nil || !amount.IsPositive() {
		return models.Transaction{}, normalize.SkipBadAmount
	}

	direction := models.Direction(e.Direction)
	if direction != models.DirectionDebit && direction != models.DirectionCredit {
		return models.Transaction{}, normalize.SkipBadAmount
	}

	tx := models.Transaction{
		Date:        date,
		Description: strings.TrimSpace(e.Description),
		Amount:      amount,
		Direction:   direction,
		Currency:    s.currency,
		Category:    models.CategoryUncategorized,
		RawRow:      []string{e.Date, e.Description, e.Amount.String(), e.Direction},
	}

	if e.BalanceAfter != nil {
		if bal, err := decimal.NewFromString(e.BalanceAfter.String()); err == nil {
			tx.BalanceAfter = &bal
		}
		tx.RawRow = append(tx.RawRow, e.BalanceAfter.String())
	}

	return tx, ""
}

// stripFences removes a surrounding markdown code fence, which models
// emit even when told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
