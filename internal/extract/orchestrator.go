// Package extract orchestrates a document's parse attempt: strategy
// selection, page iteration, classification, normalization and the final
// status verdict. All stage failures end up inside the returned
// ParseOutcome; Parse itself never fails.
package extract

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/akpradhn/nitiArthik/internal/classify"
	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/models"
	"github.com/akpradhn/nitiArthik/internal/normalize"
	"github.com/akpradhn/nitiArthik/internal/parsererror"
	"github.com/akpradhn/nitiArthik/internal/pdfext"
	"github.com/akpradhn/nitiArthik/internal/tableextract"
)

// AIStrategy is the slice of the AI pipeline the orchestrator needs.
type AIStrategy interface {
	Extract(ctx context.Context, pdfData []byte, acc *normalize.Accumulator) ([]models.Transaction, error)
}

// Orchestrator wires the extraction stages together. One Orchestrator is
// safe for concurrent Parse calls; each call carries its own state.
type Orchestrator struct {
	source     pdfext.Source
	extractor  *tableextract.Extractor
	classifier *classify.Classifier
	normalizer *normalize.Normalizer
	ai         AIStrategy
	log        logging.Logger
}

// NewOrchestrator assembles an Orchestrator. ai may be nil, in which case
// only the deterministic pipeline runs.
func NewOrchestrator(
	source pdfext.Source,
	extractor *tableextract.Extractor,
	classifier *classify.Classifier,
	normalizer *normalize.Normalizer,
	ai AIStrategy,
	log logging.Logger,
) *Orchestrator {
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	return &Orchestrator{
		source:     source,
		extractor:  extractor,
		classifier: classifier,
		normalizer: normalizer,
		ai:         ai,
		log:        log,
	}
}

// Parse runs one complete parse attempt over the document bytes and
// returns a fresh ParseOutcome. The AI strategy, when configured, is
// attempted first; any AIExtractionError falls back to the deterministic
// pipeline.
func (o *Orchestrator) Parse(ctx context.Context, data []byte, meta models.DocumentMeta) models.ParseOutcome {
	log := o.log.WithField("file", meta.FileName)

	if o.ai != nil {
		acc := normalize.NewAccumulator()
		records, err := o.ai.Extract(ctx, data, acc)
		if err == nil {
			log.Info("AI strategy succeeded",
				logging.Field{Key: "records", Value: len(records)})
			return o.finish(records, acc, models.StrategyAI, meta, models.ExtractionSummary{})
		}
		log.WithError(err).Warn("AI strategy failed, falling back to deterministic pipeline")
	}

	acc := normalize.NewAccumulator()
	records, summary, err := o.deterministic(data, meta, acc)
	if err != nil {
		log.WithError(err).Error("document unreadable")
		return models.ParseOutcome{
			Status:       models.StatusFailed,
			StrategyUsed: models.StrategyDeterministic,
			ErrorDetail:  err.Error(),
			Summary:      summary,
			CompletedAt:  time.Now().UTC(),
		}
	}

	return o.finish(records, acc, models.StrategyDeterministic, meta, summary)
}

// deterministic runs the layout pipeline over every page in order.
func (o *Orchestrator) deterministic(data []byte, meta models.DocumentMeta, acc *normalize.Accumulator) ([]models.Transaction, models.ExtractionSummary, error) {
	var summary models.ExtractionSummary

	pages, err := o.source.Pages(data, meta.FileName)
	if err != nil {
		return nil, summary, err
	}

	var records []models.Transaction
	for _, page := range pages {
		summary.PagesProcessed++

		for _, group := range o.extractor.RowGroups(page) {
			summary.TablesFound++

			cm, err := o.classifier.Classify(group)
			if err != nil {
				var uerr *parsererror.UnclassifiableTableError
				if errors.As(err, &uerr) {
					acc.Skip(normalize.SkipUnclassifiable,
						fmt.Sprintf("page %d header [%s]", uerr.Page, strings.Join(uerr.Header, ", ")))
				} else {
					acc.Skip(normalize.SkipUnclassifiable, err.Error())
				}
				continue
			}
			summary.TablesClassified++

			records = append(records, o.normalizer.NormalizeGroup(group, cm, acc)...)
		}
	}

	// Page-level processing is sequential today, but ordering is restored
	// here regardless so a parallel implementation cannot change results.
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Page != records[j].Page {
			return records[i].Page < records[j].Page
		}
		return records[i].Row < records[j].Row
	})

	return records, summary, nil
}

// finish derives the terminal status and assembles the outcome.
func (o *Orchestrator) finish(records []models.Transaction, acc *normalize.Accumulator, strategy models.Strategy, meta models.DocumentMeta, summary models.ExtractionSummary) models.ParseOutcome {
	summary.RowsExtracted = acc.RowsExtracted
	summary.RowsSkipped = acc.RowsSkipped
	if len(acc.Reasons) > 0 {
		summary.SkipReasons = acc.Reasons
	}

	outcome := models.ParseOutcome{
		Records:      records,
		StrategyUsed: strategy,
		Summary:      summary,
		CompletedAt:  time.Now().UTC(),
	}

	var details []string
	if s := acc.Summary(); s != "" {
		details = append(details, s)
	}
	if n := countOutOfPeriod(records, meta); n > 0 {
		details = append(details, fmt.Sprintf("%d record(s) dated outside the declared statement period", n))
	}
	outcome.ErrorDetail = strings.Join(details, "; ")

	switch {
	case len(records) == 0:
		outcome.Status = models.StatusFailed
		if outcome.ErrorDetail == "" {
			outcome.ErrorDetail = "no transactions could be extracted"
		}
	case acc.RowsSkipped > 0:
		outcome.Status = models.StatusPartial
	default:
		outcome.Status = models.StatusSuccess
	}

	o.log.Info("parse attempt finished",
		logging.Field{Key: "file", Value: meta.FileName},
		logging.Field{Key: "status", Value: string(outcome.Status)},
		logging.Field{Key: "strategy", Value: string(strategy)},
		logging.Field{Key: "records", Value: len(records)},
		logging.Field{Key: "skipped", Value: acc.RowsSkipped})

	return outcome
}

// countOutOfPeriod flags records outside a declared statement period.
// They are reported, never dropped.
func countOutOfPeriod(records []models.Transaction, meta models.DocumentMeta) int {
	if !meta.PeriodDeclared() {
		return 0
	}
	n := 0
	for _, r := range records {
		if !meta.InPeriod(r.Date) {
			n++
		}
	}
	return n
}
