// Package parse handles single-document parsing.
package parse

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/akpradhn/nitiArthik/cmd/root"
	"github.com/akpradhn/nitiArthik/internal/dateutils"
	"github.com/akpradhn/nitiArthik/internal/fileutils"
	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/models"
)

// Cmd represents the parse command.
var Cmd = &cobra.Command{
	Use:   "parse <statement.pdf>",
	Short: "Parse one bank statement PDF",
	Long: `Parse a single bank statement PDF and persist the extracted
transactions as CSV alongside a JSON outcome record.`,
	Args: cobra.ExactArgs(1),
	RunE: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) error {
	input := args[0]

	c, err := root.NewContainer()
	if err != nil {
		return err
	}

	meta, err := BuildMeta(input, root.SharedFlags)
	if err != nil {
		return err
	}

	data, err := fileutils.ReadFile(input)
	if err != nil {
		return err
	}

	root.Log.Info("parsing statement",
		logging.Field{Key: "file", Value: meta.FileName})

	outcome := c.Orchestrator.Parse(cmd.Context(), data, meta)

	documentID := uuid.NewString()
	if err := c.Store.SaveOutcome(documentID, meta, outcome); err != nil {
		return fmt.Errorf("persisting outcome: %w", err)
	}

	fmt.Printf("%s: %s (%d record(s), strategy %s)\n",
		meta.FileName, outcome.Status, len(outcome.Records), outcome.StrategyUsed)
	if outcome.ErrorDetail != "" {
		fmt.Printf("  detail: %s\n", outcome.ErrorDetail)
	}
	fmt.Printf("  document id: %s\n", documentID)

	if outcome.Status == models.StatusFailed {
		return fmt.Errorf("parse failed: %s", outcome.ErrorDetail)
	}
	return nil
}

// BuildMeta assembles document metadata from a file path and the shared
// command flags.
func BuildMeta(path string, flags root.CommonFlags) (models.DocumentMeta, error) {
	meta := models.DocumentMeta{
		AccountID: flags.AccountID,
		FileName:  filepath.Base(path),
		Currency:  flags.Currency,
	}

	if (flags.PeriodStart == "") != (flags.PeriodEnd == "") {
		return meta, fmt.Errorf("period-start and period-end must be given together")
	}
	if flags.PeriodStart != "" {
		start, err := dateutils.Parse(flags.PeriodStart)
		if err != nil {
			return meta, fmt.Errorf("invalid period-start: %w", err)
		}
		end, err := dateutils.Parse(flags.PeriodEnd)
		if err != nil {
			return meta, fmt.Errorf("invalid period-end: %w", err)
		}
		if end.Before(start) {
			return meta, fmt.Errorf("period-end precedes period-start")
		}
		meta.StatementStart = start
		meta.StatementEnd = end
	}

	return meta, nil
}
