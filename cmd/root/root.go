// Package root contains the root command for the application.
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akpradhn/nitiArthik/internal/config"
	"github.com/akpradhn/nitiArthik/internal/container"
	"github.com/akpradhn/nitiArthik/internal/logging"
)

// CommonFlags holds the flags shared by the parse and batch commands.
type CommonFlags struct {
	AccountID   string
	Currency    string
	OutputDir   string
	PeriodStart string
	PeriodEnd   string
}

var (
	// Log is the shared logger, configured in PersistentPreRunE.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cfg is the resolved configuration, loaded in PersistentPreRunE.
	Cfg *config.Config

	// SharedFlags are the common flag values for all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "nitiarthik",
		Short: "Parse bank statement PDFs into a normalized transaction ledger.",
		Long: `nitiarthik extracts transactions from bank statement PDFs.
It recovers the transaction table from the PDF text layer, classifies the
columns, and normalizes every row into a canonical record. When a Gemini
API key is configured, an AI extraction pass is tried first with the
deterministic pipeline as fallback.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if SharedFlags.OutputDir != "" {
				cfg.Output.Directory = SharedFlags.OutputDir
			}
			if SharedFlags.Currency != "" {
				cfg.Parser.DefaultCurrency = SharedFlags.Currency
			}

			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
)

// Init registers the persistent flags. Called once from main before
// subcommands are attached.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.AccountID, "account", "a", "", "Account the statement belongs to")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Currency, "currency", "c", "", "Currency code for extracted amounts (default from config)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.OutputDir, "output", "o", "", "Output directory (default from config)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.PeriodStart, "period-start", "", "Declared statement period start (YYYY-MM-DD)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.PeriodEnd, "period-end", "", "Declared statement period end (YYYY-MM-DD)")
}

// NewContainer builds the pipeline container from the resolved config.
func NewContainer() (*container.Container, error) {
	if Cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return container.New(Cfg, Log)
}
