// Package container assembles the extraction pipeline from configuration.
// Commands build one Container and pull the pieces they need instead of
// wiring constructors themselves.
package container

import (
	"fmt"
	"time"

	"github.com/akpradhn/nitiArthik/internal/aiextract"
	"github.com/akpradhn/nitiArthik/internal/classify"
	"github.com/akpradhn/nitiArthik/internal/config"
	"github.com/akpradhn/nitiArthik/internal/extract"
	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/normalize"
	"github.com/akpradhn/nitiArthik/internal/pdfext"
	"github.com/akpradhn/nitiArthik/internal/store"
	"github.com/akpradhn/nitiArthik/internal/tableextract"
	"github.com/akpradhn/nitiArthik/internal/worker"
)

// Container holds the wired pipeline.
type Container struct {
	Cfg          *config.Config
	Log          logging.Logger
	Store        *store.LedgerStore
	Orchestrator *extract.Orchestrator
}

// New wires the pipeline per the configuration. The AI strategy is only
// attached when a credential is configured.
func New(cfg *config.Config, log logging.Logger) (*Container, error) {
	if log == nil {
		log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	rules := classify.DefaultRules()
	if cfg.Parser.KeywordsFile != "" {
		loaded, err := classify.LoadRules(cfg.Parser.KeywordsFile)
		if err != nil {
			return nil, fmt.Errorf("loading keyword rules: %w", err)
		}
		rules = loaded
	}

	var ai extract.AIStrategy
	if cfg.AI.Enabled {
		client := aiextract.NewGeminiClient(cfg.AI.APIKey, cfg.AI.Model, log)
		ai = aiextract.NewStrategy(client,
			cfg.Parser.DefaultCurrency,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
			log)
		log.Info("AI extraction enabled",
			logging.Field{Key: "model", Value: cfg.AI.Model})
	}

	ledger := store.NewLedgerStore(cfg.Output.Directory, delimiterRune(cfg.Output.Delimiter), log)

	orchestrator := extract.NewOrchestrator(
		pdfext.NewLoader(log),
		tableextract.NewExtractor(log),
		classify.NewClassifier(rules, log),
		normalize.NewNormalizer(cfg.Parser.DefaultCurrency, log),
		ai,
		log,
	)

	return &Container{
		Cfg:          cfg,
		Log:          log,
		Store:        ledger,
		Orchestrator: orchestrator,
	}, nil
}

// NewPool builds a worker pool over the container's orchestrator and
// store, sized from configuration.
func (c *Container) NewPool() *worker.Pool {
	return worker.NewPool(c.Orchestrator, c.Store, c.Cfg.Worker.Count, c.Cfg.Worker.QueueSize, c.Log)
}

func delimiterRune(s string) rune {
	if s == "" {
		return ','
	}
	return []rune(s)[0]
}
