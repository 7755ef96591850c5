package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akpradhn/nitiArthik/internal/config"
	"github.com/akpradhn/nitiArthik/internal/logging"
)

func baseConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log:    config.LogConfig{Level: "info", Format: "text"},
		AI:     config.AIConfig{Model: "gemini-2.5-flash-lite", TimeoutSeconds: 5},
		Parser: config.ParserConfig{DefaultCurrency: "INR"},
		Output: config.OutputConfig{Directory: t.TempDir(), Delimiter: ","},
		Worker: config.WorkerConfig{Count: 1, QueueSize: 2},
	}
}

func TestNewWiresPipeline(t *testing.T) {
	c, err := New(baseConfig(t), logging.NewMockLogger())

	require.NoError(t, err)
	assert.NotNil(t, c.Orchestrator)
	assert.NotNil(t, c.Store)
	assert.NotNil(t, c.NewPool())
}

func TestNewLoadsKeywordRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns:\n  debit: [\"money out\"]\n"), 0o644))

	cfg := baseConfig(t)
	cfg.Parser.KeywordsFile = path

	_, err := New(cfg, logging.NewMockLogger())
	assert.NoError(t, err)
}

func TestNewRejectsBadKeywordRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns:\n  bogus_role: [\"x\"]\n"), 0o644))

	cfg := baseConfig(t)
	cfg.Parser.KeywordsFile = path

	_, err := New(cfg, logging.NewMockLogger())
	assert.ErrorContains(t, err, "unknown column role")
}
