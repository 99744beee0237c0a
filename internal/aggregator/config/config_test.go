package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Aggregator.MaxTickers)
	assert.Equal(t, []string{"AAPL", "MSFT", "GOOG", "AMZN", "TSLA"}, cfg.Aggregator.DefaultTickers)
	assert.Equal(t, 3, cfg.Aggregator.MaxFetchAttempts)
	assert.Equal(t, time.Second, cfg.Aggregator.BackoffBase)
	assert.Equal(t, 5*time.Second, cfg.Aggregator.PacingInterval)
	assert.Equal(t, 500, cfg.Aggregator.MinArticleLength)
	assert.Equal(t, 4000, cfg.Aggregator.MaxArticleChars)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "yahoo", cfg.MarketData.Provider)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  name: news-test
aggregator:
  pacing_interval: 2s
  default_tickers: [NVDA, AMD]
market_data:
  provider: yahoo_rss
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("GEMINI_API_KEY", "secret-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "news-test", cfg.App.Name)
	assert.Equal(t, 2*time.Second, cfg.Aggregator.PacingInterval)
	assert.Equal(t, []string{"NVDA", "AMD"}, cfg.Aggregator.DefaultTickers)
	assert.Equal(t, "yahoo_rss", cfg.MarketData.Provider)
	assert.Equal(t, "secret-key", cfg.Gemini.APIKey)
	assert.Equal(t, 500, cfg.Aggregator.MinArticleLength)
}
