package config

import (
	"os"
	"path/filepath"
	"testing"

	"FinDocSignal/internal/calculator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every override so a developer's shell does not leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ALPHAVANTAGE_API_KEY", "ALPHAVANTAGE_BASE_URL", "ALPHAVANTAGE_RPM", "DATA_PROVIDER",
		"WATCHLIST", "STRICT_INPUT", "BACKEND_URL", "FEED_URLS", "TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHAT_ID", "CRON_DAILY", "CRON_FEED", "SQLITE_PATH", "HTTPS_PROXY",
	} {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
	// keep a stray .env out of the way
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "alphavantage", cfg.DataSource.Provider)
	assert.Equal(t, []string{"IBM"}, cfg.DataSource.Symbols)
	assert.Equal(t, calculator.DefaultMAWindow, cfg.Analysis.MAWindow)
	assert.Equal(t, calculator.DefaultSlopeWindow, cfg.Analysis.SlopeWindow)
	assert.Equal(t, calculator.DefaultDropThreshold, cfg.Analysis.DropThreshold)
	assert.False(t, cfg.Analysis.StrictInput)
	assert.Equal(t, 5, cfg.AlphaVantage.RequestsPerMinute)
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateBot())
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
alpha_vantage:
  api_key: file-key
data_source:
  provider: Yahoo
  symbols: [MSFT, AAPL]
analysis:
  ma_window: 50
  drop_threshold: 0.05
telegram:
  bot_token: file-token
  chat_id: "123"
`)
	t.Setenv("ALPHAVANTAGE_API_KEY", "env-key")
	t.Setenv("WATCHLIST", "TSLA,NVDA")
	t.Setenv("STRICT_INPUT", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.AlphaVantage.APIKey)
	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, []string{"TSLA", "NVDA"}, cfg.DataSource.Symbols)
	assert.Equal(t, 50, cfg.Analysis.MAWindow)
	assert.Equal(t, 0.05, cfg.Analysis.DropThreshold)
	assert.True(t, cfg.Analysis.StrictInput)
	assert.Equal(t, "file-token", cfg.Telegram.BotToken)
	assert.NoError(t, cfg.ValidateBot())
}

func TestLoad_BadInput(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "analysis: [not, a, map]"))
	assert.Error(t, err)

	t.Setenv("STRICT_INPUT", "sometimes")
	_, err = Load(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.DataSource.Provider = "bloomberg"
	assert.Error(t, cfg.Validate())
	cfg.DataSource.Provider = "mock"

	cfg.Analysis.DropThreshold = 1.5
	assert.Error(t, cfg.Validate())
	cfg.Analysis.DropThreshold = 0.1

	cfg.Analysis.SlopeWindow = 1
	assert.Error(t, cfg.Validate())
}
