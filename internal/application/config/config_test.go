package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"seo_checker/internal/adaptors"
	"seo_checker/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		`OPENROUTER_API_KEY`, `SEO_AI_API_KEY`, `SEO_LOG_LEVEL`, `SEO_CRAWL_WORKERS`,
		`SEO_CRAWL_MAX_PAGES`, `SEO_FETCH_TIMEOUT`, `SEO_DIAGNOSTICS_HOST`, `SEO_DEBUG`,
	} {
		t.Setenv(key, ``)
	}
}

func TestNewAppConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewAppConfig(``)
	require.NoError(t, err)
	assert.Equal(t, `info`, cfg.LogLevel)
	assert.Empty(t, cfg.Diagnostics.Host)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, adaptors.DefaultUserAgent, cfg.Fetch.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.Probe.Timeout)
	assert.Equal(t, 8, cfg.Probe.Concurrency)
	assert.Equal(t, 10, cfg.Crawl.MaxPages)
	assert.Zero(t, cfg.Crawl.RetryLimit)
	assert.Equal(t, adaptors.DefaultAIBaseURL, cfg.AI.BaseURL)
	assert.Equal(t, adaptors.DefaultAIModel, cfg.AI.Model)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestNewAppConfig_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv(`OPENROUTER_API_KEY`, `sk-test`)
	t.Setenv(`SEO_CRAWL_WORKERS`, `2`)
	t.Setenv(`SEO_FETCH_TIMEOUT`, `3s`)
	t.Setenv(`SEO_LOG_LEVEL`, `debug`)

	cfg, err := NewAppConfig(``)
	require.NoError(t, err)
	assert.Equal(t, `sk-test`, cfg.AI.APIKey)
	assert.Equal(t, 2, cfg.Crawl.Workers)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, `debug`, cfg.LogLevel)
}

func TestNewAppConfig_DebugForcesDebugLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv(`SEO_LOG_LEVEL`, `warn`)

	cfg, err := NewAppConfig(``)
	require.NoError(t, err)
	assert.False(t, cfg.DebugMode)
	assert.Equal(t, `warn`, cfg.LogLevel)

	t.Setenv(`SEO_DEBUG`, `true`)
	cfg, err = NewAppConfig(``)
	require.NoError(t, err)
	assert.True(t, cfg.DebugMode)
	assert.Equal(t, `debug`, cfg.LogLevel)
}

func TestNewAppConfig_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), `seo.yaml`)
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: warn
diagnostics:
  host: 127.0.0.1:9100
crawl:
  max_pages: 25
  retry_limit: 2
ai:
  api_key: from-file
`), 0o600))

	cfg, err := NewAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, `warn`, cfg.LogLevel)
	assert.Equal(t, `127.0.0.1:9100`, cfg.Diagnostics.Host)
	assert.Equal(t, 25, cfg.Crawl.MaxPages)
	assert.Equal(t, 2, cfg.Crawl.RetryLimit)
	assert.Equal(t, `from-file`, cfg.AI.APIKey)

	t.Setenv(`SEO_CRAWL_MAX_PAGES`, `3`)
	cfg, err = NewAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Crawl.MaxPages, `environment wins over the file`)
}

func TestNewAppConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := NewAppConfig(filepath.Join(t.TempDir(), `missing.yaml`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := NewAppConfig(``)
	require.NoError(t, err)

	cfg.LogLevel = `loud`
	cfg.Crawl.Workers = 0
	cfg.Probe.Concurrency = 0

	err = validate(cfg)
	var cfgErr *errors.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Reason, `log level "loud" is not supported`)
	assert.Contains(t, cfgErr.Reason, `crawl workers must be at least 1`)
	assert.Contains(t, cfgErr.Reason, `probe concurrency must be at least 1`)
}
