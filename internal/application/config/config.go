package config

import (
	"os"
	"strings"
	"time"

	"seo_checker/internal/adaptors"
	domainAdaptors "seo_checker/internal/domain/adaptors"
	"seo_checker/internal/pkg/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envFiles are loaded into the process environment when present.
var envFiles = []string{`config.env`, `.env`}

type AppConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	DebugMode bool   `mapstructure:"debug"`

	Diagnostics struct {
		// Host is the listen address of the diagnostics server. Empty disables it.
		Host            string        `mapstructure:"host"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"diagnostics"`

	Fetch struct {
		Timeout   time.Duration `mapstructure:"timeout"`
		UserAgent string        `mapstructure:"user_agent"`
	} `mapstructure:"fetch"`

	Probe struct {
		Timeout     time.Duration `mapstructure:"timeout"`
		Concurrency int           `mapstructure:"concurrency"`
	} `mapstructure:"probe"`

	Crawl struct {
		MaxPages   int `mapstructure:"max_pages"`
		Workers    int `mapstructure:"workers"`
		RetryLimit int `mapstructure:"retry_limit"`
	} `mapstructure:"crawl"`

	AI struct {
		APIKey  string        `mapstructure:"api_key"`
		BaseURL string        `mapstructure:"base_url"`
		Model   string        `mapstructure:"model"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"ai"`
}

// NewAppConfig reads defaults, the optional config file at path and the
// SEO_* environment, in increasing order of precedence.
func NewAppConfig(path string) (*AppConfig, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, `failed to load `+f)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(`SEO`)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(`ai.api_key`, `SEO_AI_API_KEY`, `OPENROUTER_API_KEY`); err != nil {
		return nil, errors.Wrap(err, `failed to bind api key`)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, `failed to read config file`)
		}
	}

	cfg := AppConfig{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, `failed to decode config`)
	}

	// debug mode wins over the configured level
	if cfg.DebugMode {
		cfg.LogLevel = string(domainAdaptors.Debug)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(`log_level`, `info`)
	v.SetDefault(`debug`, false)
	v.SetDefault(`diagnostics.host`, ``)
	v.SetDefault(`diagnostics.shutdown_timeout`, 5*time.Second)
	v.SetDefault(`fetch.timeout`, 10*time.Second)
	v.SetDefault(`fetch.user_agent`, adaptors.DefaultUserAgent)
	v.SetDefault(`probe.timeout`, 5*time.Second)
	v.SetDefault(`probe.concurrency`, 8)
	v.SetDefault(`crawl.max_pages`, 10)
	v.SetDefault(`crawl.workers`, 4)
	v.SetDefault(`crawl.retry_limit`, 0)
	v.SetDefault(`ai.api_key`, ``)
	v.SetDefault(`ai.base_url`, adaptors.DefaultAIBaseURL)
	v.SetDefault(`ai.model`, adaptors.DefaultAIModel)
	v.SetDefault(`ai.timeout`, 120*time.Second)
}

func validate(cfg *AppConfig) error {
	var errMsg []string
	if !domainAdaptors.LogLevel(cfg.LogLevel).Valid() {
		errMsg = append(errMsg, `log level "`+cfg.LogLevel+`" is not supported`)
	}

	if cfg.Fetch.Timeout <= 0 {
		errMsg = append(errMsg, `fetch timeout must be positive`)
	}

	if cfg.Probe.Timeout <= 0 {
		errMsg = append(errMsg, `probe timeout must be positive`)
	}

	if cfg.Probe.Concurrency < 1 {
		errMsg = append(errMsg, `probe concurrency must be at least 1`)
	}

	if cfg.Crawl.MaxPages < 1 {
		errMsg = append(errMsg, `crawl max pages must be at least 1`)
	}

	if cfg.Crawl.Workers < 1 {
		errMsg = append(errMsg, `crawl workers must be at least 1`)
	}

	if cfg.Crawl.RetryLimit < 0 {
		errMsg = append(errMsg, `crawl retry limit must not be negative`)
	}

	if cfg.AI.BaseURL == "" {
		errMsg = append(errMsg, `ai base url is empty`)
	}

	if len(errMsg) != 0 {
		return &errors.ConfigurationError{Key: `config`, Reason: strings.Join(errMsg, "; ")}
	}
	return nil
}
