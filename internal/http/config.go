package http

import (
	"time"

	"seo_checker/internal/application/config"
	"seo_checker/internal/pkg/errors"
)

type HTTPServerConfig struct {
	Host     string
	Timeouts struct {
		Read         time.Duration
		ReadHeader   time.Duration
		Write        time.Duration
		Idle         time.Duration
		ShutdownWait time.Duration
	}
}

// NewHTTPServerConfig derives the diagnostics server settings from the
// application config.
func NewHTTPServerConfig(appCfg *config.AppConfig) (*HTTPServerConfig, error) {
	if appCfg.Diagnostics.Host == "" {
		return nil, errors.New(`diagnostics host is empty`)
	}

	cfg := &HTTPServerConfig{Host: appCfg.Diagnostics.Host}
	cfg.Timeouts.Read = 5 * time.Second
	cfg.Timeouts.ReadHeader = 2 * time.Second
	// profiles under /debug/pprof can take 30s to collect
	cfg.Timeouts.Write = 60 * time.Second
	cfg.Timeouts.Idle = 30 * time.Second
	cfg.Timeouts.ShutdownWait = appCfg.Diagnostics.ShutdownTimeout
	if cfg.Timeouts.ShutdownWait <= 0 {
		cfg.Timeouts.ShutdownWait = 5 * time.Second
	}
	return cfg, nil
}
