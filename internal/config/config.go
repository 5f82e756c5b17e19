package config

import "time"

// MonitorConfig is the root configuration for a monitor process.
type MonitorConfig struct {
	Series  SeriesConfig  `yaml:"series"`
	Catalog CatalogConfig `yaml:"catalog"`
	Stream  StreamConfig  `yaml:"stream"`
	Health  HealthConfig  `yaml:"health"`
	Log     LogConfig     `yaml:"log"`
}

// SeriesConfig names the recurring market to follow.
type SeriesConfig struct {
	Asset string        `yaml:"asset"` // Slug prefix, e.g. "btc"
	Width time.Duration `yaml:"width"` // Interval width, e.g. 15m
}

// CatalogConfig holds market catalog (REST) settings.
type CatalogConfig struct {
	RestURL  string        `yaml:"rest_url"`
	Timeout  time.Duration `yaml:"timeout"`
	OpenOnly *bool         `yaml:"open_only"` // Current-market lookup skips closed markets
}

// StreamConfig holds streaming feed settings.
type StreamConfig struct {
	WSURL            string        `yaml:"ws_url"`
	Backoff          time.Duration `yaml:"backoff"`           // Wait between stream cycles
	Keepalive        string        `yaml:"keepalive"`         // Text keepalive frame
	PingInterval     time.Duration `yaml:"ping_interval"`     // Keepalive interval
	PingTimeout      time.Duration `yaml:"ping_timeout"`      // Stale after this long without a read
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	BufferSize       int           `yaml:"buffer_size"`
}

// HealthConfig holds the status endpoint settings.
type HealthConfig struct {
	Port int `yaml:"port"` // 0 disables the endpoint
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// IsOpenOnly reports whether current-market lookups filter out closed markets.
func (c CatalogConfig) IsOpenOnly() bool {
	return c.OpenOnly == nil || *c.OpenOnly
}
