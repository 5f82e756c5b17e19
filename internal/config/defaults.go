package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAsset            = "btc"
	DefaultWidth            = 15 * time.Minute
	DefaultRestURL          = "https://gamma-api.polymarket.com"
	DefaultCatalogTimeout   = 30 * time.Second
	DefaultWSURL            = "wss://ws-subscriptions-clob.polymarket.com/ws/market"
	DefaultBackoff          = 10 * time.Second
	DefaultKeepalive        = "PING"
	DefaultPingInterval     = 10 * time.Second
	DefaultPingTimeout      = 60 * time.Second
	DefaultWriteTimeout     = 5 * time.Second
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultBufferSize       = 1000
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
)

func (c *MonitorConfig) applyDefaults() {
	// Series defaults
	if c.Series.Asset == "" {
		c.Series.Asset = DefaultAsset
	}
	if c.Series.Width == 0 {
		c.Series.Width = DefaultWidth
	}

	// Catalog defaults
	if c.Catalog.RestURL == "" {
		c.Catalog.RestURL = DefaultRestURL
	}
	if c.Catalog.Timeout == 0 {
		c.Catalog.Timeout = DefaultCatalogTimeout
	}
	if c.Catalog.OpenOnly == nil {
		openOnly := true
		c.Catalog.OpenOnly = &openOnly
	}

	// Stream defaults
	if c.Stream.WSURL == "" {
		c.Stream.WSURL = DefaultWSURL
	}
	if c.Stream.Backoff == 0 {
		c.Stream.Backoff = DefaultBackoff
	}
	if c.Stream.Keepalive == "" {
		c.Stream.Keepalive = DefaultKeepalive
	}
	if c.Stream.PingInterval == 0 {
		c.Stream.PingInterval = DefaultPingInterval
	}
	if c.Stream.PingTimeout == 0 {
		c.Stream.PingTimeout = DefaultPingTimeout
	}
	if c.Stream.WriteTimeout == 0 {
		c.Stream.WriteTimeout = DefaultWriteTimeout
	}
	if c.Stream.HandshakeTimeout == 0 {
		c.Stream.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Stream.BufferSize == 0 {
		c.Stream.BufferSize = DefaultBufferSize
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
