package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Validate checks that all required fields are set and values are valid.
func (c *MonitorConfig) Validate() error {
	if c.Series.Asset == "" {
		return errors.New("series.asset is required")
	}
	if c.Series.Width < time.Second || c.Series.Width%time.Second != 0 {
		return fmt.Errorf("series.width must be a whole number of seconds, got %s", c.Series.Width)
	}

	if err := validateURL("catalog.rest_url", c.Catalog.RestURL, "http", "https"); err != nil {
		return err
	}
	if c.Catalog.Timeout < 0 {
		return errors.New("catalog.timeout must be >= 0")
	}

	if err := validateURL("stream.ws_url", c.Stream.WSURL, "ws", "wss"); err != nil {
		return err
	}
	if c.Stream.Backoff <= 0 {
		return errors.New("stream.backoff must be > 0")
	}
	if c.Stream.PingInterval < 0 {
		return errors.New("stream.ping_interval must be >= 0")
	}
	if c.Stream.PingTimeout > 0 && c.Stream.PingTimeout < c.Stream.PingInterval {
		return fmt.Errorf("stream.ping_timeout (%s) cannot be shorter than ping_interval (%s)",
			c.Stream.PingTimeout, c.Stream.PingInterval)
	}
	if c.Stream.BufferSize < 1 {
		return errors.New("stream.buffer_size must be >= 1")
	}

	if c.Health.Port < 0 || c.Health.Port > 65535 {
		return fmt.Errorf("health.port must be between 0 and 65535, got %d", c.Health.Port)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}

	return nil
}

func validateURL(field, raw string, schemes ...string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%s must be a %s URL, got %q", field, schemes[len(schemes)-1], raw)
}
