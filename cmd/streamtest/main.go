// streamtest runs a single stream cycle against the live feed and prints every
// update to the console. It exits when the feed closes the stream or on Ctrl+C.
// Usage: go run ./cmd/streamtest [-config configs/monitor.yaml] [-current] [-verbose]
//
// By default it follows the next market, which may not be listed yet; -current
// streams the market of the running interval instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rickgao/updown-monitor/internal/api"
	"github.com/rickgao/updown-monitor/internal/config"
	"github.com/rickgao/updown-monitor/internal/connection"
	"github.com/rickgao/updown-monitor/internal/interval"
	"github.com/rickgao/updown-monitor/internal/logging"
	"github.com/rickgao/updown-monitor/internal/stream"
	"github.com/rickgao/updown-monitor/internal/writer"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	current := flag.Bool("current", false, "stream the current market instead of the next one")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	// Load config
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	cfg.Log.Format = "console"

	// Setup logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Handle signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	series := interval.Series{Asset: cfg.Series.Asset, Width: cfg.Series.Width}

	streamCfg := stream.DefaultConfig()
	streamCfg.Series = series
	streamCfg.LookupTimeout = cfg.Catalog.Timeout
	if *current {
		// One width in the past, the "next" window is the running one.
		streamCfg.Now = func() time.Time { return time.Now().Add(-series.Width) }
	}

	connCfg := connection.DefaultClientConfig()
	connCfg.URL = cfg.Stream.WSURL
	connCfg.KeepaliveMessage = cfg.Stream.Keepalive
	connCfg.PingInterval = cfg.Stream.PingInterval
	connCfg.PingTimeout = cfg.Stream.PingTimeout
	connCfg.WriteTimeout = cfg.Stream.WriteTimeout
	connCfg.HandshakeTimeout = cfg.Stream.HandshakeTimeout
	connCfg.BufferSize = cfg.Stream.BufferSize

	catalog := api.NewClient(cfg.Catalog.RestURL,
		api.WithTimeout(cfg.Catalog.Timeout),
		api.WithLogger(logger.Named("catalog")),
	)

	monitor := stream.New(streamCfg, catalog, stream.NewDialer(connCfg, logger), writer.NewConsole(os.Stdout), logger)

	logger.Info("streaming started - press Ctrl+C to stop", zap.Bool("current", *current))

	err = monitor.RunCycle(ctx)
	switch {
	case err == nil:
		logger.Info("feed closed the stream")
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown complete")
	case errors.Is(err, stream.ErrNotListed):
		logger.Warn("market has no tokens yet, try -current")
		os.Exit(2)
	default:
		logger.Error("stream failed", zap.Error(err))
		os.Exit(1)
	}
}
