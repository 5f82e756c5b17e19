// monitor follows a recurring up/down market on two channels: the current
// market over the REST catalog and the next market over the streaming feed.
// Usage: go run ./cmd/monitor [-config configs/monitor.yaml]
package main

import (
	"context"
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
	"github.com/rickgao/updown-monitor/internal/health"
	"github.com/rickgao/updown-monitor/internal/interval"
	"github.com/rickgao/updown-monitor/internal/logging"
	"github.com/rickgao/updown-monitor/internal/poller"
	"github.com/rickgao/updown-monitor/internal/stream"
	"github.com/rickgao/updown-monitor/internal/supervisor"
	"github.com/rickgao/updown-monitor/internal/version"
	"github.com/rickgao/updown-monitor/internal/writer"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting monitor", version.Fields()...)

	if err := run(cfg, logger); err != nil {
		logger.Error("monitor stopped abnormally", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("monitor stopped")
}

func run(cfg *config.MonitorConfig, logger *zap.Logger) error {
	// Create context cancelled on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	series := interval.Series{Asset: cfg.Series.Asset, Width: cfg.Series.Width}
	now := time.Now()

	logger.Info("configuration loaded",
		zap.String("current_slug", series.CurrentSlug(now)),
		zap.String("next_slug", series.NextSlug(now)),
		zap.String("catalog_url", cfg.Catalog.RestURL),
		zap.String("feed_url", cfg.Stream.WSURL),
	)

	catalog := api.NewClient(
		cfg.Catalog.RestURL,
		api.WithTimeout(cfg.Catalog.Timeout),
		api.WithLogger(logger.Named("catalog")),
	)
	console := writer.NewConsole(os.Stdout)

	// Current-market monitor
	pollCfg := poller.DefaultConfig()
	pollCfg.Series = series
	pollCfg.OpenOnly = cfg.Catalog.IsOpenOnly()
	pollCfg.Timeout = cfg.Catalog.Timeout
	current := poller.New(pollCfg, catalog, console, logger.Named("current"))

	// Next-market stream monitor
	connCfg := connection.DefaultClientConfig()
	connCfg.URL = cfg.Stream.WSURL
	connCfg.KeepaliveMessage = cfg.Stream.Keepalive
	connCfg.PingInterval = cfg.Stream.PingInterval
	connCfg.PingTimeout = cfg.Stream.PingTimeout
	connCfg.WriteTimeout = cfg.Stream.WriteTimeout
	connCfg.HandshakeTimeout = cfg.Stream.HandshakeTimeout
	connCfg.BufferSize = cfg.Stream.BufferSize

	streamCfg := stream.DefaultConfig()
	streamCfg.Series = series
	streamCfg.Backoff = cfg.Stream.Backoff
	streamCfg.LookupTimeout = cfg.Catalog.Timeout
	streamLogger := logger.Named("next")
	next := stream.New(streamCfg, catalog, stream.NewDialer(connCfg, streamLogger), console, streamLogger)

	tasks := []supervisor.Task{
		{Name: "current-market", Run: current.Run},
		{Name: "next-market", Run: next.Run},
	}

	if cfg.Health.Port > 0 {
		status := health.NewServer(cfg.Health.Port, series, nil, logger.Named("health"))
		tasks = append(tasks, supervisor.Task{Name: "status", Run: status.Run})
	}

	return supervisor.Run(ctx, logger, tasks...)
}
