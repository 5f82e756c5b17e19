package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rickgao/updown-monitor/internal/api"
	"github.com/rickgao/updown-monitor/internal/connection"
	"github.com/rickgao/updown-monitor/internal/interval"
	"github.com/rickgao/updown-monitor/internal/model"
	"github.com/rickgao/updown-monitor/internal/retry"
	"github.com/rickgao/updown-monitor/internal/router"
)

// ErrNotListed is returned by a cycle whose market has no tradable tokens yet.
var ErrNotListed = errors.New("next market not listed yet")

// TokenResolver looks up a market by slug.
type TokenResolver interface {
	FindMarket(ctx context.Context, slug string, openOnly bool) (*api.Market, error)
}

// Dialer opens a new connected feed client.
type Dialer func(ctx context.Context) (connection.Client, error)

// NewDialer returns a Dialer that connects with cfg.
func NewDialer(cfg connection.ClientConfig, logger *zap.Logger) Dialer {
	return func(ctx context.Context) (connection.Client, error) {
		return connection.Dial(ctx, cfg, logger)
	}
}

// Reporter receives decoded feed updates.
type Reporter interface {
	ReportUpdate(u model.Update) error
}

// Config holds stream monitor configuration.
type Config struct {
	Series        interval.Series
	Backoff       time.Duration // Wait after every cycle end
	LookupTimeout time.Duration // Catalog lookup timeout (0 = none)

	Now   func() time.Time // Clock (default: time.Now)
	Sleep retry.SleepFunc  // Backoff wait (default: retry.Sleep)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Series:        interval.DefaultSeries,
		Backoff:       10 * time.Second,
		LookupTimeout: 30 * time.Second,
	}
}

// Monitor streams updates for the next market.
type Monitor struct {
	cfg      Config
	resolver TokenResolver
	dial     Dialer
	reporter Reporter
	logger   *zap.Logger
}

// New creates a new Monitor.
func New(cfg Config, resolver TokenResolver, dial Dialer, reporter Reporter, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = retry.Sleep
	}
	return &Monitor{
		cfg:      cfg,
		resolver: resolver,
		dial:     dial,
		reporter: reporter,
		logger:   logger,
	}
}

// Run repeats cycles forever with a constant backoff. It returns only when
// ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("next-market stream started",
		zap.String("asset", m.cfg.Series.Asset),
		zap.Duration("backoff", m.cfg.Backoff),
	)

	policy := retry.Constant{Delay: m.cfg.Backoff, Sleep: m.cfg.Sleep}
	return policy.Forever(ctx, m.RunCycle, func(attempt int, err error) {
		switch {
		case err == nil:
			m.logger.Info("stream cycle ended",
				zap.Int("attempt", attempt),
				zap.Duration("retry_in", m.cfg.Backoff),
			)
		case errors.Is(err, ErrNotListed):
			m.logger.Warn("next market has no tokens",
				zap.Int("attempt", attempt),
				zap.Duration("retry_in", m.cfg.Backoff),
			)
		default:
			m.logger.Error("stream cycle failed",
				zap.Int("attempt", attempt),
				zap.Duration("retry_in", m.cfg.Backoff),
				zap.Error(err),
			)
		}
	})
}

// RunCycle resolves, subscribes and streams the next market once. A close
// frame from the feed ends the cycle with nil.
func (m *Monitor) RunCycle(ctx context.Context) error {
	slug := m.cfg.Series.NextSlug(m.cfg.Now())
	logger := m.logger.With(
		zap.String("cycle_id", uuid.NewString()),
		zap.String("slug", slug),
	)

	tokens, err := m.resolve(ctx, slug)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return ErrNotListed
	}

	logger.Info("next market resolved", zap.Strings("tokens", tokens))

	client, err := m.dial(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	for _, id := range tokens {
		if err := client.SendJSON(connection.NewMarketSubscription(id)); err != nil {
			return fmt.Errorf("subscribe %s: %w", id, err)
		}
	}
	logger.Info("subscribed", zap.Int("tokens", len(tokens)))

	r := router.New()
	defer func() {
		s := r.Stats()
		logger.Info("stream closed",
			zap.Int64("messages", s.MessagesReceived),
			zap.Int64("updates", s.UpdatesRouted),
			zap.Int64("parse_errors", s.ParseErrors),
			zap.Int64("skipped", s.SkippedMessages),
		)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-client.Messages():
			m.handle(logger, r, msg)

		case err := <-client.Errors():
			m.drain(logger, r, client)
			if connection.IsCloseFrame(err) {
				logger.Info("feed closed the connection", zap.Error(err))
				return nil
			}
			return fmt.Errorf("receive: %w", err)
		}
	}
}

func (m *Monitor) resolve(ctx context.Context, slug string) ([]string, error) {
	if m.cfg.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.LookupTimeout)
		defer cancel()
	}

	market, err := m.resolver.FindMarket(ctx, slug, false)
	if err != nil {
		return nil, err
	}
	return market.TokenIDs(), nil
}

// drain handles frames read before the connection ended.
func (m *Monitor) drain(logger *zap.Logger, r *router.Router, client connection.Client) {
	for {
		select {
		case msg := <-client.Messages():
			m.handle(logger, r, msg)
		default:
			return
		}
	}
}

func (m *Monitor) handle(logger *zap.Logger, r *router.Router, msg connection.TimestampedMessage) {
	updates, err := r.Route(msg)
	if err != nil {
		logger.Debug("skipping malformed frame", zap.Error(err), zap.ByteString("data", msg.Data))
		return
	}
	for _, u := range updates {
		if err := m.reporter.ReportUpdate(u); err != nil {
			logger.Warn("failed to write report", zap.Error(err))
		}
	}
}
