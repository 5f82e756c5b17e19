package poller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rickgao/updown-monitor/internal/api"
	"github.com/rickgao/updown-monitor/internal/interval"
	"github.com/rickgao/updown-monitor/internal/model"
	"github.com/rickgao/updown-monitor/internal/retry"
)

// MarketFinder looks up a market by slug.
type MarketFinder interface {
	FindMarket(ctx context.Context, slug string, openOnly bool) (*api.Market, error)
}

// Reporter receives the outcome of each check.
type Reporter interface {
	ReportMarket(m model.Market) error
	ReportNoMarket(slug string) error
	ReportError(slug string, err error) error
}

// Config holds poller configuration.
type Config struct {
	Series   interval.Series // Market series to track
	OpenOnly bool            // Filter the lookup to markets that are not closed
	Timeout  time.Duration   // Per-lookup timeout (0 = none)

	Now   func() time.Time // Clock (default: time.Now)
	Sleep retry.SleepFunc  // Boundary wait (default: retry.Sleep)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Series:   interval.DefaultSeries,
		OpenOnly: true,
		Timeout:  30 * time.Second,
	}
}

// Outcome is the result of one check.
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNotFound
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "error"
	}
}

// Poller checks the current market once per interval.
type Poller struct {
	cfg      Config
	finder   MarketFinder
	reporter Reporter
	logger   *zap.Logger
}

// New creates a new Poller.
func New(cfg Config, finder MarketFinder, reporter Reporter, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = retry.Sleep
	}
	return &Poller{
		cfg:      cfg,
		finder:   finder,
		reporter: reporter,
		logger:   logger,
	}
}

// Run is the main polling loop. It returns only when ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("current-market poller started",
		zap.String("asset", p.cfg.Series.Asset),
		zap.Duration("interval", p.cfg.Series.Width),
		zap.Bool("open_only", p.cfg.OpenOnly),
	)

	for {
		p.Check(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}

		wait := p.cfg.Series.Until(p.cfg.Now())
		p.logger.Info("sleeping until next interval",
			zap.Duration("wait", wait),
			zap.String("next_slug", p.cfg.Series.NextSlug(p.cfg.Now())),
		)

		if err := p.cfg.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// Check looks up and reports the current market once.
func (p *Poller) Check(ctx context.Context) Outcome {
	now := p.cfg.Now()
	slug := p.cfg.Series.CurrentSlug(now)
	logger := p.logger.With(
		zap.String("check_id", uuid.NewString()),
		zap.String("slug", slug),
		zap.Int64("interval_start", p.cfg.Series.Start(now)),
	)

	logger.Info("checking current market")

	lookupCtx := ctx
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	market, err := p.finder.FindMarket(lookupCtx, slug, p.cfg.OpenOnly)
	switch {
	case err != nil:
		logger.Error("current market lookup failed", zap.Error(err))
		p.report(logger, p.reporter.ReportError(slug, err))
		return OutcomeError

	case market == nil:
		logger.Warn("no active market found")
		p.report(logger, p.reporter.ReportNoMarket(slug))
		return OutcomeNotFound

	default:
		logger.Info("current market found", zap.Int("tokens", len(market.TokenIDs())))
		p.report(logger, p.reporter.ReportMarket(market.ToModel()))
		return OutcomeFound
	}
}

func (p *Poller) report(logger *zap.Logger, err error) {
	if err != nil {
		logger.Warn("failed to write report", zap.Error(err))
	}
}
