package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/config"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/feed"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/rates"
)

// RateWriter persists a complete rate bundle.
type RateWriter interface {
	ReplaceBundle(rates.Bundle) error
}

// Poller runs one bounded burst of the fetch→extract→diff→persist
// pipeline. The process is re-armed by an external coarse schedule; it
// is deliberately not a long-lived daemon.
type Poller struct {
	logger   *zap.Logger
	cfg      *config.Config
	feeds    feed.ClientInterface
	writer   RateWriter
	interval time.Duration
	deadline time.Duration
	now      func() time.Time
}

// New creates a poller for one scheduler invocation.
func New(logger *zap.Logger, cfg *config.Config, feeds feed.ClientInterface, writer RateWriter) *Poller {
	return &Poller{
		logger:   logger.Named("poller"),
		cfg:      cfg,
		feeds:    feeds,
		writer:   writer,
		interval: time.Duration(cfg.Poller.IntervalSeconds) * time.Second,
		deadline: time.Duration(cfg.Poller.DeadlineSeconds) * time.Second,
		now:      time.Now,
	}
}

// Run executes the burst loop. Outside the trading window it returns
// immediately. Inside it, iterations run on a fixed period until the
// deadline fires; each iteration is independent, and a failed one is
// logged and skipped rather than stopping the burst.
func (p *Poller) Run(ctx context.Context) {
	if !rates.WithinTradingWindow(p.now()) {
		p.logger.Info("Outside trading window, skipping this invocation")
		return
	}

	// Stop a little before the outer scheduler's limit so we exit
	// cleanly instead of being killed mid-write.
	ctx, cancel := context.WithTimeout(ctx, p.deadline)
	defer cancel()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("Starting polling burst",
		zap.Duration("interval", p.interval),
		zap.Duration("deadline", p.deadline),
	)

	// Comparison state lives and dies with this burst, so the first
	// successful poll of every invocation always writes.
	var lastRates rates.Bundle

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Polling burst finished", zap.Error(ctx.Err()))
			return
		case <-ticker.C:
			bundle, err := p.poll(ctx)
			if err != nil {
				p.logger.Error("Poll iteration failed", zap.Error(err))
				continue
			}

			if bundle.Equal(lastRates) {
				p.logger.Debug("No change in bullion rates, skipping write")
				continue
			}

			if err := p.writer.ReplaceBundle(bundle); err != nil {
				p.logger.Error("Failed to persist rate bundle", zap.Error(err))
				continue
			}
			lastRates = bundle
			p.logger.Info("Bullion rates updated")
		}
	}
}

// poll runs one iteration: both upstream endpoints fetched concurrently
// and joined, then extracted into a bundle. Either fetch failing fails
// the whole iteration so no partial bundle can ever reach the writer.
func (p *Poller) poll(ctx context.Context) (rates.Bundle, error) {
	var (
		wg            sync.WaitGroup
		spot, futures []feed.RawTicker
		spotErr       error
		futuresErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		spot, spotErr = p.feeds.Fetch(ctx, p.cfg.Feed.SpotURL)
	}()
	go func() {
		defer wg.Done()
		futures, futuresErr = p.feeds.Fetch(ctx, p.cfg.Feed.FuturesURL)
	}()
	wg.Wait()

	if spotErr != nil {
		return nil, spotErr
	}
	if futuresErr != nil {
		return nil, futuresErr
	}

	return rates.Extract(spot, futures)
}
