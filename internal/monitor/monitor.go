package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mabiwatch/mabiwatch/internal/market"
	"github.com/mabiwatch/mabiwatch/internal/pricing"
)

// ItemSource provides the current list of monitored items.
type ItemSource interface {
	Items() ([]string, error)
}

// ListingFetcher queries the market API for one item's listings.
type ListingFetcher interface {
	SearchListings(ctx context.Context, itemName string) ([]market.Listing, error)
}

// AlertHandler receives qualifying discount alerts.
type AlertHandler interface {
	HandleAlert(ctx context.Context, alert Alert) error
}

// AlertHandlerFunc is a function adapter for AlertHandler.
type AlertHandlerFunc func(context.Context, Alert) error

func (f AlertHandlerFunc) HandleAlert(ctx context.Context, a Alert) error {
	return f(ctx, a)
}

// Config holds monitor configuration.
type Config struct {
	Interval  time.Duration // Sweep interval (default: 1s)
	Timeout   time.Duration // Per-fetch timeout (default: 10s)
	Threshold float64       // Discount threshold (default: 0.1)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:  time.Second,
		Timeout:   10 * time.Second,
		Threshold: 0.1,
	}
}

// Monitor periodically sweeps the monitored items and emits discount alerts.
type Monitor struct {
	cfg     Config
	fetcher ListingFetcher
	source  ItemSource
	handler AlertHandler
	logger  *slog.Logger

	restart chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Monitor.
func New(cfg Config, fetcher ListingFetcher, source ItemSource, handler AlertHandler, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		cfg:     cfg,
		fetcher: fetcher,
		source:  source,
		handler: handler,
		logger:  logger,
		restart: make(chan struct{}, 1),
	}
}

// Start begins the sweep loop. When ready is non-nil, the first sweep waits
// until it is closed; the chat adapter uses this to hold sweeps back until
// the gateway connection is up.
func (m *Monitor) Start(ctx context.Context, ready <-chan struct{}) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go m.run(ready)

	return nil
}

// Stop gracefully shuts down the monitor, waiting for an in-flight sweep
// up to the deadline on ctx.
func (m *Monitor) Stop(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("price monitor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Restart resets the interval timer and triggers an immediate sweep, so a
// just-mutated item list takes effect without waiting out the pending tick.
// Safe to call from any goroutine; a sweep already in flight is unaffected.
func (m *Monitor) Restart() {
	select {
	case m.restart <- struct{}{}:
	default:
	}
}

// run is the main sweep loop. Sweeps never overlap: the loop body runs each
// sweep to completion before selecting again.
func (m *Monitor) run(ready <-chan struct{}) {
	defer m.wg.Done()

	if ready != nil {
		select {
		case <-ready:
		case <-m.ctx.Done():
			return
		}
	}

	m.logger.Info("price monitor started",
		"interval", m.cfg.Interval,
		"threshold", m.cfg.Threshold,
	)

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	// Sweep immediately on start.
	m.sweep()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.restart:
			ticker.Reset(m.cfg.Interval)
			m.sweep()
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep checks every monitored item once, in registry order.
func (m *Monitor) sweep() {
	start := time.Now()

	items, err := m.source.Items()
	if err != nil {
		m.logger.Error("failed to read item list, skipping sweep", "err", err)
		return
	}
	if len(items) == 0 {
		m.logger.Debug("no items to monitor")
		return
	}

	var alerts int
	for _, item := range items {
		if m.ctx.Err() != nil {
			return
		}
		if m.checkItem(item) {
			alerts++
		}
	}

	m.logger.Info("sweep complete",
		"items", len(items),
		"alerts", alerts,
		"duration", time.Since(start),
	)
}

// checkItem fetches and evaluates a single item, delivering an alert when
// the discount qualifies. Reports whether an alert was delivered. Failures
// are logged and never abort the sweep.
func (m *Monitor) checkItem(item string) bool {
	ctx, cancel := context.WithTimeout(m.ctx, m.cfg.Timeout)
	defer cancel()

	listings, err := m.fetcher.SearchListings(ctx, item)
	if err != nil {
		m.logger.Warn("failed to fetch listings", "item", item, "err", err)
		return false
	}

	eval, err := pricing.Evaluate(item, listings)
	if err != nil {
		if errors.Is(err, pricing.ErrInsufficientData) {
			m.logger.Warn("not enough listings to evaluate",
				"item", item,
				"listings", len(listings),
			)
		} else {
			m.logger.Warn("failed to evaluate listings", "item", item, "err", err)
		}
		return false
	}

	m.logger.Info("item evaluated",
		"item", item,
		"lowest", eval.LowestPrice,
		"reference", eval.ReferencePrice,
	)

	if !eval.Qualifies(m.cfg.Threshold) {
		return false
	}

	alert := Alert{
		ID:             uuid.NewString(),
		Item:           item,
		LowestPrice:    eval.LowestPrice,
		ReferencePrice: eval.ReferencePrice,
		DiscountRatio:  eval.DiscountRatio(),
	}

	if m.handler == nil {
		return false
	}
	if err := m.handler.HandleAlert(ctx, alert); err != nil {
		m.logger.Warn("failed to deliver alert",
			"item", item,
			"alert_id", alert.ID,
			"err", err,
		)
		return false
	}

	m.logger.Info("discount alert delivered",
		"item", item,
		"alert_id", alert.ID,
		"ratio", alert.DiscountRatio,
	)
	return true
}
