// Package poller drives a view's refresh cycle: a fixed-interval timer plus
// an on-demand refresh, with at most one fetch in flight at a time.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/aquaview/water-quality-dashboard/internal/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FetchFunc performs one refresh of the view's data.
type FetchFunc func(ctx context.Context) error

// Poller owns one view's refresh timer. Each view instance gets its own
// Poller; the timer is never shared process-wide. Start and Stop are
// idempotent, and Stop guarantees the timer goroutine is gone on return.
type Poller struct {
	view     string
	interval time.Duration
	fetch    FetchFunc
	logger   *zap.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	resetCh  chan struct{}
	inFlight bool
}

// New creates a poller for the named view. The fetch func is invoked once
// per tick and on manual refresh.
func New(view string, interval time.Duration, fetch FetchFunc, logger *zap.Logger) *Poller {
	return &Poller{
		view:     view,
		interval: interval,
		fetch:    fetch,
		logger:   logging.WithView(logger, view),
	}
}

// Start begins interval polling. Starting an already running poller is a
// no-op: there is never more than one timer per poller instance.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.resetCh = make(chan struct{}, 1)

	p.logger.Info("auto-refresh enabled", zap.Duration("interval", p.interval))
	go p.run(ctx, p.done, p.resetCh)
}

// Stop halts interval polling and waits for the timer goroutine to exit.
// A fetch already in flight is cancelled through its context.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.done = nil
	p.resetCh = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.logger.Info("auto-refresh disabled")
}

// Running reports whether interval polling is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Refresh performs a fetch immediately and, if interval polling is active,
// reschedules the timer so the next automatic refresh is a full interval
// away. The fetch runs synchronously; if another fetch is already in flight
// the refresh is skipped.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	resetCh := p.resetCh
	p.mu.Unlock()

	if resetCh != nil {
		select {
		case resetCh <- struct{}{}:
		default:
		}
	}
	return p.poll(ctx, true)
}

func (p *Poller) run(ctx context.Context, done chan struct{}, resetCh chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-resetCh:
			ticker.Reset(p.interval)
		case <-ticker.C:
			// Fire and forget: a slow backend must not stall the
			// timer, the in-flight guard prevents pile-up.
			go p.poll(ctx, false)
		}
	}
}

// poll runs one fetch under the in-flight guard. Overlapping polls are
// skipped rather than queued; the skipped tick is logged so overlap under a
// slow backend stays observable.
func (p *Poller) poll(ctx context.Context, manual bool) error {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		p.logger.Debug("fetch already in flight, skipping refresh",
			zap.Bool("manual", manual))
		return nil
	}
	p.inFlight = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	log := logging.WithRequestID(p.logger, uuid.NewString())
	log.Debug("refreshing view data", zap.Bool("manual", manual))

	if err := p.fetch(ctx); err != nil {
		log.Warn("refresh failed, keeping previous data", zap.Error(err))
		return err
	}
	return nil
}
