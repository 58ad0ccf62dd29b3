package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"github.com/rickgao/bazaar-data/internal/metrics"
	"github.com/rickgao/bazaar-data/internal/projection"
)

// Poller runs the fetch, detect, project and persist cycle.
type Poller struct {
	cfg     Config
	fetcher Fetcher
	sink    Sink
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time

	// State, guarded for concurrent Status readers.
	mu       sync.RWMutex
	lastSeen *int64
	last     CycleResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, fetcher Fetcher, sink Sink, m *metrics.Metrics, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		cfg:     cfg,
		fetcher: fetcher,
		sink:    sink,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("bazaar poller started",
		"interval", p.cfg.Interval,
		"error_backoff_max", p.cfg.ErrorBackoffMax,
	)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("bazaar poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns the last-seen token and the most recent cycle result.
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var lastSeen *int64
	if p.lastSeen != nil {
		v := *p.lastSeen
		lastSeen = &v
	}
	return Status{LastSeen: lastSeen, Last: p.last}
}

// run is the main polling loop. Cycles never overlap.
func (p *Poller) run() {
	defer p.wg.Done()

	b := p.newBackoff()

	for {
		res := p.RunOnce(p.ctx)
		if p.ctx.Err() != nil {
			return
		}

		wait := p.cfg.Interval
		if res.Outcome == OutcomeFailed {
			wait = b.NextBackOff()
			p.logger.Debug("backing off after failed cycle",
				"cycle_id", res.CycleID,
				"retry_in", wait,
			)
		} else {
			b.Reset()
		}

		timer := time.NewTimer(wait)
		select {
		case <-p.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (p *Poller) newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.cfg.ErrorBackoffInitial
	b.MaxInterval = p.cfg.ErrorBackoffMax
	b.RandomizationFactor = 0.2
	b.Reset()
	return b
}

// RunOnce performs a single poll cycle. Errors are returned in the result,
// never propagated; the last-seen token only advances when the records and
// the counter bump were both persisted.
func (p *Poller) RunOnce(ctx context.Context) (res CycleResult) {
	start := time.Now()
	res.CycleID = uuid.New()

	defer func() {
		res.Duration = time.Since(start)
		p.metrics.ObserveCycle(string(res.Outcome), res.Duration)

		p.mu.Lock()
		p.last = res
		p.mu.Unlock()
	}()

	snapshot, err := p.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return p.fail(res, "fetch", err)
	}
	res.VersionToken = snapshot.VersionToken

	p.mu.RLock()
	changed := HasChanged(snapshot.VersionToken, p.lastSeen)
	p.mu.RUnlock()

	if !changed {
		res.Outcome = OutcomeUnchanged
		p.logger.Info("bazaar data is up to date",
			"cycle_id", res.CycleID,
			"last_updated", snapshot.VersionToken,
		)
		return res
	}

	res.ObservedAt = p.now().UTC()
	records := projection.Project(snapshot.Items, res.ObservedAt, p.cfg.Depth)
	res.Records = len(records)

	if cp, ok := p.sink.(CyclePersister); ok && cp.Transactional() {
		res.Written, err = cp.PersistCycle(ctx, records)
		if err != nil {
			return p.fail(res, "persist", err)
		}
	} else {
		res.Written, err = p.sink.Persist(ctx, records)
		if err != nil {
			return p.fail(res, "persist", err)
		}
		if err := p.sink.BumpFreshnessCounter(ctx); err != nil {
			return p.fail(res, "bump", err)
		}
	}

	token := snapshot.VersionToken
	p.mu.Lock()
	p.lastSeen = &token
	p.mu.Unlock()

	res.Outcome = OutcomeUpdated
	p.metrics.ObservePersisted(token, res.ObservedAt)

	p.logger.Info("new bazaar data saved",
		"cycle_id", res.CycleID,
		"last_updated", token,
		"observed_at", res.ObservedAt,
		"records", res.Written,
		"products", len(snapshot.Items),
	)

	return res
}

func (p *Poller) fail(res CycleResult, stage string, err error) CycleResult {
	res.Outcome = OutcomeFailed
	res.Stage = stage
	res.Err = err

	p.logger.Error("poll cycle failed",
		"cycle_id", res.CycleID,
		"stage", stage,
		"last_updated", res.VersionToken,
		"written", res.Written,
		"error", err,
	)
	return res
}
