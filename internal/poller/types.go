package poller

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/bazaar-data/internal/model"
	"github.com/rickgao/bazaar-data/internal/projection"
)

// Fetcher retrieves the current bazaar snapshot.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*model.MarketSnapshot, error)
}

// Sink persists projected records and maintains the freshness counter.
type Sink interface {
	Persist(ctx context.Context, records []model.PersistedRecord) (int, error)
	BumpFreshnessCounter(ctx context.Context) error
}

// CyclePersister is implemented by sinks that can persist records and bump
// the counter atomically. It is used when Transactional reports true.
type CyclePersister interface {
	Transactional() bool
	PersistCycle(ctx context.Context, records []model.PersistedRecord) (int, error)
}

// Outcome classifies a finished poll cycle.
type Outcome string

const (
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

// CycleResult describes one poll cycle.
type CycleResult struct {
	CycleID      uuid.UUID
	Outcome      Outcome
	Stage        string // Failing stage: "fetch", "persist", "bump"
	VersionToken int64  // Observed token; 0 when the fetch failed
	Records      int    // Records projected
	Written      int    // Records committed
	ObservedAt   time.Time
	Duration     time.Duration
	Err          error
}

// Status is a point-in-time view of the poller for health reporting.
type Status struct {
	LastSeen *int64
	Last     CycleResult
}

// Config holds poller configuration.
type Config struct {
	Interval            time.Duration // Delay after a successful or unchanged cycle (default: 5s)
	ErrorBackoffInitial time.Duration // First delay after a failed cycle (default: 5s)
	ErrorBackoffMax     time.Duration // Delay cap while failures repeat (default: 2m)
	Depth               int           // History entries kept per side (default: 3)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:            5 * time.Second,
		ErrorBackoffInitial: 5 * time.Second,
		ErrorBackoffMax:     2 * time.Minute,
		Depth:               projection.DefaultDepth,
	}
}
