package lifecycle

import (
	"context"
	"log"
	"time"

	"github.com/peerpods-dev/peerpods/internal/clock"
	"github.com/peerpods-dev/peerpods/shared/domain"
)

// Refresher keeps the cached state column in step with DeriveState.
// Refresh is idempotent and safe to run concurrently with admission checks:
// the cached value is never a decision input, so last-writer-wins is fine.
type Refresher struct {
	storage          RefreshStorage
	clock            clock.Clock
	lastRefreshStats RefreshStats
}

// RefreshStats tracks metrics from the last refresh run.
type RefreshStats struct {
	RunAt       time.Time
	PodsScanned int
	PodsUpdated int
	DurationMs  int64
	Errors      []string
}

// RefreshStorage defines the database operations needed by the refresher.
type RefreshStorage interface {
	// PodsWithStaleState returns pods whose cached state may lag the
	// derived one (anything not yet expired).
	PodsWithStaleState() ([]domain.Pod, error)
	// SetPodState persists the cached state; returns false when another
	// writer already stored the same value.
	SetPodState(id domain.PodId, state domain.PodState) (bool, error)
}

// NewRefresher creates a new Refresher.
func NewRefresher(storage RefreshStorage, clk clock.Clock) *Refresher {
	return &Refresher{storage: storage, clock: clk}
}

// StartBackgroundRefresh starts a goroutine that refreshes periodically.
func (rf *Refresher) StartBackgroundRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	log.Printf("Started pod state refresher (interval: %v)", interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := rf.Refresh(); err != nil {
					log.Printf("StateRefresh: error: %v", err)
				} else {
					stats := rf.LastRefreshStats()
					log.Printf("StateRefresh: completed - scanned: %d, updated: %d, duration: %dms, errors: %d",
						stats.PodsScanned, stats.PodsUpdated, stats.DurationMs, len(stats.Errors))
				}
			case <-ctx.Done():
				log.Printf("StateRefresh: shutting down gracefully")
				return
			}
		}
	}()
}

// Refresh executes a single refresh cycle.
// It can be called manually for testing or maintenance.
func (rf *Refresher) Refresh() error {
	startTime := time.Now()
	stats := RefreshStats{
		RunAt:  rf.clock.Now(),
		Errors: []string{},
	}

	pods, err := rf.storage.PodsWithStaleState()
	if err != nil {
		return err
	}
	stats.PodsScanned = len(pods)

	for i := range pods {
		pod := &pods[i]
		derived := StateOf(pod, rf.clock.Now())
		if derived == pod.State {
			continue
		}

		updated, err := rf.storage.SetPodState(pod.Id, derived)
		if err != nil {
			stats.Errors = append(stats.Errors, pod.Title+": "+err.Error())
			continue
		}
		if updated {
			stats.PodsUpdated++
		}
	}

	stats.DurationMs = time.Since(startTime).Milliseconds()
	rf.lastRefreshStats = stats

	return nil
}

// LastRefreshStats returns statistics from the last refresh run.
// Useful for monitoring and observability.
func (rf *Refresher) LastRefreshStats() RefreshStats {
	return rf.lastRefreshStats
}
