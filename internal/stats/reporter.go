package stats

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skybi/table-server/internal/store"
)

// Reporter periodically samples a store's statistics and logs them.
// Start and Stop perform no internal locking and have to be driven from a
// single goroutine (the sampling itself runs detached).
type Reporter struct {
	sample   func() store.Stats
	interval time.Duration

	running bool
	stop    chan struct{}
}

// NewReporter creates a new statistics reporter around the given sampling function.
func NewReporter(sample func() store.Stats, interval time.Duration) *Reporter {
	return &Reporter{
		sample:   sample,
		interval: interval,
	}
}

// Start starts the periodic sampling.
// If the reporter is already running, this is a no-op.
// Start must not be called concurrently with Stop.
func (reporter *Reporter) Start() {
	if reporter.running {
		return
	}
	reporter.running = true
	reporter.stop = make(chan struct{})
	go func() {
		for {
			select {
			case <-time.After(reporter.interval):
				reporter.report()
			case <-reporter.stop:
				return
			}
		}
	}()
}

// Stop stops the periodic sampling.
// If the reporter is not running, this is a no-op.
// finalReport defines whether to log one last sample before shutting down.
// Stop must not be called concurrently with Start.
func (reporter *Reporter) Stop(finalReport bool) {
	if !reporter.running {
		return
	}
	close(reporter.stop)
	reporter.running = false
	if finalReport {
		reporter.report()
	}
}

func (reporter *Reporter) report() {
	snapshot := reporter.sample()
	log.Info().
		Int("count", snapshot.Count).
		Int("capacity", snapshot.Capacity).
		Float64("load_factor", snapshot.LoadFactor).
		Msg("table statistics")
}
