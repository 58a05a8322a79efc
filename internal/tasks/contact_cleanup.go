package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/osa911/folio/internal/logging"
)

// DefaultCleanupInterval is how often read messages are purged
const DefaultCleanupInterval = 12 * time.Hour

// Purger deletes read contact messages last touched before a cutoff
type Purger interface {
	PurgeRead(ctx context.Context, before time.Time) (int64, error)
}

// ContactCleanup periodically purges read contact messages older than the
// retention period
type ContactCleanup struct {
	purger    Purger
	retention time.Duration
	interval  time.Duration
	logger    *logging.Logger
	now       func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewContactCleanup creates a new cleanup task. A zero retention disables it.
func NewContactCleanup(purger Purger, retention, interval time.Duration, logger *logging.Logger) *ContactCleanup {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &ContactCleanup{
		purger:    purger,
		retention: retention,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

// Start runs the cleanup once and then on every interval until ctx is
// cancelled or Stop is called
func (cc *ContactCleanup) Start(ctx context.Context) {
	if cc.retention <= 0 {
		cc.logger.Info("Contact cleanup disabled (CONTACT_RETENTION_DAYS=0)")
		return
	}

	ctx, cc.cancel = context.WithCancel(ctx)
	cc.wg.Add(1)
	go cc.runPeriodically(ctx)
}

// Stop gracefully stops the cleanup task
func (cc *ContactCleanup) Stop() {
	if cc.cancel == nil {
		return
	}
	cc.cancel()
	cc.wg.Wait()
}

func (cc *ContactCleanup) runPeriodically(ctx context.Context) {
	defer cc.wg.Done()

	cc.cleanup(ctx)

	ticker := time.NewTicker(cc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cc.cleanup(ctx)
		case <-ctx.Done():
			cc.logger.Info("Contact cleanup task stopped")
			return
		}
	}
}

// cleanup performs a single purge
func (cc *ContactCleanup) cleanup(ctx context.Context) {
	cutoff := cc.now().Add(-cc.retention)

	deleted, err := cc.purger.PurgeRead(ctx, cutoff)
	if err != nil {
		cc.logger.Error("Contact cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		cc.logger.Info("Deleted %d read contact messages older than %s", deleted, cutoff.Format(time.RFC3339))
	}
}
