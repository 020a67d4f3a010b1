package scheduler

import (
	"context"
	"time"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

// InterestReconciler periodically rewrites the cached interest counters from
// the ledger. The cache drifts when increments are lost (redis restart,
// failed best-effort writes); the ledger is always authoritative.
type InterestReconciler struct {
	items     ports.ItemRepository
	interests ports.InterestRepository
	cache     ports.Cache
	log       *logger.Logger
	interval  time.Duration
	ttl       time.Duration
	stopChan  chan struct{}
}

func NewInterestReconciler(
	items ports.ItemRepository,
	interests ports.InterestRepository,
	cache ports.Cache,
	log *logger.Logger,
	interval time.Duration,
) *InterestReconciler {
	return &InterestReconciler{
		items:     items,
		interests: interests,
		cache:     cache,
		log:       log,
		interval:  interval,
		ttl:       2 * interval,
		stopChan:  make(chan struct{}),
	}
}

func (r *InterestReconciler) Start(ctx context.Context) {
	r.log.Info("starting interest counter reconciler", "interval", r.interval.String())

	if err := r.reconcile(ctx); err != nil {
		r.log.Error("initial counter reconciliation failed", "error", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("interest counter reconciler stopped")
			return
		case <-r.stopChan:
			r.log.Info("interest counter reconciler stopped")
			return
		case <-ticker.C:
			if err := r.reconcile(ctx); err != nil {
				r.log.Error("counter reconciliation failed", "error", err)
			}
		}
	}
}

func (r *InterestReconciler) Stop() {
	close(r.stopChan)
}

func (r *InterestReconciler) reconcile(ctx context.Context) error {
	items, err := r.items.GetAllItems(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	counts, err := r.interests.CountForItems(ctx, ids)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := r.cache.SetInterestCount(ctx, id, counts[id], r.ttl); err != nil {
			r.log.Warn("failed to refresh interest counter", "item_id", id, "error", err)
		}
	}
	return nil
}
