package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/storefront/internal/broadcast"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
)

// PartialReconcileError reports a reconciliation run in which some local
// entries could not be persisted remotely. The local store is cleared
// regardless, so Dropped is the only remaining record of the lost lines.
type PartialReconcileError struct {
	Dropped []domain.LineItem
}

func (e *PartialReconcileError) Error() string {
	return fmt.Sprintf("cart reconciliation dropped %d item(s)", len(e.Dropped))
}

func (e *PartialReconcileError) Unwrap() error {
	return apperrors.ErrPartialMigrate
}

// Reconciler migrates the local anonymous cart into the backend cart
// collection when a user signs in. Entries are persisted one at a time in
// insertion order, each dispatch awaited before the next begins.
type Reconciler struct {
	local   repository.LocalCartStore
	backend CartBackend
	bus     *broadcast.Broadcaster
	logger  *slog.Logger
	tracer  trace.Tracer

	// dispatchDelay is an optional pause between persist calls, for
	// backends that throttle bursts. Correctness never depends on it.
	dispatchDelay time.Duration
}

func NewReconciler(local repository.LocalCartStore, backend CartBackend, bus *broadcast.Broadcaster, logger *slog.Logger, tracer trace.Tracer, dispatchDelay time.Duration) *Reconciler {
	return &Reconciler{
		local:         local,
		backend:       backend,
		bus:           bus,
		logger:        logger,
		tracer:        tracer,
		dispatchDelay: dispatchDelay,
	}
}

// Reconcile moves every local cart entry to the backend under ownerID,
// clears the local store, and publishes the resulting remote snapshot.
//
// Persist failures do not stop the run: remaining entries are still
// dispatched, the local store is still cleared, and the failed lines are
// reported through a PartialReconcileError. The published snapshot always
// reflects what the backend actually holds afterwards.
func (r *Reconciler) Reconcile(ctx context.Context, ownerID string) error {
	ctx = logger.WithCorrelationID(ctx, uuid.NewString())
	ctx, span := r.tracer.Start(ctx, "cart.reconcile",
		trace.WithAttributes(attribute.String("cart.owner_id", ownerID)))
	defer span.End()

	start := time.Now()
	log := logger.WithContext(ctx, r.logger)

	items, err := r.local.List(ctx)
	if err != nil {
		log.WarnContext(ctx, "failed to read local cart, nothing to migrate", "error", err)
		items = nil
	}

	var dropped []domain.LineItem
	for i, item := range items {
		if r.dispatchDelay > 0 && i > 0 {
			if err := sleepCtx(ctx, r.dispatchDelay); err != nil {
				dropped = append(dropped, items[i:]...)
				break
			}
		}

		entry := domain.RemoteEntry{LineItem: item, OwnerID: ownerID}
		entry.ID = ""
		if _, err := r.backend.PersistEntry(ctx, entry); err != nil {
			log.ErrorContext(ctx, "failed to persist cart entry",
				"product_id", item.ProductID, "error", err)
			dropped = append(dropped, item)
			continue
		}
		reconcileMigratedItems.Inc()
	}

	if len(items) > 0 {
		if err := r.local.Clear(ctx); err != nil {
			log.ErrorContext(ctx, "failed to clear local cart after migration", "error", err)
		}
	}

	r.publishRemote(ctx, ownerID)

	span.SetAttributes(
		attribute.Int("cart.migrated", len(items)-len(dropped)),
		attribute.Int("cart.dropped", len(dropped)),
	)
	reconcileDuration.Observe(time.Since(start).Seconds())

	switch {
	case len(items) == 0:
		reconcileRunsTotal.WithLabelValues("empty").Inc()
	case len(dropped) > 0:
		reconcileRunsTotal.WithLabelValues("partial").Inc()
		log.WarnContext(ctx, "cart reconciliation incomplete",
			"migrated", len(items)-len(dropped), "dropped", len(dropped))
		return &PartialReconcileError{Dropped: dropped}
	default:
		reconcileRunsTotal.WithLabelValues("full").Inc()
		log.InfoContext(ctx, "cart reconciliation complete", "migrated", len(items))
	}
	return nil
}

func (r *Reconciler) publishRemote(ctx context.Context, ownerID string) {
	entries, err := r.backend.ListEntries(ctx, ownerID)
	if err != nil {
		logger.WithContext(ctx, r.logger).WarnContext(ctx, "failed to load remote cart after migration", "error", err)
		return
	}
	r.bus.Publish(domain.SnapshotOf(entries))
	snapshotPublishesTotal.Inc()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
