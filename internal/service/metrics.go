package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations by operation and session kind.",
		},
		[]string{"operation", "session"},
	)

	reconcileRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_reconcile_runs_total",
			Help: "Cart reconciliation runs by outcome.",
		},
		[]string{"outcome"},
	)

	reconcileMigratedItems = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_reconcile_migrated_items_total",
			Help: "Local cart entries successfully migrated to the backend.",
		},
	)

	reconcileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_reconcile_duration_seconds",
			Help:    "End-to-end duration of cart reconciliation runs.",
			Buckets: prometheus.DefBuckets,
		},
	)

	snapshotPublishesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_snapshot_publishes_total",
			Help: "Cart snapshots published to subscribers.",
		},
	)
)
