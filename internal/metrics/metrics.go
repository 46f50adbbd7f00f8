package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK                 = "ok"
	OutcomeOccupationNotFound = "occupation_not_found"
	OutcomeUserNotFound       = "user_not_found"
	OutcomeStoreUnavailable   = "store_unavailable"
	OutcomeCanceled           = "canceled"

	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheBypass = "bypass"
)

var (
	ConvictionComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathway_conviction_computations_total",
			Help: "Total number of conviction computations by outcome",
		},
		[]string{"outcome"},
	)

	ConvictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathway_conviction_duration_seconds",
			Help:    "Duration of a conviction computation in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	ConvictionCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathway_conviction_cache_total",
			Help: "Conviction cache lookups by result",
		},
		[]string{"result"},
	)

	EngagementEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathway_engagement_events_total",
			Help: "Recorded engagement events by kind",
		},
		[]string{"kind"},
	)

	WSClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathway_ws_clients",
			Help: "Number of connected websocket clients",
		},
	)
)
