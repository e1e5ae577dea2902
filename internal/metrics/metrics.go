package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	routesPlannedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starnav_routes_planned_total",
			Help: "Total number of route planner runs by outcome.",
		},
		[]string{"outcome"},
	)

	planDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "starnav_route_plan_duration_seconds",
			Help:    "Duration of a single route planner run in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)

	planIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "starnav_route_iterations",
			Help:    "Planner iterations used per run.",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 50, 100},
		},
	)

	legsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starnav_legs_total",
			Help: "Total number of followed legs by stop reason.",
		},
		[]string{"reason"},
	)

	legSteps = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "starnav_leg_steps",
			Help:    "Movement steps simulated per leg.",
			Buckets: prometheus.ExponentialBuckets(1, 3, 9),
		},
	)

	catalogQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starnav_catalog_queries_total",
			Help: "Total number of catalog provider queries by result.",
		},
		[]string{"result"},
	)

	catalogQueryDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "starnav_catalog_query_duration_seconds",
			Help:    "Catalog provider query duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 9),
		},
	)

	catalogCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starnav_catalog_cache_total",
			Help: "Catalog snapshot cache lookups by result.",
		},
		[]string{"result"},
	)

	routeSetBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starnav_routeset_builds_total",
			Help: "Total number of route set requests by outcome.",
		},
		[]string{"outcome"},
	)

	routeSetDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "starnav_routeset_duration_seconds",
			Help:    "Duration of a route set build in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	variantsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starnav_routeset_variants_total",
			Help: "Route variants by result (kept, duplicate, failed).",
		},
		[]string{"result"},
	)

	routeCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starnav_routeset_cache_total",
			Help: "Route set cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(routesPlannedTotal)
	prometheus.MustRegister(planDurationSeconds)
	prometheus.MustRegister(planIterations)
	prometheus.MustRegister(legsTotal)
	prometheus.MustRegister(legSteps)
	prometheus.MustRegister(catalogQueriesTotal)
	prometheus.MustRegister(catalogQueryDurationSeconds)
	prometheus.MustRegister(catalogCacheTotal)
	prometheus.MustRegister(routeSetBuildsTotal)
	prometheus.MustRegister(routeSetDurationSeconds)
	prometheus.MustRegister(variantsTotal)
	prometheus.MustRegister(routeCacheTotal)
}

// RecordPlan records one finished route planner run.
func RecordPlan(outcome string, duration time.Duration, iterations int) {
	routesPlannedTotal.WithLabelValues(outcome).Inc()
	planDurationSeconds.Observe(duration.Seconds())
	planIterations.Observe(float64(iterations))
}

// RecordLeg records one followed leg.
func RecordLeg(reason string, steps int) {
	legsTotal.WithLabelValues(reason).Inc()
	legSteps.Observe(float64(steps))
}

// RecordCatalogQuery records one provider query. result is ok, error or timeout.
func RecordCatalogQuery(result string, duration time.Duration) {
	catalogQueriesTotal.WithLabelValues(result).Inc()
	catalogQueryDurationSeconds.Observe(duration.Seconds())
}

// RecordCatalogCache records a catalog snapshot cache lookup.
func RecordCatalogCache(hit bool) {
	catalogCacheTotal.WithLabelValues(hitLabel(hit)).Inc()
}

// RecordRouteSet records one route set build.
func RecordRouteSet(outcome string, duration time.Duration) {
	routeSetBuildsTotal.WithLabelValues(outcome).Inc()
	routeSetDurationSeconds.Observe(duration.Seconds())
}

// RecordVariant records the fate of one generated route variant.
func RecordVariant(result string) {
	variantsTotal.WithLabelValues(result).Inc()
}

// RecordRouteCache records a route set cache lookup. result is hit, miss or error.
func RecordRouteCache(result string) {
	routeCacheTotal.WithLabelValues(result).Inc()
}

func hitLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// WriteTextfile writes all registered metrics to path in the Prometheus text
// exposition format, for collection by a node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
