package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	routeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wayfinder_route_requests_total",
		Help: "Total navigation requests by operation and result",
	}, []string{"operation", "result"})

	routeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wayfinder_route_duration_seconds",
		Help:    "Navigation request duration",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
	}, []string{"operation"})

	routeWaypoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wayfinder_route_waypoints",
		Help:    "Number of cells in returned routes",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	floorsRegistered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wayfinder_floors_registered",
		Help: "Number of floors currently registered",
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wayfinder_sessions_active",
		Help: "Number of navigation sessions held in memory",
	})
)

func resultLabel(found bool) string {
	if found {
		return "found"
	}
	return "not_found"
}
