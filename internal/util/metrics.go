package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_items_added_total",
		Help: "Total number of items added to orders",
	})

	AddItemFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_item_add_failures_total",
		Help: "Total number of failed item additions",
	}, []string{"reason"})

	OrderTotalRecomputesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_total_recomputes_total",
		Help: "Total number of lazy order total recomputations",
	})

	StockAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_alerts_total",
		Help: "Total number of low-stock alerts raised",
	})

	PopularCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "popular_items_cache_hits_total",
		Help: "Popular items report served from cache",
	})

	PopularCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "popular_items_cache_misses_total",
		Help: "Popular items report recomputed from the database",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
