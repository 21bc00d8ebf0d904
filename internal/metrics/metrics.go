package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Количество HTTP запросов",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Длительность обработки HTTP запросов",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PublishSignalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_publish_signals_total",
			Help: "Количество выпущенных сигналов публикации",
		},
	)

	GalleryCacheFlushes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_gallery_cache_flushes_total",
			Help: "Количество сбросов кэша собранных галерей",
		},
	)
)
