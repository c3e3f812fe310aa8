package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/apaulliao/classboard-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the status loop
// and the HTTP surface.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	evaluationDuration prometheus.Observer
	evaluationTotal    *prometheus.CounterVec
	modeGauge          *prometheus.GaugeVec
	secondsRemaining   prometheus.Gauge
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	cacheWrite         prometheus.Observer
}

var displayModes = []models.DisplayMode{
	models.ModeLoading,
	models.ModeSpecial,
	models.ModeEco,
	models.ModeClass,
	models.ModeBreak,
	models.ModePreBell,
	models.ModeOffHours,
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	evaluationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "board_evaluation_seconds",
		Help:    "Duration of a single status evaluation",
		Buckets: []float64{.000001, .00001, .0001, .001, .01, .1},
	})

	evaluationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "board_evaluations_total",
		Help: "Status evaluations by resulting display mode",
	}, []string{"mode"})

	modeGauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "board_display_mode",
		Help: "Set to 1 for the display mode currently shown",
	}, []string{"mode"})

	secondsRemaining := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "board_seconds_remaining",
		Help: "Countdown seconds remaining in the current slot",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(requestDuration, requestTotal, evaluationDuration,
		evaluationTotal, modeGauge, secondsRemaining, cacheHits, cacheMisses, cacheWrite)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		evaluationDuration: evaluationDuration,
		evaluationTotal:    evaluationTotal,
		modeGauge:          modeGauge,
		secondsRemaining:   secondsRemaining,
		cacheHits:          cacheHits,
		cacheMisses:        cacheMisses,
		cacheWrite:         cacheWrite,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records request metrics.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordEvaluation records one engine evaluation and its resulting snapshot.
func (s *MetricsService) RecordEvaluation(snap models.StatusSnapshot, duration time.Duration) {
	s.evaluationDuration.Observe(duration.Seconds())
	s.evaluationTotal.WithLabelValues(string(snap.Mode)).Inc()
	for _, mode := range displayModes {
		value := 0.0
		if mode == snap.Mode {
			value = 1.0
		}
		s.modeGauge.WithLabelValues(string(mode)).Set(value)
	}
	s.secondsRemaining.Set(float64(snap.SecondsRemaining))
}

// RecordCacheOperation records a cache lookup outcome.
func (s *MetricsService) RecordCacheOperation(hit bool) {
	if hit {
		s.cacheHits.Inc()
		return
	}
	s.cacheMisses.Inc()
}

// ObserveCacheWrite records cache write latency.
func (s *MetricsService) ObserveCacheWrite(duration time.Duration) {
	s.cacheWrite.Observe(duration.Seconds())
}
