package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus exports Metrics through its own registry.
type Prometheus struct {
	registry *prometheus.Registry

	lookups      *prometheus.HistogramVec
	writes       *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	kafka        *prometheus.HistogramVec
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
}

func NewPrometheus(namespace string) *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Aggregate lookup duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "found"}),
		writes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "write_duration_seconds",
			Help:      "Aggregate write duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "op", "status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		kafka: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_message_duration_seconds",
			Help:      "Kafka message processing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses",
		}),
	}

	p.registry.MustRegister(
		p.lookups,
		p.writes,
		p.httpRequests,
		p.httpDuration,
		p.kafka,
		p.cacheHits,
		p.cacheMisses,
	)
	return p
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) ObserveLookup(kind string, durMs float64, found bool) {
	p.lookups.WithLabelValues(kind, strconv.FormatBool(found)).Observe(durMs / 1000)
}

func (p *Prometheus) ObserveWrite(kind, op string, durMs float64, ok bool) {
	p.writes.WithLabelValues(kind, op, okLabel(ok)).Observe(durMs / 1000)
}

func (p *Prometheus) ObserveHTTP(method, route string, status int, durMs float64) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(durMs / 1000)
}

func (p *Prometheus) ObserveKafka(processMs float64, ok bool) {
	p.kafka.WithLabelValues(okLabel(ok)).Observe(processMs / 1000)
}

func (p *Prometheus) IncCacheHit()  { p.cacheHits.Inc() }
func (p *Prometheus) IncCacheMiss() { p.cacheMisses.Inc() }

func okLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
