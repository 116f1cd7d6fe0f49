package observability

import "net/http"

// Metrics receives timings in milliseconds. Kind is the aggregate kind
// ("product", "order"), op the use case ("create", "delete", ...).
type Metrics interface {
	ObserveLookup(kind string, durMs float64, found bool)
	ObserveWrite(kind, op string, durMs float64, ok bool)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveKafka(processMs float64, ok bool)
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveLookup(string, float64, bool)        {}
func (Noop) ObserveWrite(string, string, float64, bool) {}
func (Noop) ObserveHTTP(string, string, int, float64)   {}
func (Noop) ObserveKafka(float64, bool)                 {}
func (Noop) IncCacheHit()                               {}
func (Noop) IncCacheMiss()                              {}

const (
	SinkPrometheus = "prometheus"
	SinkInmem      = "inmem"
	SinkNone       = "none"
)

// NewSink builds the metrics sink named by sink with the handler that exposes
// it. Unknown names fall back to Prometheus. The none sink has no handler.
func NewSink(sink, namespace string) (Metrics, http.Handler) {
	switch sink {
	case SinkInmem:
		m := NewInmem(1000)
		return m, m.Handler()
	case SinkNone:
		return NewNoop(), nil
	default:
		p := NewPrometheus(namespace)
		return p, p.Handler()
	}
}
