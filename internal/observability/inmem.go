package observability

import (
	"encoding/json"
	"net/http"
	"sync"
)

type observe struct {
	Kind   string  `json:"kind"`
	Name   string  `json:"name,omitempty"`
	Status int     `json:"status,omitempty"`
	Dur    float64 `json:"dur_ms"`
	OK     bool    `json:"ok"`
}

// Inmem keeps the last max observations and cache counters. Used by tests
// and local runs.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals struct {
		cacheHits, cacheMiss int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[len(m.last)-m.max:]
	}
}

func (m *Inmem) ObserveLookup(kind string, durMs float64, found bool) {
	m.push(&observe{Kind: "lookup", Name: kind, Dur: durMs, OK: found})
}

func (m *Inmem) ObserveWrite(kind, op string, durMs float64, ok bool) {
	m.push(&observe{Kind: "write", Name: kind + "." + op, Dur: durMs, OK: ok})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Name: method + " " + route, Status: status, Dur: durMs})
}

func (m *Inmem) ObserveKafka(processMs float64, ok bool) {
	m.push(&observe{Kind: "kafka", Dur: processMs, OK: ok})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}
func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

// Snapshot returns the retained observation kinds, oldest first, with the
// cache counters.
func (m *Inmem) Snapshot() (kinds []string, hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds = make([]string, 0, len(m.last))
	for _, o := range m.last {
		kinds = append(kinds, o.Kind)
	}
	return kinds, m.totals.cacheHits, m.totals.cacheMiss
}

// Handler serves the retained observations and cache counters as JSON.
func (m *Inmem) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		m.mu.Lock()
		body := struct {
			Recent      []observe `json:"recent"`
			CacheHits   int       `json:"cache_hits"`
			CacheMisses int       `json:"cache_misses"`
		}{
			Recent:      make([]observe, 0, len(m.last)),
			CacheHits:   m.totals.cacheHits,
			CacheMisses: m.totals.cacheMiss,
		}
		for _, o := range m.last {
			body.Recent = append(body.Recent, *o)
		}
		m.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
}
