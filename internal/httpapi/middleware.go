package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/TemirB/catalog-orders/internal/observability"
)

// ServerTimingApp measures the request, writes app;dur=... to Server-Timing
// right before the headers go out and reports the total to
// Metrics.ObserveHTTP under the matched route pattern.
func ServerTimingApp(m observability.Metrics) func(http.Handler) http.Handler {
	if m == nil {
		m = observability.Noop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			tw := &timingWriter{
				WrapResponseWriter: middleware.NewWrapResponseWriter(w, r.ProtoMajor),
				start:              start,
			}
			next.ServeHTTP(tw, r)
			m.ObserveHTTP(r.Method, routePattern(r), tw.Status(), sinceMs(start))
		})
	}
}

type timingWriter struct {
	middleware.WrapResponseWriter
	start       time.Time
	wroteHeader bool
}

func (w *timingWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		observability.AppendServerTiming(w, "app", sinceMs(w.start), "")
	}
	w.WrapResponseWriter.WriteHeader(code)
}

func (w *timingWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.WrapResponseWriter.Write(b)
}

func sinceMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
