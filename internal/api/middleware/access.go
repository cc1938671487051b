package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/tripgen/internal/infra/metrics"
)

// AccessLog writes one zerolog line per request and records HTTP metrics.
// Metrics are labelled with the chi route pattern, not the raw path, so ids
// in URLs do not create new series. m may be nil.
func AccessLog(logger zerolog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(recorder, r)
			elapsed := time.Since(start)

			route := routePattern(r)
			m.ObserveHTTP(route, r.Method, recorder.statusCode, elapsed)

			evt := levelForStatus(logger, recorder.statusCode).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Int("status", recorder.statusCode).
				Int("bytes", recorder.bytes).
				Dur("elapsed", elapsed).
				Str("remote", r.RemoteAddr)
			if id := chimw.GetReqID(r.Context()); id != "" {
				evt = evt.Str("request_id", id)
			}
			evt.Msg("http request")
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	bytes       int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func levelForStatus(logger zerolog.Logger, statusCode int) *zerolog.Event {
	switch {
	case statusCode >= 500:
		return logger.Error()
	case statusCode >= 400:
		return logger.Warn()
	default:
		return logger.Info()
	}
}
