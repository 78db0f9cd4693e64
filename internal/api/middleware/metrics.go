package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/feelmetown/FMT-BookingService/pkg/metrics"
)

// statusRecorder обёртка ResponseWriter для захвата статуса ответа
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush пробрасывает Flush к нижележащему writer (нужно для SSE)
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap открывает нижележащий writer для http.ResponseController,
// иначе SetWriteDeadline из SSE-обработчика не дойдёт до соединения
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// MetricsMiddleware собирает количество и длительность HTTP-запросов.
// В label path попадает шаблон роута ("/bookings/{bookingRef}"), а не
// конкретный URL, иначе кардинальность метрик растёт с каждым номером
func MetricsMiddleware(m *metrics.Metrics, serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}

			m.ObserveHTTPRequest(r.Method, path, recorder.status, time.Since(start))
		})
	}
}
