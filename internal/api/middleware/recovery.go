package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/feelmetown/FMT-BookingService/internal/api/handlers"
)

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// Recovery перехватывает панику в обработчике и отвечает 500
// вместо обрыва соединения и падения процесса
func Recovery(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Panic in handler %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
