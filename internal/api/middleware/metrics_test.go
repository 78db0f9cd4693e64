package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelmetown/FMT-BookingService/pkg/metrics"
)

// promauto регистрирует метрики в default-регистре, поэтому на все
// тесты пакета один экземпляр
var testMetrics = metrics.New("booking-service-test")

// deadlineRecorder имитирует writer реального соединения,
// поддерживающий дедлайны записи
type deadlineRecorder struct {
	*httptest.ResponseRecorder
	deadlines []time.Time
}

func (w *deadlineRecorder) SetWriteDeadline(t time.Time) error {
	w.deadlines = append(w.deadlines, t)
	return nil
}

func TestMetricsMiddleware_WriteDeadlineReachesConnection(t *testing.T) {
	// SSE-обработчик снимает дедлайн записи через http.ResponseController;
	// обёртка middleware обязана пропустить вызов до соединения
	inner := &deadlineRecorder{ResponseRecorder: httptest.NewRecorder()}

	handler := MetricsMiddleware(testMetrics, "booking-service")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := http.NewResponseController(w).SetWriteDeadline(time.Time{})
			require.NoError(t, err)
		}))

	handler.ServeHTTP(inner, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))

	require.Len(t, inner.deadlines, 1)
	assert.True(t, inner.deadlines[0].IsZero())
}

func TestMetricsMiddleware_PassesResponseThrough(t *testing.T) {
	rec := httptest.NewRecorder()

	handler := MetricsMiddleware(testMetrics, "booking-service")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/internal/events/sync", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}
