package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CheckOut(t *testing.T) {
	m := New("parking-test")

	m.ObserveCheckOut("moto", true, 3000)
	m.ObserveCheckOut("moto", false, 0)
	m.ObserveCheckOut("automovil", true, 1500.5)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CheckOutsTotal.WithLabelValues("true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CheckOutsTotal.WithLabelValues("false")))
	assert.Equal(t, float64(3000), testutil.ToFloat64(m.ChargedAmountTotal.WithLabelValues("moto")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveCheckIn("moto")
		m.ObserveCheckOut("moto", true, 10)
		m.ObserveHTTPRequest("GET", "/api/entradas", 200, time.Millisecond)
		m.ObserveDBQuery("query", time.Millisecond, nil)
		m.SetDBPoolStats("primary", 1, 1, 0)
		m.ObserveTariffError("no_rate")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New("parking-test")
	m.ObserveHTTPRequest("POST", "/api/entradas", 201, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="POST",route="/api/entradas",service="parking-test",status="201"} 1`)
}
