package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор Prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках
// в зависимости передается nil и вызовы ничего не делают.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec

	CheckInsTotal       *prometheus.CounterVec
	CheckOutsTotal      *prometheus.CounterVec
	ChargedAmountTotal  *prometheus.CounterVec
	TariffResolveErrors *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"pool"}),

		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"pool"}),

		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"pool"}),

		CheckInsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_check_ins_total",
			Help:        "Vehicles registered at the entrance",
			ConstLabels: constLabels,
		}, []string{"vehicle_type"}),

		CheckOutsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_check_outs_total",
			Help:        "Closed entries, split by whether a charge was computed",
			ConstLabels: constLabels,
		}, []string{"charged"}),

		ChargedAmountTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_charged_amount_total",
			Help:        "Sum of amounts charged at check-out",
			ConstLabels: constLabels,
		}, []string{"vehicle_type"}),

		TariffResolveErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_tariff_resolve_errors_total",
			Help:        "Tariff resolution failures by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.CheckInsTotal,
		m.CheckOutsTotal,
		m.ChargedAmountTotal,
		m.TariffResolveErrors,
	)

	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает registry (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(pool string, open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(pool).Set(float64(open))
	m.DBInUse.WithLabelValues(pool).Set(float64(inUse))
	m.DBIdle.WithLabelValues(pool).Set(float64(idle))
}

// ObserveCheckIn фиксирует регистрацию въезда
func (m *Metrics) ObserveCheckIn(vehicleType string) {
	if m == nil {
		return
	}
	m.CheckInsTotal.WithLabelValues(vehicleType).Inc()
}

// ObserveCheckOut фиксирует закрытие записи и сумму
func (m *Metrics) ObserveCheckOut(vehicleType string, charged bool, amount float64) {
	if m == nil {
		return
	}
	m.CheckOutsTotal.WithLabelValues(strconv.FormatBool(charged)).Inc()
	if charged && amount > 0 {
		m.ChargedAmountTotal.WithLabelValues(vehicleType).Add(amount)
	}
}

// ObserveTariffError фиксирует ошибку подбора тарифа
func (m *Metrics) ObserveTariffError(reason string) {
	if m == nil {
		return
	}
	m.TariffResolveErrors.WithLabelValues(reason).Inc()
}
