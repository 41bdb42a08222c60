// Package metrics прометей-метрики сервиса: HTTP, база данных и синхронизация
// внешней таблицы.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics контейнер всех коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec

	SheetSyncTotal    *prometheus.CounterVec
	SheetSyncDuration prometheus.Histogram
}

// New регистрирует коллекторы в дефолтном регистре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Количество HTTP запросов",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Длительность HTTP запросов",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Длительность запросов к базе данных",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		DBConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Состояние пула соединений с базой данных",
			ConstLabels: constLabels,
		}, []string{"state"}),

		SheetSyncTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "sheet_sync_total",
			Help:        "Количество публикаций сетки во внешнюю таблицу",
			ConstLabels: constLabels,
		}, []string{"result"}),

		SheetSyncDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:        "sheet_sync_duration_seconds",
			Help:        "Длительность публикации сетки во внешнюю таблицу",
			ConstLabels: constLabels,
			Buckets:     []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
}

// ObserveHTTPRequest учитывает завершённый HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery учитывает выполненный запрос к базе
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBConnections обновляет гейджи пула соединений
func (m *Metrics) SetDBConnections(open, idle, inUse int) {
	m.DBConnections.WithLabelValues("open").Set(float64(open))
	m.DBConnections.WithLabelValues("idle").Set(float64(idle))
	m.DBConnections.WithLabelValues("in_use").Set(float64(inUse))
}

// ObserveSheetSync учитывает попытку публикации во внешнюю таблицу
func (m *Metrics) ObserveSheetSync(success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.SheetSyncTotal.WithLabelValues(result).Inc()
	m.SheetSyncDuration.Observe(duration.Seconds())
}
