package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики админ-панели коворкинга
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coworkadmin_http_requests_total",
			Help: "Общее количество HTTP запросов",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coworkadmin_http_request_duration_seconds",
			Help:    "Время обработки HTTP запросов в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	NewslettersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coworkadmin_newsletter_messages_total",
			Help: "Сообщения рассылок по результату доставки",
		},
		[]string{"status"},
	)

	BackupRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coworkadmin_backup_runs_total",
			Help: "Запуски резервного копирования по виду и результату",
		},
		[]string{"kind", "status"},
	)

	TasksExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coworkadmin_scheduled_tasks_executed_total",
			Help: "Выполненные отложенные задачи по результату",
		},
		[]string{"kind", "status"},
	)

	IPBansSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coworkadmin_ip_bans_swept_total",
			Help: "Удалённые просроченные IP-баны",
		},
	)

	MemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coworkadmin_memory_usage_bytes",
			Help: "Использование памяти в байтах",
		},
	)

	GoroutinesCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coworkadmin_goroutines_count",
			Help: "Количество активных горутин",
		},
	)
)

// RecordHTTPRequest записывает метрику HTTP запроса
func RecordHTTPRequest(method, endpoint, status string) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
}

// RecordNewsletterMessage записывает результат доставки одного сообщения
func RecordNewsletterMessage(status string) {
	NewslettersSent.WithLabelValues(status).Inc()
}

// RecordBackupRun записывает запуск резервного копирования
func RecordBackupRun(kind, status string) {
	BackupRuns.WithLabelValues(kind, status).Inc()
}

// RecordTaskExecution записывает выполнение отложенной задачи
func RecordTaskExecution(kind, status string) {
	TasksExecuted.WithLabelValues(kind, status).Inc()
}
