package editorlab

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricsNamespace = "editorlab"

// Metrics - собственные метрики сервиса. Регистрируются в отдельном реестре, чтобы несколько
// экземпляров сервиса (например в тестах) не конфликтовали.
type Metrics struct {
	Registry *prometheus.Registry

	Exports      *prometheus.CounterVec
	ExportBytes  prometheus.Histogram
	LiveSessions prometheus.Gauge
	BootTime     prometheus.Gauge
}

func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "exports_total",
			Help:      "Exported documents, partitioned by editor and format.",
		}, []string{"editor", "format"}),
		ExportBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "export_bytes",
			Help:      "Size of export results in bytes.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		}),
		LiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "live_sessions",
			Help:      "Open live preview websocket connections.",
		}),
		BootTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "boot_time",
			Help:      "Server startup time",
		}),
	}
	m.BootTime.Set(float64(time.Now().UnixMilli()))

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Exports, m.ExportBytes, m.LiveSessions, m.BootTime,
	} {
		if err := m.Registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) ObserveExport(editor, format string, size int) {
	m.Exports.WithLabelValues(editor, format).Inc()
	m.ExportBytes.Observe(float64(size))
}
