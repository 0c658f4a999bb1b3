package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the pipeline counters exposed on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	RunsTotal      *prometheus.CounterVec
	RecordsEmitted *prometheus.CounterVec
	HeldRecords    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spendguard",
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by kind and outcome.",
		}, []string{"kind", "status"}),
		RecordsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spendguard",
			Name:      "pipeline_records_emitted_total",
			Help:      "Output records by kind.",
		}, []string{"kind"}),
		HeldRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spendguard",
			Name:      "pipeline_held_records_total",
			Help:      "Held records by hold reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.RunsTotal, m.RecordsEmitted, m.HeldRecords)
	return m
}
