// Package metrics holds the Prometheus collectors for the recommendation
// engine and step tracking.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ResultOK labels a successful plan generation or dataset load. Failed
// generations use the recommend error kind as the result label.
const ResultOK = "ok"

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for plan generation, step logging and
// dataset loading.
type Metrics struct {
	PlansGenerated *prometheus.CounterVec
	StepLogWrites  *prometheus.CounterVec
	DatasetLoads   *prometheus.CounterVec
}

// New creates and registers the collectors on the default registry.
// Registration happens once per process; later calls return the same set.
//
//   - reprise_plans_generated_total{result} - ok, dataset_missing, internal
//   - reprise_step_log_writes_total{outcome} - created, updated, unchanged
//   - reprise_dataset_loads_total{table,result} - catalog/links, ok/missing/error
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			PlansGenerated: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "reprise_plans_generated_total",
					Help: "Total number of workout plan generations by result",
				},
				[]string{"result"},
			),
			StepLogWrites: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "reprise_step_log_writes_total",
					Help: "Total number of step log writes by outcome",
				},
				[]string{"outcome"},
			),
			DatasetLoads: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "reprise_dataset_loads_total",
					Help: "Total number of static table loads",
				},
				[]string{"table", "result"},
			),
		}
	})
	return globalMetrics
}

// PlanGenerated counts a plan generation. Safe on a nil receiver.
func (m *Metrics) PlanGenerated(result string) {
	if m == nil {
		return
	}
	m.PlansGenerated.WithLabelValues(result).Inc()
}

// StepLogWritten counts a step log write. Safe on a nil receiver.
func (m *Metrics) StepLogWritten(outcome string) {
	if m == nil {
		return
	}
	m.StepLogWrites.WithLabelValues(outcome).Inc()
}

// DatasetLoaded counts a static table load. Safe on a nil receiver.
func (m *Metrics) DatasetLoaded(table, result string) {
	if m == nil {
		return
	}
	m.DatasetLoads.WithLabelValues(table, result).Inc()
}
