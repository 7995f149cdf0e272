// Package metrics records scenario outcomes as Prometheus metrics and writes
// them in the node-exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/excelchat/login-e2e/internal/loginflow"
)

// ScenarioMetrics implements loginflow.Observer.
type ScenarioMetrics struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	lastRun  *prometheus.GaugeVec
}

func New() *ScenarioMetrics {
	m := &ScenarioMetrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "login_e2e_scenario_runs_total",
			Help: "Login scenario runs by result",
		}, []string{"scenario", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "login_e2e_scenario_duration_seconds",
			Help:    "Wall time of a login scenario including setup and teardown",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"scenario"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "login_e2e_scenario_passed",
			Help: "1 if the most recent run of the scenario passed, 0 otherwise",
		}, []string{"scenario"}),
	}
	m.registry.MustRegister(m.runs, m.duration, m.lastRun)
	return m
}

// ObserveScenario records one result.
func (m *ScenarioMetrics) ObserveScenario(r loginflow.Result) {
	result, passed := "fail", 0.0
	if r.Passed {
		result, passed = "pass", 1.0
	}
	m.runs.WithLabelValues(r.Scenario, result).Inc()
	m.duration.WithLabelValues(r.Scenario).Observe(r.Duration.Seconds())
	m.lastRun.WithLabelValues(r.Scenario).Set(passed)
}

// Registry exposes the gatherer, e.g. for a push or scrape endpoint.
func (m *ScenarioMetrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile atomically writes all metrics to path.
func (m *ScenarioMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
