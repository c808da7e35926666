package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// runMetrics implements markov.Recorder on top of a private Prometheus registry
// that can be written out in the textfile exposition format after a run.
type runMetrics struct {
	registry      *prometheus.Registry
	trained       prometheus.Counter
	generated     prometheus.Counter
	restarts      *prometheus.CounterVec
	modelStates   prometheus.Gauge
	stageDuration *prometheus.HistogramVec

	restartCount int
}

func newRunMetrics() *runMetrics {
	m := &runMetrics{
		registry: prometheus.NewRegistry(),
		trained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "markov_text",
			Name:      "transitions_trained_total",
			Help:      "Token pairs recorded while training the model",
		}),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "markov_text",
			Name:      "tokens_generated_total",
			Help:      "Tokens emitted by generation",
		}),
		restarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "markov_text",
			Name:      "restarts_total",
			Help:      "Walks restarted from a random state, by cause",
		}, []string{"cause"}),
		modelStates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "markov_text",
			Name:      "model_states",
			Help:      "Distinct tokens in the trained model",
		}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "markov_text",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each run stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
	}
	m.registry.MustRegister(m.trained, m.generated, m.restarts, m.modelStates, m.stageDuration)
	return m
}

func (m *runMetrics) TransitionsTrained(n int) { m.trained.Add(float64(n)) }

func (m *runMetrics) TokenEmitted() { m.generated.Inc() }

func (m *runMetrics) Restarted(cause string) {
	m.restarts.WithLabelValues(cause).Inc()
	m.restartCount++
}

func (m *runMetrics) observeStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// writeTextfile writes all metrics to path for a node-exporter textfile collector.
func (m *runMetrics) writeTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
