// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fabin"

// Outcome labels for fabin_commands_total.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics is one process's instruments, on a private registry so tests and
// repeated Run calls never collide.
type Metrics struct {
	Registry *prometheus.Registry

	Commands       *prometheus.CounterVec
	EncodedBases   prometheus.Counter
	DecodedBases   prometheus.Counter
	GraphBuilds    prometheus.Counter
	GraphCacheHits prometheus.Counter
	ShortestPath   prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands executed, by command name and outcome",
		}, []string{"command", "outcome"}),
		EncodedBases: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encoded_bases_total",
			Help:      "Bases written to .fabin containers",
		}),
		DecodedBases: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decoded_bases_total",
			Help:      "Bases read back from .fabin containers",
		}),
		GraphBuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_builds_total",
			Help:      "Sequence grid graphs built",
		}),
		GraphCacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_cache_hits_total",
			Help:      "Route queries served by an already built graph",
		}),
		ShortestPath: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "shortest_path_seconds",
			Help:      "Time spent in shortest-path searches",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

// ObserveCommand counts one command run.
func (m *Metrics) ObserveCommand(command string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.Commands.WithLabelValues(command, outcome).Inc()
}

// Since records the time elapsed from start on h.
func Since(h prometheus.Observer, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
