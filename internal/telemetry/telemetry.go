// Package telemetry records generation metrics on a private registry so they
// can be dumped in the Prometheus text format after a run.
package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/willbeason/procedural-trees/pkg/scene"
)

// Recorder holds the generation metrics.
type Recorder struct {
	registry *prometheus.Registry

	nodes     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	cancelled *prometheus.CounterVec
}

// New registers the generation metrics on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		nodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "procedural_nodes_total",
				Help: "Structure nodes built, by generator and role.",
			},
			[]string{"generator", "role"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "procedural_generation_seconds",
				Help:    "Wall time spent generating one structure.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"generator"},
		),
		cancelled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "procedural_spawns_cancelled_total",
				Help: "Pending spawns dropped because their owner was discarded.",
			},
			[]string{"generator"},
		),
	}

	r.registry.MustRegister(r.nodes, r.duration, r.cancelled)
	return r
}

// Registry exposes the metrics for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveGraph counts every node under root by role.
func (r *Recorder) ObserveGraph(generator string, g *scene.Graph, root scene.NodeID) {
	for role, n := range scene.CountRoles(g, root) {
		r.nodes.WithLabelValues(generator, string(role)).Add(float64(n))
	}
}

// ObserveDuration records how long one generation took.
func (r *Recorder) ObserveDuration(generator string, d time.Duration) {
	r.duration.WithLabelValues(generator).Observe(d.Seconds())
}

// Since records the time elapsed from start.
func (r *Recorder) Since(generator string, start time.Time) {
	r.ObserveDuration(generator, time.Since(start))
}

// Cancelled counts spawns dropped by discards.
func (r *Recorder) Cancelled(generator string, n int) {
	if n <= 0 {
		return
	}
	r.cancelled.WithLabelValues(generator).Add(float64(n))
}

// WriteFile writes every metric to path in the text exposition format.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
