// Package metrics provides Prometheus counters for project mutations.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics owns a private registry so several projects, or tests, never
// collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	mutationsTotal *prometheus.CounterVec
	wordsRecorded  prometheus.Counter
	snapshotsTotal *prometheus.CounterVec
	savesTotal     *prometheus.CounterVec
	saveDuration   prometheus.Histogram
	draftWords     prometheus.Gauge
	treeNodes      *prometheus.GaugeVec
}

// New registers the counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		mutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manuscript_mutations_total",
				Help: "Total tree and entity mutations by operation and outcome",
			},
			[]string{"op", "result"},
		),
		wordsRecorded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "manuscript_words_recorded_total",
				Help: "Words added to the writing history",
			},
		),
		snapshotsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manuscript_snapshots_total",
				Help: "Snapshots taken by kind",
			},
			[]string{"kind"},
		),
		savesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manuscript_saves_total",
				Help: "Project saves by status",
			},
			[]string{"status"},
		),
		saveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "manuscript_save_duration_seconds",
				Help:    "Project save duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		draftWords: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "manuscript_draft_words",
				Help: "Current draft word count",
			},
		),
		treeNodes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "manuscript_tree_nodes",
				Help: "Folders, documents and media items per hierarchy",
			},
			[]string{"hierarchy"},
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordMutation counts one mutation; applied is false for no-ops.
func (m *Metrics) RecordMutation(op string, applied bool) {
	result := "applied"
	if !applied {
		result = "noop"
	}
	m.mutationsTotal.WithLabelValues(op, result).Inc()
}

// RecordWords counts words added to the history.
func (m *Metrics) RecordWords(n int) {
	if n > 0 {
		m.wordsRecorded.Add(float64(n))
	}
}

// RecordSnapshot counts a snapshot of the given kind.
func (m *Metrics) RecordSnapshot(kind string) {
	m.snapshotsTotal.WithLabelValues(kind).Inc()
}

// RecordSave records a save attempt.
func (m *Metrics) RecordSave(duration time.Duration, err error) {
	m.saveDuration.Observe(duration.Seconds())
	status := "success"
	if err != nil {
		status = "error"
	}
	m.savesTotal.WithLabelValues(status).Inc()
}

// SetDraftWords sets the current draft word count.
func (m *Metrics) SetDraftWords(n int) {
	m.draftWords.Set(float64(n))
}

// SetTreeNodes sets the node count of one hierarchy.
func (m *Metrics) SetTreeNodes(hierarchy string, n int) {
	m.treeNodes.WithLabelValues(hierarchy).Set(float64(n))
}

// Snapshot flattens every counter and gauge into "name{k=v,...}" keys.
// Histograms report their sample count under name_count.
func (m *Metrics) Snapshot() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			var labels []string
			for _, lp := range metric.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			key := mf.GetName()
			if len(labels) > 0 {
				sort.Strings(labels)
				key += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case metric.GetCounter() != nil:
				out[key] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				out[key] = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				out[mf.GetName()+"_count"] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}
