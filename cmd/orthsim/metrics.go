package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aglyzov/go-orthtree/orthtree"
)

type metrics struct {
	registry *prometheus.Registry

	updates    prometheus.Counter
	spawns     prometheus.Counter
	removals   prometheus.Counter
	queries    prometheus.Counter
	hits       prometheus.Counter
	mismatches prometheus.Counter

	items       prometheus.Gauge
	nodes       prometheus.Gauge
	nodeSlots   prometheus.Gauge
	recordSlots prometheus.Gauge
	depth       prometheus.Gauge

	tickSeconds prometheus.Histogram
}

func newMetrics() *metrics {
	var (
		registry = prometheus.NewRegistry()
		factory  = promauto.With(registry)
	)

	return &metrics{
		registry: registry,
		updates: factory.NewCounter(prometheus.CounterOpts{
			Name: "orthsim_updates_total",
			Help: "Number of entity position updates.",
		}),
		spawns: factory.NewCounter(prometheus.CounterOpts{
			Name: "orthsim_spawns_total",
			Help: "Number of entities inserted.",
		}),
		removals: factory.NewCounter(prometheus.CounterOpts{
			Name: "orthsim_removals_total",
			Help: "Number of entities removed.",
		}),
		queries: factory.NewCounter(prometheus.CounterOpts{
			Name: "orthsim_queries_total",
			Help: "Number of range queries.",
		}),
		hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "orthsim_query_hits_total",
			Help: "Number of entities returned by range queries.",
		}),
		mismatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "orthsim_verify_mismatches_total",
			Help: "Number of range queries disagreeing with a brute-force scan.",
		}),
		items: factory.NewGauge(prometheus.GaugeOpts{
			Name: "orthsim_tree_items",
			Help: "Number of indexed entities.",
		}),
		nodes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "orthsim_tree_nodes",
			Help: "Number of live tree nodes.",
		}),
		nodeSlots: factory.NewGauge(prometheus.GaugeOpts{
			Name: "orthsim_tree_node_slots",
			Help: "Number of node slots ever allocated.",
		}),
		recordSlots: factory.NewGauge(prometheus.GaugeOpts{
			Name: "orthsim_tree_record_slots",
			Help: "Number of record slots ever allocated.",
		}),
		depth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "orthsim_tree_depth",
			Help: "Depth of the deepest live node.",
		}),
		tickSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "orthsim_tick_duration_seconds",
			Help:    "Duration of a simulation tick.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
	}
}

func (m *metrics) observeTree(s orthtree.Stats) {
	m.items.Set(float64(s.Items))
	m.nodes.Set(float64(s.Nodes))
	m.nodeSlots.Set(float64(s.NodeSlots))
	m.recordSlots.Set(float64(s.RecordSlots))
	m.depth.Set(float64(s.MaxDepth))
}
