// Package metrics exports tree statistics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kerns-huang/bptree"
)

// Source is the part of a tree the collector reads from. Every
// *bptree.Tree satisfies it whatever its key and value types.
type Source interface {
	Name() string
	Size() int
	Height() int
	Stats() bptree.Stats
}

var (
	descSize = prometheus.NewDesc(
		"bptree_keys",
		"Number of distinct keys stored in the tree",
		[]string{"tree"}, nil)
	descHeight = prometheus.NewDesc(
		"bptree_height",
		"Number of levels from the root to the leaves",
		[]string{"tree"}, nil)
	descEvents = prometheus.NewDesc(
		"bptree_structural_events_total",
		"Structural changes made while inserting and deleting",
		[]string{"tree", "event"}, nil)
)

// Collector implements prometheus.Collector over a set of trees. The trees
// are not safe for concurrent use, so callers must only register a
// collector for trees whose mutations are serialized with scrapes.
type Collector struct {
	sources []Source
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector exporting the given trees, labelled by
// their names.
func NewCollector(sources ...Source) *Collector {
	return &Collector{sources: sources}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descSize
	ch <- descHeight
	ch <- descEvents
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, src := range c.sources {
		name := src.Name()
		ch <- prometheus.MustNewConstMetric(descSize, prometheus.GaugeValue, float64(src.Size()), name)
		ch <- prometheus.MustNewConstMetric(descHeight, prometheus.GaugeValue, float64(src.Height()), name)

		stats := src.Stats()
		for _, ev := range []struct {
			event string
			value uint64
		}{
			{"split", stats.Splits},
			{"merge", stats.Merges},
			{"borrow", stats.Borrows},
			{"root_growth", stats.RootGrowths},
			{"root_collapse", stats.RootCollapses},
		} {
			ch <- prometheus.MustNewConstMetric(descEvents, prometheus.CounterValue, float64(ev.value), name, ev.event)
		}
	}
}
