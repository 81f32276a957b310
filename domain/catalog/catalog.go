package catalog

import (
	"shopstat/internal/errors"
)

// ValueKind defines how a metric's observations are measured
type ValueKind string

const (
	KindNumeric     ValueKind = "numeric"
	KindCategorical ValueKind = "categorical"
)

// Metric declares a named aggregation over the warehouse. Queries is keyed
// by grouping ID; every query returns rows shaped as
// (entity_id, value, group_label), one row per underlying entity.
type Metric struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	ValueKind   ValueKind         `json:"value_kind"`
	Queries     map[string]string `json:"-"`
}

// Grouping declares a two-valued label space used to partition observations
type Grouping struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	GroupALabel string `json:"group_a_label"`
	GroupBLabel string `json:"group_b_label"`
}

// Catalog is the immutable registry of metrics and groupings. It is built
// once at startup and shared read-only across concurrent invocations.
type Catalog struct {
	metrics     map[string]Metric
	groupings   map[string]Grouping
	metricIDs   []string
	groupingIDs []string
}

// New builds a catalog from explicit definitions, preserving order for
// stable enumeration.
func New(metrics []Metric, groupings []Grouping) *Catalog {
	c := &Catalog{
		metrics:   make(map[string]Metric, len(metrics)),
		groupings: make(map[string]Grouping, len(groupings)),
	}
	for _, m := range metrics {
		c.metrics[m.ID] = m
		c.metricIDs = append(c.metricIDs, m.ID)
	}
	for _, g := range groupings {
		c.groupings[g.ID] = g
		c.groupingIDs = append(c.groupingIDs, g.ID)
	}
	return c
}

// Resolve returns the metric for the given ID
func (c *Catalog) Resolve(metricID string) (Metric, error) {
	m, ok := c.metrics[metricID]
	if !ok {
		return Metric{}, errors.UnknownMetric(metricID)
	}
	return m, nil
}

// ResolveGrouping returns the grouping for the given ID
func (c *Catalog) ResolveGrouping(groupingID string) (Grouping, error) {
	g, ok := c.groupings[groupingID]
	if !ok {
		return Grouping{}, errors.UnknownGrouping(groupingID)
	}
	return g, nil
}

// Metrics enumerates all metrics in declaration order
func (c *Catalog) Metrics() []Metric {
	out := make([]Metric, 0, len(c.metricIDs))
	for _, id := range c.metricIDs {
		out = append(out, c.metrics[id])
	}
	return out
}

// Groupings enumerates all groupings in declaration order
func (c *Catalog) Groupings() []Grouping {
	out := make([]Grouping, 0, len(c.groupingIDs))
	for _, id := range c.groupingIDs {
		out = append(out, c.groupings[id])
	}
	return out
}
