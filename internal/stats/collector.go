package stats

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

type collector struct {
	tracker *Tracker

	requestsDesc *prometheus.Desc
	pathDesc     *prometheus.Desc
	missingDesc  *prometheus.Desc
}

// NewCollector exposes the counters of t as prometheus metrics.
func NewCollector(t *Tracker) prometheus.Collector {
	return &collector{
		tracker: t,
		requestsDesc: prometheus.NewDesc(
			"simplehttp_requests_total",
			"Number of accepted requests",
			nil, nil),
		pathDesc: prometheus.NewDesc(
			"simplehttp_path_hits_total",
			"Number of requests per requested path",
			[]string{"path"}, nil),
		missingDesc: prometheus.NewDesc(
			"simplehttp_missing_path_hits_total",
			"Number of requests per missing filesystem path",
			[]string{"path"}, nil),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.requestsDesc
	ch <- c.pathDesc
	ch <- c.missingDesc
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	s := c.tracker.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.requestsDesc, prometheus.CounterValue, float64(s.TotalRequests))

	c.collectPaths(ch, c.pathDesc, s.PathHits)
	c.collectPaths(ch, c.missingDesc, s.MissingPathHits)
}

// collectPaths emits one counter per path. Paths are decoded request data
// and may hold invalid UTF-8, which is not a valid label value; such bytes
// are replaced and counts of paths that collapse to the same label are
// summed.
func (c *collector) collectPaths(ch chan<- prometheus.Metric, desc *prometheus.Desc, counts map[string]int64) {
	labels := make(map[string]int64, len(counts))
	for path, n := range counts {
		labels[strings.ToValidUTF8(path, "\uFFFD")] += n
	}

	for label, n := range labels {
		m, err := prometheus.NewConstMetric(desc, prometheus.CounterValue, float64(n), label)
		if err != nil {
			ch <- prometheus.NewInvalidMetric(desc, err)
			continue
		}
		ch <- m
	}
}
