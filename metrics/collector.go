// Package metrics exports threshold breaker snapshots to Prometheus.
//
//	c := metrics.NewCollector()
//	c.Add(breaker)
//	prometheus.MustRegister(c)
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/1mb-dev/tripwire"
)

const (
	namespace = "tripwire"
	labelName = "name"
)

// Collector implements prometheus.Collector for a set of breakers.
// Values are read from Metrics() on every scrape.
type Collector struct {
	mu       sync.RWMutex
	breakers map[string]*tripwire.ThresholdBreaker

	stateDesc             *prometheus.Desc
	violationsDesc        *prometheus.Desc
	consecutiveClearsDesc *prometheus.Desc
	observationsDesc      *prometheus.Desc
	violationsTotalDesc   *prometheus.Desc
	tripsDesc             *prometheus.Desc
	clearsDesc            *prometheus.Desc
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	labels := []string{labelName}
	return &Collector{
		breakers: make(map[string]*tripwire.ThresholdBreaker),

		stateDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "state"),
			"Current breaker state (0=closed, 1=open)",
			labels, nil,
		),
		violationsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "violations"),
			"Violations currently counted towards the threshold",
			labels, nil,
		),
		consecutiveClearsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "consecutive_clears"),
			"Consecutive non-violations observed while open",
			labels, nil,
		),
		observationsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "observations_total"),
			"Total classified observations",
			labels, nil,
		),
		violationsTotalDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "violations_total"),
			"Total violating observations",
			labels, nil,
		),
		tripsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "trips_total"),
			"Total closed to open transitions",
			labels, nil,
		),
		clearsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "clears_total"),
			"Total open to closed transitions",
			labels, nil,
		),
	}
}

// Add registers b under its name, replacing any breaker with the same name.
func (c *Collector) Add(b *tripwire.ThresholdBreaker) {
	if b == nil {
		return
	}
	c.mu.Lock()
	c.breakers[b.Name()] = b
	c.mu.Unlock()
}

// Remove stops exporting the breaker called name.
func (c *Collector) Remove(name string) {
	c.mu.Lock()
	delete(c.breakers, name)
	c.mu.Unlock()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.stateDesc
	ch <- c.violationsDesc
	ch <- c.consecutiveClearsDesc
	ch <- c.observationsDesc
	ch <- c.violationsTotalDesc
	ch <- c.tripsDesc
	ch <- c.clearsDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, b := range c.breakers {
		m := b.Metrics()

		ch <- prometheus.MustNewConstMetric(c.stateDesc, prometheus.GaugeValue, float64(m.State), name)
		ch <- prometheus.MustNewConstMetric(c.violationsDesc, prometheus.GaugeValue, float64(m.Violations), name)
		ch <- prometheus.MustNewConstMetric(c.consecutiveClearsDesc, prometheus.GaugeValue, float64(m.Counts.ConsecutiveClears), name)
		ch <- prometheus.MustNewConstMetric(c.observationsDesc, prometheus.CounterValue, float64(m.Counts.Observations), name)
		ch <- prometheus.MustNewConstMetric(c.violationsTotalDesc, prometheus.CounterValue, float64(m.Counts.TotalViolations), name)
		ch <- prometheus.MustNewConstMetric(c.tripsDesc, prometheus.CounterValue, float64(m.Counts.Trips), name)
		ch <- prometheus.MustNewConstMetric(c.clearsDesc, prometheus.CounterValue, float64(m.Counts.Clears), name)
	}
}
