// Package metrics exposes the figures of a reconciliation run as Prometheus
// gauges, written in the node_exporter textfile-collector format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cobby8/allowance-manager-web/internal/models"
	"github.com/cobby8/allowance-manager-web/internal/reconcile"
)

// Recorder holds the gauges of one run in its own registry, so repeated
// runs in one process never collide on the default registry.
type Recorder struct {
	registry *prometheus.Registry

	people        *prometheus.GaugeVec
	orphans       prometheus.Gauge
	amounts       *prometheus.GaugeVec
	netMismatches prometheus.Gauge
	lastRun       prometheus.Gauge
}

// New creates a Recorder with every gauge registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		people: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "settle_people",
			Help: "Roster entries by match status in the last run.",
		}, []string{"status"}),
		orphans: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "settle_orphan_records",
			Help: "Activity rows no roster entry claimed in the last run.",
		}),
		amounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "settle_amount_total",
			Help: "Settled amounts in the last run by kind (gross, net, orphan_gross, orphan_net).",
		}, []string{"kind"}),
		netMismatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "settle_net_mismatch_records",
			Help: "Attributed rows whose net differs from gross minus taxes.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "settle_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run.",
		}),
	}
	r.registry.MustRegister(r.people, r.orphans, r.amounts, r.netMismatches, r.lastRun)
	return r
}

// Observe sets every gauge from a run summary.
func (r *Recorder) Observe(sum reconcile.Summary, at time.Time) {
	for _, status := range models.Statuses {
		r.people.WithLabelValues(status.String()).Set(float64(sum.ByStatus[status]))
	}
	r.orphans.Set(float64(sum.Orphans))
	r.amounts.WithLabelValues("gross").Set(sum.TotalGross.InexactFloat64())
	r.amounts.WithLabelValues("net").Set(sum.TotalNet.InexactFloat64())
	r.amounts.WithLabelValues("orphan_gross").Set(sum.OrphanGross.InexactFloat64())
	r.amounts.WithLabelValues("orphan_net").Set(sum.OrphanNet.InexactFloat64())
	r.netMismatches.Set(float64(sum.NetMismatches))
	r.lastRun.Set(float64(at.Unix()))
}

// Registry returns the registry holding the run gauges.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes the gauges to path atomically.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
