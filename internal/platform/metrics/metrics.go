// Package metrics exposes Prometheus counters for guest-facing operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rsvp"

// Outcome labels.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeOK       = "ok"
)

// Recorder records RSVP submissions, guest list loads and spreadsheet exports.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	submissions *prometheus.CounterVec
	loads       *prometheus.CounterVec
	exports     prometheus.Counter
	exportRows  prometheus.Histogram
	panics      prometheus.Counter
}

// New registers the RSVP collectors on reg. Pass prometheus.DefaultRegisterer
// to expose them on /-/metrics.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "RSVP form submissions by outcome.",
		}, []string{"outcome"}),
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guest_list_loads_total",
			Help:      "Guest list reads by outcome.",
		}, []string{"outcome"}),
		exports: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Spreadsheet exports produced.",
		}),
		exportRows: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_rows",
			Help:      "Guest rows per spreadsheet export.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		panics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_panics_total",
			Help:      "Handler panics recovered by the HTTP server.",
		}),
	}
}

// Submission counts one submission attempt.
func (r *Recorder) Submission(outcome string) {
	if r == nil {
		return
	}

	r.submissions.WithLabelValues(outcome).Inc()
}

// GuestListLoad counts one guest list read.
func (r *Recorder) GuestListLoad(outcome string) {
	if r == nil {
		return
	}

	r.loads.WithLabelValues(outcome).Inc()
}

// Export counts one spreadsheet export of n rows.
func (r *Recorder) Export(n int) {
	if r == nil {
		return
	}

	r.exports.Inc()
	r.exportRows.Observe(float64(n))
}

// Panic counts one recovered handler panic. Its signature fits
// middleware.PanicHook.
func (r *Recorder) Panic(_ any, _ []byte) {
	if r == nil {
		return
	}

	r.panics.Inc()
}
