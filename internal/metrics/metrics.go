// Package metrics records statement processing metrics with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of processing one statement
const (
	OutcomeOK          = "ok"
	OutcomeUnsupported = "unsupported"
	OutcomeEmpty       = "empty"
)

// Recorder holds the statement metrics. A nil *Recorder records nothing.
type Recorder struct {
	statements   *prometheus.CounterVec
	transactions *prometheus.CounterVec
	filtered     *prometheus.CounterVec
	unmapped     *prometheus.CounterVec
	deductible   *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		statements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statements_processed_total",
				Help: "Total number of statements processed",
			},
			[]string{"bank", "outcome"},
		),
		transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_transactions_parsed_total",
				Help: "Total number of raw transactions extracted from statements",
			},
			[]string{"bank", "parser"},
		),
		filtered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_transactions_filtered_total",
				Help: "Total number of balance rows removed before categorisation",
			},
			[]string{"bank"},
		),
		unmapped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_transactions_unmapped_total",
				Help: "Total number of transactions no merchant rule matched",
			},
			[]string{"bank"},
		),
		deductible: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_transactions_deductible_total",
				Help: "Total number of transactions categorised as deductible",
			},
			[]string{"bank"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_parser_fallbacks_total",
				Help: "Total number of times a parser produced nothing and the next parser was tried",
			},
			[]string{"bank", "parser"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "statement_processing_duration_milliseconds",
				Help:    "Statement processing duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 12),
			},
			[]string{"bank"},
		),
	}
}

func (r *Recorder) Statement(bank, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.statements.WithLabelValues(bank, outcome).Inc()
	r.duration.WithLabelValues(bank).Observe(float64(d) / float64(time.Millisecond))
}

func (r *Recorder) Parsed(bank, parser string, n int) {
	if r == nil {
		return
	}
	r.transactions.WithLabelValues(bank, parser).Add(float64(n))
}

func (r *Recorder) Fallback(bank, parser string) {
	if r == nil {
		return
	}
	r.fallbacks.WithLabelValues(bank, parser).Inc()
}

func (r *Recorder) Filtered(bank string, n int) {
	if r == nil {
		return
	}
	r.filtered.WithLabelValues(bank).Add(float64(n))
}

func (r *Recorder) Categorised(bank string, unmapped, deductible int) {
	if r == nil {
		return
	}
	r.unmapped.WithLabelValues(bank).Add(float64(unmapped))
	r.deductible.WithLabelValues(bank).Add(float64(deductible))
}
