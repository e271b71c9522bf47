// Package metrics holds the prometheus instrumentation for the offer
// pipeline and the history endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	RecordsSeen     prometheus.Counter
	RecordsDropped  prometheus.Counter
	PipelineRuns    prometheus.Counter
	PipelineSec     prometheus.Histogram
	HistoryRequests prometheus.Counter
	HistoryMisses   prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	recordsSeen := prometheus.NewCounter(prometheus.CounterOpts{Name: "cpuscout_records_seen_total"})
	recordsDropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "cpuscout_records_dropped_total"})
	pipelineRuns := prometheus.NewCounter(prometheus.CounterOpts{Name: "cpuscout_pipeline_runs_total"})
	pipelineSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cpuscout_pipeline_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	historyRequests := prometheus.NewCounter(prometheus.CounterOpts{Name: "cpuscout_history_requests_total"})
	historyMisses := prometheus.NewCounter(prometheus.CounterOpts{Name: "cpuscout_history_misses_total"})

	r.MustRegister(recordsSeen, recordsDropped, pipelineRuns, pipelineSec, historyRequests, historyMisses)

	return &Registry{
		reg:             r,
		RecordsSeen:     recordsSeen,
		RecordsDropped:  recordsDropped,
		PipelineRuns:    pipelineRuns,
		PipelineSec:     pipelineSec,
		HistoryRequests: historyRequests,
		HistoryMisses:   historyMisses,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
