package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	EventAdmissionTotal        = "event_admission_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"route", "status_code"}),
		EventAdmissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: EventAdmissionTotal,
			Help: "Count of event admission attempts by result",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"route", "status_code"}),
	}
)

// PromCollectors lists every metric of the service for registration.
func PromCollectors() []prometheus.Collector {
	result := []prometheus.Collector{}
	for _, counter := range PromCounters {
		result = append(result, counter)
	}

	for _, histogram := range PromHistograms {
		result = append(result, histogram)
	}

	return result
}
