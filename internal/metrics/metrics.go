// Package metrics holds Prometheus instruments for the parameter fetch
// path.  All collectors are registered with the global registry, so a
// host application that serves /metrics exposes them with no extra
// wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FetchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ssmsettings_fetch_total",
			Help: "Cumulative number of parameter fetch attempts.",
		})

	FetchErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ssmsettings_fetch_errors_total",
			Help: "Cumulative number of parameter fetch failures.",
		})

	ParametersLoadedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ssmsettings_parameters_loaded_total",
			Help: "Cumulative number of parameters returned by successful fetches.",
		})
)

func init() {
	prometheus.MustRegister(
		FetchTotal,
		FetchErrorsTotal,
		ParametersLoadedTotal,
	)
}
