package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "whois"

var (
	// Verdicts counts interpreted responses by verdict and deciding tier.
	Verdicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verdicts_total",
		Help:      "Interpreted WHOIS responses by verdict and classifier tier.",
	}, []string{"verdict", "tier"})

	// LookupDuration observes port-43 lookups by outcome.
	LookupDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "lookup_duration_seconds",
		Help:      "Duration of WHOIS server lookups.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	// CacheRequests counts record cache reads by result (hit, miss, error).
	CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Record cache reads by result.",
	}, []string{"result"})

	// InFlight is the number of lookups currently holding a concurrency slot.
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "lookups_in_flight",
		Help:      "Lookups currently being served.",
	})
)

func init() {
	prometheus.MustRegister(Verdicts, LookupDuration, CacheRequests, InFlight)
}

// ObserveVerdict counts one interpreted response.
func ObserveVerdict(verdict, tier string) {
	Verdicts.WithLabelValues(verdict, tier).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
