package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pageobjects"

var (
	// ConditionWaitDuration observes how long the waits for a condition took
	ConditionWaitDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "condition_wait_duration_seconds",
		Help:      "Time spent waiting for a condition to become true",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"condition", "result"})

	// ElementResolutions counts the resolutions of element proxies by outcome
	ElementResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "element_resolutions_total",
		Help:      "Number of element resolutions by result (cached, found, refreshed, not_found)",
	}, []string{"result"})

	// StructuralFailures counts the failures reported by the structural self-tests
	StructuralFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "structural_failures_total",
		Help:      "Number of structural self-test failures by page",
	}, []string{"page"})
)

const (
	ResultSuccess = "success"
	ResultTimeout = "timeout"
	ResultError   = "error"

	ResolutionCached    = "cached"
	ResolutionFound     = "found"
	ResolutionRefreshed = "refreshed"
	ResolutionNotFound  = "not_found"
)

// Collectors returns all the collectors of this package
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ConditionWaitDuration,
		ElementResolutions,
		StructuralFailures,
	}
}

// Register registers all the collectors with the given registerer. Collectors
// which are already registered are ignored.
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}
