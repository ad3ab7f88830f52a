package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onedrop-app/onedrop-api/internal/domain"
)

const namespace = "onedrop"

// Metrics holds the service counters. A nil *Metrics records nothing.
type Metrics struct {
	transitions    *prometheus.CounterVec
	enrollments    *prometheus.CounterVec
	countCache     *prometheus.CounterVec
	sweepFinalized prometheus.Counter
	sweepRuns      *prometheus.CounterVec
}

func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaign_transitions_total",
			Help:      "campaign lifecycle calls by transition and outcome",
		}, []string{"transition", "outcome"}),
		enrollments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrollments_total",
			Help:      "enroll calls by outcome",
		}, []string{"outcome"}),
		countCache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrollment_count_cache_total",
			Help:      "enrollment count cache lookups by result",
		}, []string{"result"}),
		sweepFinalized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_finalized_campaigns_total",
			Help:      "campaigns finalized by the expiry sweep",
		}),
		sweepRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "expiry sweep runs by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveTransition(t domain.Transition, err error) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(string(t), Outcome(err)).Inc()
}

func (m *Metrics) ObserveEnrollment(err error) {
	if m == nil {
		return
	}
	m.enrollments.WithLabelValues(Outcome(err)).Inc()
}

func (m *Metrics) ObserveCountCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.countCache.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSweep(finalized int, err error) {
	if m == nil {
		return
	}
	m.sweepFinalized.Add(float64(finalized))
	m.sweepRuns.WithLabelValues(Outcome(err)).Inc()
}

// Outcome maps an operation result to a bounded label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return "already_enrolled"
	case errors.Is(err, domain.ErrDuplicateActiveCampaign):
		return "duplicate_active_campaign"
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "error"
	}
}
