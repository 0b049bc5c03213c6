package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Quote submission outcomes.
const (
	OutcomeCreated           = "created"
	OutcomeReplaced          = "replaced"
	OutcomeRefusedUnapproved = "refused_unapproved"
	OutcomeRequestNotFound   = "request_not_found"
	OutcomeError             = "error"
)

// Advisor call results.
const (
	AdvisorSimulated = "simulated"
	AdvisorSuccess   = "success"
	AdvisorFallback  = "fallback"
)

// Marketplace records request and quote activity.
type Marketplace struct {
	submissions     *prometheus.CounterVec
	requestsCreated prometheus.Counter
	advisorCalls    *prometheus.CounterVec
}

// NewMarketplace registers the marketplace counters on reg. A nil registerer yields a no-op recorder.
func NewMarketplace(reg prometheus.Registerer) *Marketplace {
	if reg == nil {
		return &Marketplace{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_submissions_total",
		Help: "Quote submissions by outcome.",
	}, []string{"outcome"})
	requestsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quotation_requests_created_total",
		Help: "Quotation requests created by customers.",
	})
	advisorCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_calls_total",
		Help: "AI advisor calls by result.",
	}, []string{"result"})
	reg.MustRegister(submissions, requestsCreated, advisorCalls)
	return &Marketplace{
		submissions:     submissions,
		requestsCreated: requestsCreated,
		advisorCalls:    advisorCalls,
	}
}

// IncSubmission counts one quote submission with the given outcome.
func (m *Marketplace) IncSubmission(outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *Marketplace) IncRequestCreated() {
	if m == nil || m.requestsCreated == nil {
		return
	}
	m.requestsCreated.Inc()
}

func (m *Marketplace) IncAdvisorCall(result string) {
	if m == nil || m.advisorCalls == nil {
		return
	}
	m.advisorCalls.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
