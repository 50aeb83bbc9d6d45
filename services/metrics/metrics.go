package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LeadMetrics exposes counters/histograms for the lead form and the send-form endpoint.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	forwardLatency   *prometheus.HistogramVec
	receivedTotal    *prometheus.CounterVec
	rateLimitedTotal *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landing",
			Subsystem: "lead_form",
			Name:      "submissions_total",
			Help:      "Lead form submit attempts by outcome",
		}, []string{"outcome"}),
		forwardLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "landing",
			Subsystem: "lead_form",
			Name:      "forward_latency_seconds",
			Help:      "Latency of the outbound lead POST",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		receivedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landing",
			Subsystem: "send_form",
			Name:      "leads_total",
			Help:      "Leads received by the send-form endpoint by delivery status",
		}, []string{"status", "provider"}),
		rateLimitedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landing",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by a rate limiter",
		}, []string{"limiter"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.forwardLatency, m.receivedTotal, m.rateLimitedTotal)
	return m
}

func (m *LeadMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *LeadMetrics) ObserveForward(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.forwardLatency.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *LeadMetrics) ObserveReceived(status, provider string) {
	if m == nil {
		return
	}
	if provider == "" {
		provider = "none"
	}
	m.receivedTotal.WithLabelValues(status, provider).Inc()
}

func (m *LeadMetrics) ObserveRateLimited(limiter string) {
	if m == nil {
		return
	}
	m.rateLimitedTotal.WithLabelValues(limiter).Inc()
}
