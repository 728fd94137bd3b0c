// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Referral outcomes recorded by ReferralOutcome
const (
	OutcomeApplied      = "applied"
	OutcomeAlreadyUsed  = "already_applied"
	OutcomeSelfReferral = "self_referral"
	OutcomeInvalidCode  = "invalid_code"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
	defaultNamespace    = "referrals"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	referrals *prometheus.CounterVec
	rewarded  prometheus.Counter
}

// New registers all collectors under namespace.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed.",
	}, []string{"route", "method", "status"})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	referrals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_total",
		Help:      "Referral code applications by outcome.",
	}, []string{"outcome"})
	rewarded := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coins_rewarded_total",
		Help:      "Coins credited by successful referral applications, both sides.",
	})
	registry.MustRegister(requests, durations, referrals, rewarded)
	return &Metrics{
		registry:  registry,
		requests:  requests,
		durations: durations,
		referrals: referrals,
		rewarded:  rewarded,
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.durations.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ReferralOutcome counts one application attempt.
func (m *Metrics) ReferralOutcome(outcome string) {
	if m == nil {
		return
	}
	m.referrals.WithLabelValues(outcome).Inc()
}

// Rewarded adds coins credited by one application.
func (m *Metrics) Rewarded(coins int64) {
	if m == nil || coins <= 0 {
		return
	}
	m.rewarded.Add(float64(coins))
}
