// SPDX-License-Identifier: MIT

// Package metrics defines the Prometheus instruments for the webhook
// pipeline. All metrics are registered on the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TurnsTotal counts processed conversation turns by wire format and
	// outcome ("handled", "error", "rejected", "duplicate").
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voxhook_turns_total",
		Help: "Conversation turns processed, by generation, front end and outcome.",
	}, []string{"generation", "front_end", "outcome"})

	// DispatchDuration observes end-to-end handler dispatch latency.
	DispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "voxhook_dispatch_duration_seconds",
		Help:    "Handler dispatch duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"generation", "front_end"})

	// HandlerErrors counts errors surfaced by handlers or dispatch, by
	// classification ("no_handler", "cycle", "dangling", "empty", "handler").
	HandlerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voxhook_handler_errors_total",
		Help: "Dispatch and handler errors by class.",
	}, []string{"class"})

	// MalformedRequests counts rejected inbound bodies.
	MalformedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxhook_malformed_requests_total",
		Help: "Inbound requests rejected as malformed.",
	})

	// VerificationFailures counts requests failing header verification.
	VerificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxhook_verification_failures_total",
		Help: "Inbound requests failing webhook verification.",
	})

	// StateResets counts turns whose round-tripped dialog state was
	// malformed and silently reset.
	StateResets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxhook_state_resets_total",
		Help: "Turns whose persisted dialog state was unreadable and reset.",
	})
)
