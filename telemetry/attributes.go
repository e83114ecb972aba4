// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the webhook pipeline.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"

	// Conversation attributes
	ConversationIDKey = "conversation.id"
	IntentKey         = "conversation.intent"
	StateKey          = "conversation.state"
	GenerationKey     = "conversation.generation"
	FrontEndKey       = "conversation.front_end"
	OutcomeKey        = "conversation.outcome"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// TurnAttributes creates the span attributes of one dispatched turn.
func TurnAttributes(conversationID, intent, state, generation, frontEnd string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(IntentKey, intent),
		attribute.String(GenerationKey, generation),
		attribute.String(FrontEndKey, frontEnd),
	}
	if conversationID != "" {
		attrs = append(attrs, attribute.String(ConversationIDKey, conversationID))
	}
	if state != "" {
		attrs = append(attrs, attribute.String(StateKey, state))
	}
	return attrs
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(_ error, errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
