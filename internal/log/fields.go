// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID      = "request_id"
	FieldConversationID = "conversation_id"
	FieldSessionID      = "session_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Dispatch fields
	FieldIntent     = "intent"
	FieldState      = "state"
	FieldGeneration = "generation"
	FieldFrontEnd   = "front_end"
	FieldOutcome    = "outcome"
)
