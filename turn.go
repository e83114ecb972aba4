// SPDX-License-Identifier: MIT

package voxhook

// turn is the capability interface shared by the two front-end variants.
// The façade constructs the right variant exactly once per request after
// format detection; nothing else switches on the front end for intake.
type turn interface {
	// intentKey is the dispatch key: the matched intent identifier on the
	// Actions SDK, the action (or intent display name) on Dialogflow.
	intentKey() string
	// query is the raw user utterance, empty for non-speech turns.
	query() string
	// arguments are the normalized typed arguments of the turn.
	arguments() []Argument
	// parameters are the NLU slot values (Dialogflow only).
	parameters() map[string]any
	// inboundContexts lists the active contexts (Dialogflow only).
	inboundContexts() []Context
	// statePayload is the raw JSON-encoded {state, data} blob carried by the
	// front end: the conversation token, or the reserved context parameter.
	statePayload() string
	// meta carries identity and surface information.
	meta() turnMeta
}

// turnMeta is the identity/surface information of a turn.
type turnMeta struct {
	ConversationID string
	Session        string // Dialogflow generation-2 session path
	Locale         string
	User           User
	Location       *Location
	Surface        Surface
	Sandbox        bool
}
