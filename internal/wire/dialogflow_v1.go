// SPDX-License-Identifier: MIT

package wire

import "encoding/json"

// DFRequestV1 is a generation-1 Dialogflow webhook request (result envelope).
type DFRequestV1 struct {
	ID              string           `json:"id,omitempty"`
	Timestamp       string           `json:"timestamp,omitempty"`
	Lang            string           `json:"lang,omitempty"`
	SessionID       string           `json:"sessionId,omitempty"`
	Result          *DFResultV1      `json:"result"`
	OriginalRequest *OriginalRequest `json:"originalRequest,omitempty"`
}

// DFResultV1 carries the NLU match for the turn.
type DFResultV1 struct {
	Source           string         `json:"source,omitempty"`
	ResolvedQuery    string         `json:"resolvedQuery,omitempty"`
	Action           string         `json:"action,omitempty"`
	ActionIncomplete bool           `json:"actionIncomplete,omitempty"`
	Parameters       map[string]any `json:"parameters,omitempty"`
	Contexts         []DFContextV1  `json:"contexts,omitempty"`
	Metadata         *DFMetadataV1  `json:"metadata,omitempty"`
	Fulfillment      *DFSpeechV1    `json:"fulfillment,omitempty"`
	Score            float64        `json:"score,omitempty"`
}

// DFMetadataV1 names the matched intent.
type DFMetadataV1 struct {
	IntentID   string `json:"intentId,omitempty"`
	IntentName string `json:"intentName,omitempty"`
}

// DFSpeechV1 is the agent-configured fulfillment text.
type DFSpeechV1 struct {
	Speech string `json:"speech,omitempty"`
}

// DFContextV1 is an active context on a generation-1 turn. Lifespan is
// emitted even when zero so explicit deletions reach the platform.
type DFContextV1 struct {
	Name       string         `json:"name"`
	Lifespan   int            `json:"lifespan"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// OriginalRequest embeds the Actions-SDK payload inside a Dialogflow request.
// Version is untyped on the wire: some callers send 2, others "2".
type OriginalRequest struct {
	Source  string          `json:"source,omitempty"`
	Version any             `json:"version,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// VersionIs2 reports whether the embedded version marker names generation 2.
func (o *OriginalRequest) VersionIs2() bool {
	if o == nil {
		return false
	}
	switch v := o.Version.(type) {
	case string:
		return v == "2"
	case float64:
		return v == 2
	case int:
		return v == 2
	case json.Number:
		return v.String() == "2"
	}
	return false
}

// AppPayload returns the embedded Actions-SDK body, whichever field carried it.
func (o *OriginalRequest) AppPayload() json.RawMessage {
	if o == nil {
		return nil
	}
	if len(o.Data) > 0 {
		return o.Data
	}
	return o.Payload
}

// DFResponseV1 is a generation-1 Dialogflow webhook response.
type DFResponseV1 struct {
	Speech      string        `json:"speech"`
	DisplayText string        `json:"displayText,omitempty"`
	Data        *DFDataV1     `json:"data,omitempty"`
	ContextOut  []DFContextV1 `json:"contextOut"`
	Source      string        `json:"source,omitempty"`
}

// DFDataV1 wraps the platform-specific payload under the "google" key.
type DFDataV1 struct {
	Google *GooglePayloadV1 `json:"google,omitempty"`
}

// GooglePayloadV1 is the Assistant payload of a generation-1 Dialogflow
// response. The three leading fields are always emitted, empty or not.
type GooglePayloadV1 struct {
	ExpectUserResponse bool             `json:"expect_user_response"`
	IsSSML             bool             `json:"is_ssml"`
	NoInputPrompts     []SimplePromptV1 `json:"no_input_prompts"`
	RichResponse       json.RawMessage  `json:"rich_response,omitempty"`
	SystemIntent       *SystemIntentV1  `json:"system_intent,omitempty"`
}

// SystemIntentV1 requests structured input from the platform.
type SystemIntentV1 struct {
	Intent string          `json:"intent"`
	Spec   json.RawMessage `json:"spec,omitempty"`
}
