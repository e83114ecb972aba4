// SPDX-License-Identifier: MIT

package wire

import (
	"encoding/json"
	"strings"
)

// DFRequestV2 is a generation-2 Dialogflow webhook request (queryResult
// envelope).
type DFRequestV2 struct {
	ResponseID                  string           `json:"responseId,omitempty"`
	Session                     string           `json:"session,omitempty"`
	QueryResult                 *DFQueryResultV2 `json:"queryResult"`
	OriginalDetectIntentRequest *OriginalRequest `json:"originalDetectIntentRequest,omitempty"`
}

// DFQueryResultV2 carries the NLU match for the turn.
type DFQueryResultV2 struct {
	QueryText                string         `json:"queryText,omitempty"`
	LanguageCode             string         `json:"languageCode,omitempty"`
	Action                   string         `json:"action,omitempty"`
	Parameters               map[string]any `json:"parameters,omitempty"`
	AllRequiredParamsPresent bool           `json:"allRequiredParamsPresent,omitempty"`
	FulfillmentText          string         `json:"fulfillmentText,omitempty"`
	OutputContexts           []DFContextV2  `json:"outputContexts,omitempty"`
	Intent                   *DFIntentV2    `json:"intent,omitempty"`
}

// DFIntentV2 names the matched intent.
type DFIntentV2 struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// DFContextV2 is an active context on a generation-2 turn. Context names on
// the wire are full session paths; LifespanCount is emitted even when zero so
// explicit deletions reach the platform.
type DFContextV2 struct {
	Name          string         `json:"name"`
	LifespanCount int            `json:"lifespanCount"`
	Parameters    map[string]any `json:"parameters,omitempty"`
}

// ShortName strips the session path prefix from a context name.
func (c DFContextV2) ShortName() string {
	if idx := strings.LastIndex(c.Name, "/contexts/"); idx >= 0 {
		return c.Name[idx+len("/contexts/"):]
	}
	return c.Name
}

// ContextPath joins a session path and a short context name into the full
// wire name.
func ContextPath(session, name string) string {
	if session == "" {
		return name
	}
	return session + "/contexts/" + name
}

// DFResponseV2 is a generation-2 Dialogflow webhook response.
type DFResponseV2 struct {
	FulfillmentText string        `json:"fulfillmentText,omitempty"`
	Payload         *DFPayloadV2  `json:"payload,omitempty"`
	OutputContexts  []DFContextV2 `json:"outputContexts"`
	Source          string        `json:"source,omitempty"`
}

// DFPayloadV2 wraps the platform-specific payload under the "google" key.
type DFPayloadV2 struct {
	Google *GooglePayloadV2 `json:"google,omitempty"`
}

// GooglePayloadV2 is the Assistant payload of a generation-2 Dialogflow
// response.
type GooglePayloadV2 struct {
	ExpectUserResponse bool             `json:"expectUserResponse"`
	RichResponse       json.RawMessage  `json:"richResponse,omitempty"`
	SystemIntent       *SystemIntentV2  `json:"systemIntent,omitempty"`
	NoInputPrompts     []SimplePromptV2 `json:"noInputPrompts,omitempty"`
	UserStorage        string           `json:"userStorage,omitempty"`
}

// SystemIntentV2 requests structured input from the platform.
type SystemIntentV2 struct {
	Intent string          `json:"intent"`
	Data   json.RawMessage `json:"data,omitempty"`
}
