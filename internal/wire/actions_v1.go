// SPDX-License-Identifier: MIT

package wire

import "encoding/json"

// AppRequestV1 is the legacy generation-1 Actions-SDK request body. The same
// shape appears embedded as the originalRequest data of a generation-1
// Dialogflow request.
type AppRequestV1 struct {
	User         *UserV1         `json:"user,omitempty"`
	Device       *DeviceV1       `json:"device,omitempty"`
	Conversation *ConversationV1 `json:"conversation,omitempty"`
	Inputs       []InputV1       `json:"inputs,omitempty"`
}

// UserV1 describes the calling user.
type UserV1 struct {
	UserID      string     `json:"user_id,omitempty"`
	AccessToken string     `json:"access_token,omitempty"`
	Profile     *ProfileV1 `json:"profile,omitempty"`
}

// ProfileV1 carries user profile fields granted via the NAME permission.
type ProfileV1 struct {
	DisplayName string `json:"display_name,omitempty"`
	GivenName   string `json:"given_name,omitempty"`
	FamilyName  string `json:"family_name,omitempty"`
}

// DeviceV1 describes the calling device.
type DeviceV1 struct {
	Location *LocationV1 `json:"location,omitempty"`
}

// LocationV1 is populated after a granted location permission.
type LocationV1 struct {
	Coordinates      *CoordinatesV1 `json:"coordinates,omitempty"`
	FormattedAddress string         `json:"formatted_address,omitempty"`
	ZipCode          string         `json:"zip_code,omitempty"`
	City             string         `json:"city,omitempty"`
}

// CoordinatesV1 is a lat/lng pair.
type CoordinatesV1 struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// ConversationV1 carries the conversation identity and round-tripped token.
type ConversationV1 struct {
	ConversationID    string `json:"conversation_id,omitempty"`
	Type              int    `json:"type,omitempty"`
	ConversationToken string `json:"conversation_token,omitempty"`
}

// InputV1 is one turn input.
type InputV1 struct {
	Intent    string       `json:"intent,omitempty"`
	RawInputs []RawInputV1 `json:"raw_inputs,omitempty"`
	Arguments []ArgumentV1 `json:"arguments,omitempty"`
}

// RawInputV1 is the user utterance as captured by the platform.
type RawInputV1 struct {
	InputType int    `json:"input_type,omitempty"`
	Query     string `json:"query,omitempty"`
}

// ArgumentV1 is a typed argument value supplied by a built-in system intent.
type ArgumentV1 struct {
	Name          string      `json:"name,omitempty"`
	RawText       string      `json:"raw_text,omitempty"`
	TextValue     string      `json:"text_value,omitempty"`
	BoolValue     *bool       `json:"bool_value,omitempty"`
	IntValue      string      `json:"int_value,omitempty"`
	DatetimeValue *DateTimeV2 `json:"datetime_value,omitempty"`
	Location      *LocationV1 `json:"location_value,omitempty"`
}

// AppResponseV1 is the legacy generation-1 Actions-SDK response body.
type AppResponseV1 struct {
	ConversationToken  string            `json:"conversation_token,omitempty"`
	ExpectUserResponse bool              `json:"expect_user_response"`
	ExpectedInputs     []ExpectedInputV1 `json:"expected_inputs,omitempty"`
	FinalResponse      *FinalResponseV1  `json:"final_response,omitempty"`
}

// ExpectedInputV1 prompts the user and declares the intents that may follow.
type ExpectedInputV1 struct {
	InputPrompt     *InputPromptV1     `json:"input_prompt,omitempty"`
	PossibleIntents []ExpectedIntentV1 `json:"possible_intents,omitempty"`
}

// InputPromptV1 carries the initial prompts and the no-input reprompts.
// Generation 1 has no rich item sequence; only simple prompts exist.
type InputPromptV1 struct {
	InitialPrompts []SimplePromptV1 `json:"initial_prompts,omitempty"`
	NoInputPrompts []SimplePromptV1 `json:"no_input_prompts,omitempty"`
}

// SimplePromptV1 is a bare text-or-SSML prompt.
type SimplePromptV1 struct {
	TextToSpeech string `json:"text_to_speech,omitempty"`
	SSML         string `json:"ssml,omitempty"`
}

// ExpectedIntentV1 names an intent the platform should match next, optionally
// with a system-intent value spec.
type ExpectedIntentV1 struct {
	Intent         string          `json:"intent"`
	InputValueSpec json.RawMessage `json:"input_value_spec,omitempty"`
}

// FinalResponseV1 terminates the conversation with a single spoken response.
type FinalResponseV1 struct {
	SpeechResponse *SimplePromptV1 `json:"speech_response,omitempty"`
}

// Generation-1 system intent identifiers.
const (
	IntentPermissionV1 = "assistant.intent.action.PERMISSION"
	IntentSignInV1     = "assistant.intent.action.SIGN_IN"
	IntentOptionV1     = "assistant.intent.action.OPTION"
	IntentConfirmV1    = "assistant.intent.action.CONFIRMATION"
	IntentDateTimeV1   = "assistant.intent.action.DATETIME"
)
