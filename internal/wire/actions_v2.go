// SPDX-License-Identifier: MIT

package wire

import "encoding/json"

// AppRequestV2 is the generation-2 Actions-SDK request body. The same shape
// appears embedded as the originalDetectIntentRequest payload of a
// generation-2 Dialogflow request.
type AppRequestV2 struct {
	User              *UserV2         `json:"user,omitempty"`
	Device            *DeviceV2       `json:"device,omitempty"`
	Surface           *SurfaceV2      `json:"surface,omitempty"`
	Conversation      *ConversationV2 `json:"conversation,omitempty"`
	Inputs            []InputV2       `json:"inputs,omitempty"`
	IsInSandbox       bool            `json:"isInSandbox,omitempty"`
	AvailableSurfaces []SurfaceV2     `json:"availableSurfaces,omitempty"`
}

// UserV2 describes the calling user.
type UserV2 struct {
	UserID      string     `json:"userId,omitempty"`
	IDToken     string     `json:"idToken,omitempty"`
	AccessToken string     `json:"accessToken,omitempty"`
	Locale      string     `json:"locale,omitempty"`
	LastSeen    string     `json:"lastSeen,omitempty"`
	UserStorage string     `json:"userStorage,omitempty"`
	Profile     *ProfileV2 `json:"profile,omitempty"`
	Permissions []string   `json:"permissions,omitempty"`
}

// ProfileV2 carries user profile fields granted via the NAME permission.
type ProfileV2 struct {
	DisplayName string `json:"displayName,omitempty"`
	GivenName   string `json:"givenName,omitempty"`
	FamilyName  string `json:"familyName,omitempty"`
}

// DeviceV2 describes the calling device.
type DeviceV2 struct {
	Location *LocationV2 `json:"location,omitempty"`
}

// LocationV2 is populated after a granted location permission.
type LocationV2 struct {
	Coordinates      *CoordinatesV2 `json:"coordinates,omitempty"`
	FormattedAddress string         `json:"formattedAddress,omitempty"`
	ZipCode          string         `json:"zipCode,omitempty"`
	City             string         `json:"city,omitempty"`
}

// CoordinatesV2 is a lat/lng pair.
type CoordinatesV2 struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// SurfaceV2 lists the capabilities of the surface handling the conversation.
type SurfaceV2 struct {
	Capabilities []CapabilityV2 `json:"capabilities,omitempty"`
}

// CapabilityV2 names one surface capability.
type CapabilityV2 struct {
	Name string `json:"name"`
}

// Surface capability names.
const (
	CapabilityScreenOutput = "actions.capability.SCREEN_OUTPUT"
	CapabilityAudioOutput  = "actions.capability.AUDIO_OUTPUT"
	CapabilityWebBrowser   = "actions.capability.WEB_BROWSER"
)

// ConversationV2 carries the conversation identity and round-tripped token.
type ConversationV2 struct {
	ConversationID    string `json:"conversationId,omitempty"`
	Type              string `json:"type,omitempty"`
	ConversationToken string `json:"conversationToken,omitempty"`
}

// InputV2 is one turn input: the matched intent plus raw inputs and arguments.
type InputV2 struct {
	RawInputs []RawInputV2 `json:"rawInputs,omitempty"`
	Intent    string       `json:"intent,omitempty"`
	Arguments []ArgumentV2 `json:"arguments,omitempty"`
}

// RawInputV2 is the user utterance as captured by the platform.
type RawInputV2 struct {
	InputType string `json:"inputType,omitempty"`
	Query     string `json:"query,omitempty"`
}

// ArgumentV2 is a typed argument value supplied by a built-in system intent.
type ArgumentV2 struct {
	Name            string          `json:"name,omitempty"`
	RawText         string          `json:"rawText,omitempty"`
	TextValue       string          `json:"textValue,omitempty"`
	BoolValue       *bool           `json:"boolValue,omitempty"`
	IntValue        string          `json:"intValue,omitempty"`
	FloatValue      float64         `json:"floatValue,omitempty"`
	DatetimeValue   *DateTimeV2     `json:"datetimeValue,omitempty"`
	StructuredValue map[string]any  `json:"structuredValue,omitempty"`
	Extension       json.RawMessage `json:"extension,omitempty"`
	Status          *StatusV2       `json:"status,omitempty"`
}

// DateTimeV2 is the value of a DATETIME argument.
type DateTimeV2 struct {
	Date *DateV2 `json:"date,omitempty"`
	Time *TimeV2 `json:"time,omitempty"`
}

// DateV2 is a calendar date.
type DateV2 struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// TimeV2 is a wall-clock time.
type TimeV2 struct {
	Hours   int `json:"hours,omitempty"`
	Minutes int `json:"minutes,omitempty"`
	Seconds int `json:"seconds,omitempty"`
	Nanos   int `json:"nanos,omitempty"`
}

// StatusV2 reports the outcome of a system-intent argument (e.g. SIGN_IN).
type StatusV2 struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// AppResponseV2 is the generation-2 Actions-SDK response body.
type AppResponseV2 struct {
	ConversationToken  string            `json:"conversationToken,omitempty"`
	UserStorage        string            `json:"userStorage,omitempty"`
	ExpectUserResponse bool              `json:"expectUserResponse"`
	ExpectedInputs     []ExpectedInputV2 `json:"expectedInputs,omitempty"`
	FinalResponse      *FinalResponseV2  `json:"finalResponse,omitempty"`
	IsInSandbox        bool              `json:"isInSandbox,omitempty"`
}

// ExpectedInputV2 prompts the user and declares the intents that may follow.
type ExpectedInputV2 struct {
	InputPrompt     *InputPromptV2     `json:"inputPrompt,omitempty"`
	PossibleIntents []ExpectedIntentV2 `json:"possibleIntents,omitempty"`
}

// InputPromptV2 carries the rich initial prompt and the no-input reprompts.
type InputPromptV2 struct {
	RichInitialPrompt json.RawMessage  `json:"richInitialPrompt,omitempty"`
	NoInputPrompts    []SimplePromptV2 `json:"noInputPrompts,omitempty"`
}

// SimplePromptV2 is a bare text-or-SSML prompt.
type SimplePromptV2 struct {
	TextToSpeech string `json:"textToSpeech,omitempty"`
	SSML         string `json:"ssml,omitempty"`
}

// ExpectedIntentV2 names an intent the platform should match next, optionally
// with a system-intent value spec.
type ExpectedIntentV2 struct {
	Intent         string          `json:"intent"`
	InputValueData json.RawMessage `json:"inputValueData,omitempty"`
}

// FinalResponseV2 terminates the conversation with a rich response.
type FinalResponseV2 struct {
	RichResponse json.RawMessage `json:"richResponse,omitempty"`
}
