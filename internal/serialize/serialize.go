// SPDX-License-Identifier: MIT

// Package serialize projects the internal response model into the exact JSON
// document and headers the detected wire format expects. It is a pure
// function of its input: no mutation, deterministic output.
package serialize

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/voxhook/voxhook/internal/wire"
	"github.com/voxhook/voxhook/rich"
)

// ContextOut is one outgoing context, already resolved by the conversation
// state layer (reserved context included, expired ones filtered or kept as
// explicit zero-lifespan deletions).
type ContextOut struct {
	Name       string
	Lifespan   int
	Parameters map[string]any
}

// Input is everything the projection needs. Field naming between generations
// is a fixed mapping owned by this package, never inferred.
type Input struct {
	Generation         wire.Generation
	FrontEnd           wire.FrontEnd
	ExpectUserResponse bool
	Rich               *rich.Response
	NoInputPrompts     []string
	SystemIntent       *rich.SystemIntent

	// DialogToken is the serialized {state, data} blob (Actions SDK).
	DialogToken string
	// Contexts are the outgoing contexts (Dialogflow).
	Contexts []ContextOut
	// Session is the generation-2 Dialogflow session path used to qualify
	// context names.
	Session string
	// APIVersion echoes the inbound platform version header when non-empty.
	APIVersion string
	Sandbox    bool
}

// Response serializes the input into wire JSON plus response headers.
func Response(in Input) ([]byte, http.Header, error) {
	if in.Rich == nil {
		return nil, nil, rich.ErrNoSimpleItem
	}
	if in.SystemIntent == nil {
		if err := in.Rich.Validate(); err != nil {
			return nil, nil, err
		}
	}
	if err := rich.CheckPromptCount(in.NoInputPrompts); err != nil {
		return nil, nil, err
	}

	var (
		body []byte
		err  error
	)
	switch {
	case in.FrontEnd == wire.ActionsSDK && in.Generation == wire.Gen2:
		body, err = actionsV2(in)
	case in.FrontEnd == wire.ActionsSDK:
		body, err = actionsV1(in)
	case in.Generation == wire.Gen2:
		body, err = dialogflowV2(in)
	default:
		body, err = dialogflowV1(in)
	}
	if err != nil {
		return nil, nil, err
	}

	header := http.Header{}
	header.Set(wire.HeaderContentType, wire.ContentTypeJSON)
	if in.APIVersion != "" {
		header.Set(wire.HeaderAPIVersion, in.APIVersion)
	}
	return body, header, nil
}

func actionsV2(in Input) ([]byte, error) {
	richJSON, err := json.Marshal(in.Rich)
	if err != nil {
		return nil, err
	}

	resp := wire.AppResponseV2{
		ExpectUserResponse: in.ExpectUserResponse,
		IsInSandbox:        in.Sandbox,
	}
	if !in.ExpectUserResponse {
		resp.FinalResponse = &wire.FinalResponseV2{RichResponse: richJSON}
		return json.Marshal(resp)
	}

	resp.ConversationToken = in.DialogToken
	ei := wire.ExpectedInputV2{
		InputPrompt: &wire.InputPromptV2{
			RichInitialPrompt: richJSON,
			NoInputPrompts:    promptsV2(in.NoInputPrompts),
		},
		PossibleIntents: []wire.ExpectedIntentV2{{Intent: wire.IntentTextV2}},
	}
	if si := in.SystemIntent; si != nil {
		data, err := si.SpecV2JSON()
		if err != nil {
			return nil, err
		}
		ei.PossibleIntents = []wire.ExpectedIntentV2{{Intent: si.IntentV2, InputValueData: data}}
	}
	resp.ExpectedInputs = []wire.ExpectedInputV2{ei}
	return json.Marshal(resp)
}

func actionsV1(in Input) ([]byte, error) {
	first := in.Rich.FirstSimple()
	if first == nil && in.SystemIntent == nil {
		return nil, rich.ErrNoSimpleItem
	}

	resp := wire.AppResponseV1{ExpectUserResponse: in.ExpectUserResponse}
	if !in.ExpectUserResponse {
		resp.FinalResponse = &wire.FinalResponseV1{SpeechResponse: simpleV1(first)}
		return json.Marshal(resp)
	}

	resp.ConversationToken = in.DialogToken
	ei := wire.ExpectedInputV1{
		InputPrompt: &wire.InputPromptV1{
			InitialPrompts: []wire.SimplePromptV1{*simpleV1(first)},
			NoInputPrompts: promptsV1(in.NoInputPrompts),
		},
		PossibleIntents: []wire.ExpectedIntentV1{{Intent: wire.IntentTextV1}},
	}
	if si := in.SystemIntent; si != nil {
		spec, err := si.SpecV1JSON()
		if err != nil {
			return nil, err
		}
		intent := si.IntentV1
		if intent == "" {
			// Transaction flows have no generation-1 identifier.
			return nil, fmt.Errorf("system intent %s not available on generation 1", si.IntentV2)
		}
		ei.PossibleIntents = []wire.ExpectedIntentV1{{Intent: intent, InputValueSpec: spec}}
	}
	resp.ExpectedInputs = []wire.ExpectedInputV1{ei}
	return json.Marshal(resp)
}

func dialogflowV1(in Input) ([]byte, error) {
	first := in.Rich.FirstSimple()
	speech, isSSML := "", false
	if first != nil {
		if first.SSML != "" {
			speech, isSSML = first.SSML, true
		} else {
			speech = first.TextToSpeech
		}
	}

	google := &wire.GooglePayloadV1{
		ExpectUserResponse: in.ExpectUserResponse,
		IsSSML:             isSSML,
		NoInputPrompts:     promptsV1(in.NoInputPrompts),
	}
	if si := in.SystemIntent; si != nil {
		if si.IntentV1 == "" {
			return nil, fmt.Errorf("system intent %s not available on generation 1", si.IntentV2)
		}
		spec, err := si.SpecV1JSON()
		if err != nil {
			return nil, err
		}
		google.SystemIntent = &wire.SystemIntentV1{Intent: si.IntentV1, Spec: spec}
	}

	resp := wire.DFResponseV1{
		Speech:     speech,
		Data:       &wire.DFDataV1{Google: google},
		ContextOut: contextsV1(in.Contexts),
	}
	if first != nil {
		resp.DisplayText = first.DisplayText
	}
	return json.Marshal(resp)
}

func dialogflowV2(in Input) ([]byte, error) {
	richJSON, err := json.Marshal(in.Rich)
	if err != nil {
		return nil, err
	}

	google := &wire.GooglePayloadV2{
		ExpectUserResponse: in.ExpectUserResponse,
		RichResponse:       richJSON,
		NoInputPrompts:     promptsV2(in.NoInputPrompts),
	}
	if si := in.SystemIntent; si != nil {
		data, err := si.SpecV2JSON()
		if err != nil {
			return nil, err
		}
		google.SystemIntent = &wire.SystemIntentV2{Intent: si.IntentV2, Data: data}
	}

	resp := wire.DFResponseV2{
		Payload:        &wire.DFPayloadV2{Google: google},
		OutputContexts: contextsV2(in.Contexts, in.Session),
	}
	if first := in.Rich.FirstSimple(); first != nil {
		if first.DisplayText != "" {
			resp.FulfillmentText = first.DisplayText
		} else {
			resp.FulfillmentText = first.TextToSpeech
		}
	}
	return json.Marshal(resp)
}

func promptsV2(prompts []string) []wire.SimplePromptV2 {
	if len(prompts) == 0 {
		return nil
	}
	out := make([]wire.SimplePromptV2, 0, len(prompts))
	for _, p := range prompts {
		if rich.IsSSML(p) {
			out = append(out, wire.SimplePromptV2{SSML: p})
		} else {
			out = append(out, wire.SimplePromptV2{TextToSpeech: p})
		}
	}
	return out
}

// promptsV1 always returns a non-nil slice: generation 1 emits
// no_input_prompts even when empty.
func promptsV1(prompts []string) []wire.SimplePromptV1 {
	out := make([]wire.SimplePromptV1, 0, len(prompts))
	for _, p := range prompts {
		if rich.IsSSML(p) {
			out = append(out, wire.SimplePromptV1{SSML: p})
		} else {
			out = append(out, wire.SimplePromptV1{TextToSpeech: p})
		}
	}
	return out
}

func simpleV1(s *rich.SimpleResponse) *wire.SimplePromptV1 {
	if s == nil {
		return &wire.SimplePromptV1{}
	}
	if s.SSML != "" {
		return &wire.SimplePromptV1{SSML: s.SSML}
	}
	return &wire.SimplePromptV1{TextToSpeech: s.TextToSpeech}
}

// contextsV1 always returns a non-nil slice: contextOut is emitted even when
// empty.
func contextsV1(ctxs []ContextOut) []wire.DFContextV1 {
	out := make([]wire.DFContextV1, 0, len(ctxs))
	for _, c := range ctxs {
		out = append(out, wire.DFContextV1{
			Name:       c.Name,
			Lifespan:   c.Lifespan,
			Parameters: c.Parameters,
		})
	}
	return out
}

func contextsV2(ctxs []ContextOut, session string) []wire.DFContextV2 {
	out := make([]wire.DFContextV2, 0, len(ctxs))
	for _, c := range ctxs {
		out = append(out, wire.DFContextV2{
			Name:          wire.ContextPath(session, c.Name),
			LifespanCount: c.Lifespan,
			Parameters:    c.Parameters,
		})
	}
	return out
}
