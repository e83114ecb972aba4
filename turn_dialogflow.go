// SPDX-License-Identifier: MIT

package voxhook

import (
	"encoding/json"
	"fmt"

	"github.com/voxhook/voxhook/internal/wire"
)

// dialogflowTurn is the Dialogflow front-end variant. The embedded
// original-request payload, when present, supplies Assistant arguments and
// surface information that the Dialogflow envelope itself lacks.
type dialogflowTurn struct {
	gen wire.Generation
	v1  *wire.DFRequestV1
	v2  *wire.DFRequestV2

	appV1 *wire.AppRequestV1
	appV2 *wire.AppRequestV2
}

func parseDialogflowTurn(gen wire.Generation, body []byte) (*dialogflowTurn, error) {
	t := &dialogflowTurn{gen: gen}
	if gen == wire.Gen2 {
		var req wire.DFRequestV2
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		if req.QueryResult == nil {
			return nil, fmt.Errorf("%w: missing queryResult", ErrMalformedRequest)
		}
		t.v2 = &req
		if payload := req.OriginalDetectIntentRequest.AppPayload(); len(payload) > 0 {
			var app wire.AppRequestV2
			if json.Unmarshal(payload, &app) == nil {
				t.appV2 = &app
			}
		}
		return t, nil
	}
	var req wire.DFRequestV1
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if req.Result == nil {
		return nil, fmt.Errorf("%w: missing result", ErrMalformedRequest)
	}
	t.v1 = &req
	if payload := req.OriginalRequest.AppPayload(); len(payload) > 0 {
		var app wire.AppRequestV1
		if json.Unmarshal(payload, &app) == nil {
			t.appV1 = &app
		}
	}
	return t, nil
}

func (t *dialogflowTurn) intentKey() string {
	if t.v2 != nil {
		if t.v2.QueryResult.Action != "" {
			return t.v2.QueryResult.Action
		}
		if t.v2.QueryResult.Intent != nil {
			return t.v2.QueryResult.Intent.DisplayName
		}
		return ""
	}
	if t.v1.Result.Action != "" {
		return t.v1.Result.Action
	}
	if t.v1.Result.Metadata != nil {
		return t.v1.Result.Metadata.IntentName
	}
	return ""
}

func (t *dialogflowTurn) query() string {
	if t.v2 != nil {
		return t.v2.QueryResult.QueryText
	}
	return t.v1.Result.ResolvedQuery
}

func (t *dialogflowTurn) arguments() []Argument {
	var inputs []wire.InputV2
	if t.appV2 != nil {
		inputs = t.appV2.Inputs
	}
	if len(inputs) > 0 {
		args := make([]Argument, 0, len(inputs[0].Arguments))
		for _, a := range inputs[0].Arguments {
			args = append(args, argumentFromV2(a))
		}
		return args
	}
	if t.appV1 != nil && len(t.appV1.Inputs) > 0 {
		args := make([]Argument, 0, len(t.appV1.Inputs[0].Arguments))
		for _, a := range t.appV1.Inputs[0].Arguments {
			args = append(args, argumentFromV1(a))
		}
		return args
	}
	return nil
}

func (t *dialogflowTurn) parameters() map[string]any {
	if t.v2 != nil {
		return t.v2.QueryResult.Parameters
	}
	return t.v1.Result.Parameters
}

func (t *dialogflowTurn) inboundContexts() []Context {
	if t.v2 != nil {
		out := make([]Context, 0, len(t.v2.QueryResult.OutputContexts))
		for _, c := range t.v2.QueryResult.OutputContexts {
			out = append(out, Context{
				Name:       c.ShortName(),
				Lifespan:   c.LifespanCount,
				Parameters: c.Parameters,
			})
		}
		return out
	}
	out := make([]Context, 0, len(t.v1.Result.Contexts))
	for _, c := range t.v1.Result.Contexts {
		out = append(out, Context{
			Name:       c.Name,
			Lifespan:   c.Lifespan,
			Parameters: c.Parameters,
		})
	}
	return out
}

// statePayload returns the JSON blob stored under the reserved context's
// "data" parameter, or empty when the context is absent (first turn).
func (t *dialogflowTurn) statePayload() string {
	for _, c := range t.inboundContexts() {
		if c.Name != reservedContextName {
			continue
		}
		if raw, ok := c.Parameters["data"].(string); ok {
			return raw
		}
		return ""
	}
	return ""
}

func (t *dialogflowTurn) meta() turnMeta {
	var m turnMeta
	switch {
	case t.appV2 != nil:
		m = metaFromAppV2(t.appV2)
	case t.appV1 != nil:
		m = metaFromAppV1(t.appV1)
	}
	if t.v2 != nil {
		m.Session = t.v2.Session
		if m.ConversationID == "" {
			m.ConversationID = t.v2.Session
		}
		if m.Locale == "" {
			m.Locale = t.v2.QueryResult.LanguageCode
		}
		return m
	}
	if m.ConversationID == "" {
		m.ConversationID = t.v1.SessionID
	}
	if m.Locale == "" {
		m.Locale = t.v1.Lang
	}
	return m
}
