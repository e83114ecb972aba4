// SPDX-License-Identifier: MIT

package voxhook

import (
	"encoding/json"
)

// Context is a named, lifespan-bounded bag of parameters. The Dialogflow
// front end uses contexts to simulate session continuity over the stateless
// protocol; lifespan decrements each turn and expires at zero.
type Context struct {
	Name       string
	Lifespan   int
	Parameters map[string]any
}

// reservedContextName is the internal context (Dialogflow) / the shape of the
// dialog token (Actions SDK) carrying library-managed session state across
// turns. It is always emitted on responses.
const reservedContextName = "_voxhook_"

// Reserved-context lifespans per generation.
const (
	reservedLifespanV1 = 100
	reservedLifespanV2 = 99
)

// dialogState is the round-tripped {state, data} payload. Unknown sibling
// fields of the token are preserved via the extra map; only state and data
// are mutated by the library.
type dialogState struct {
	State any            `json:"state"`
	Data  map[string]any `json:"data"`

	extra map[string]json.RawMessage
}

// decodeDialogState leniently decodes a dialog token or reserved-context
// payload. Malformed JSON yields an empty state rather than an error; the
// silent reset is deliberate graceful degradation and is logged by callers.
func decodeDialogState(raw string) (dialogState, bool) {
	ds := dialogState{Data: map[string]any{}}
	if raw == "" {
		return ds, true
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return dialogState{Data: map[string]any{}}, false
	}
	for k, v := range fields {
		switch k {
		case "state":
			_ = json.Unmarshal(v, &ds.State)
		case "data":
			if err := json.Unmarshal(v, &ds.Data); err != nil || ds.Data == nil {
				ds.Data = map[string]any{}
			}
		default:
			if ds.extra == nil {
				ds.extra = map[string]json.RawMessage{}
			}
			ds.extra[k] = v
		}
	}
	return ds, true
}

// encode serializes the dialog state back into the token form, re-attaching
// any preserved unknown fields.
func (ds dialogState) encode() (string, error) {
	out := map[string]any{
		"state": ds.State,
		"data":  ds.Data,
	}
	for k, v := range ds.extra {
		out[k] = v
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
