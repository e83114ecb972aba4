// SPDX-License-Identifier: MIT

package voxhook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxhook/voxhook/internal/wire"
	"github.com/voxhook/voxhook/rich"
)

func newTestConversation(t *testing.T, gen wire.Generation, body string) *Conversation {
	t.Helper()
	tr, err := parseActionsSDKTurn(gen, []byte(body))
	require.NoError(t, err)
	return newConversation(gen, wire.ActionsSDK, []byte(body), tr, "")
}

func TestAskValidatesBeforeCommitting(t *testing.T) {
	conv := newTestConversation(t, wire.Gen2, `{"inputs":[{"intent":"actions.intent.MAIN"}]}`)

	err := conv.Ask(rich.NewResponse())
	assert.ErrorIs(t, err, rich.ErrNoSimpleItem)
	assert.False(t, conv.hasResponded())

	err = conv.Ask(rich.NewResponse().AddSimple("hi", ""), "a", "b", "c", "d")
	assert.ErrorIs(t, err, rich.ErrTooManyPrompts)
	assert.False(t, conv.hasResponded())

	// A failed attempt does not consume the respond-once guard.
	require.NoError(t, conv.AskSimple("hello"))
	assert.True(t, conv.hasResponded())
}

func TestSerializeWithoutResponse(t *testing.T) {
	conv := newTestConversation(t, wire.Gen2, `{"inputs":[{"intent":"actions.intent.MAIN"}]}`)
	_, _, err := conv.serializeResponse()
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestDateTimeValueAccessor(t *testing.T) {
	body := `{"inputs":[{
		"intent": "actions.intent.DATETIME",
		"arguments": [{
			"name": "DATETIME",
			"datetimeValue": {"date": {"year": 2026, "month": 8, "day": 25}, "time": {"hours": 14, "minutes": 30}}
		}]
	}]}`
	conv := newTestConversation(t, wire.Gen2, body)

	dt, ok := conv.DateTimeValue()
	require.True(t, ok)
	assert.Equal(t, 2026, dt.Year)
	assert.Equal(t, 8, dt.Month)
	assert.Equal(t, 25, dt.Day)
	assert.Equal(t, 14, dt.Hours)
	assert.Equal(t, 30, dt.Minutes)
}

func TestSignInStatusFromExtension(t *testing.T) {
	body := `{"inputs":[{
		"intent": "actions.intent.SIGN_IN",
		"arguments": [{"name": "SIGN_IN", "extension": {"@type": "type.googleapis.com/google.actions.v2.SignInValue", "status": "OK"}}]
	}]}`
	conv := newTestConversation(t, wire.Gen2, body)

	status, ok := conv.SignInStatus()
	require.True(t, ok)
	assert.Equal(t, "OK", status)
}

func TestAskWithListBuildsSystemIntent(t *testing.T) {
	conv := newTestConversation(t, wire.Gen2, `{"inputs":[{"intent":"actions.intent.TEXT"}]}`)

	list, err := rich.NewList("pick",
		rich.OptionItem{OptionInfo: rich.OptionInfo{Key: "a"}, Title: "A"},
		rich.OptionItem{OptionInfo: rich.OptionInfo{Key: "b"}, Title: "B"},
	)
	require.NoError(t, err)
	require.NoError(t, conv.AskWithList("Which one?", list))

	body, _, err := conv.serializeResponse()
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(body, &resp))
	inputs := resp["expectedInputs"].([]any)
	intent := inputs[0].(map[string]any)["possibleIntents"].([]any)[0].(map[string]any)
	assert.Equal(t, "actions.intent.OPTION", intent["intent"])
}

func TestLocaleParsing(t *testing.T) {
	body := `{"user":{"locale":"de-DE"},"inputs":[{"intent":"actions.intent.MAIN"}]}`
	conv := newTestConversation(t, wire.Gen2, body)
	assert.Equal(t, "de-DE", conv.Locale().String())

	body = `{"user":{"locale":"!!"},"inputs":[{"intent":"actions.intent.MAIN"}]}`
	conv = newTestConversation(t, wire.Gen2, body)
	assert.Equal(t, "und", conv.Locale().String())
}

func TestContextMutations(t *testing.T) {
	conv := newTestConversation(t, wire.Gen2, `{"inputs":[{"intent":"actions.intent.MAIN"}]}`)

	conv.SetContext("cart", 5, map[string]any{"items": 1})
	ctx, ok := conv.GetContext("cart")
	require.True(t, ok)
	assert.Equal(t, 5, ctx.Lifespan)

	// Setting with zero lifespan is a deletion.
	conv.SetContext("cart", 0, nil)
	_, ok = conv.GetContext("cart")
	assert.False(t, ok)

	require.NoError(t, conv.AskSimple("ok"))
	outs := conv.outboundContexts(`{"state":null,"data":{}}`)
	// Reserved context first, then the explicit deletion entry.
	require.Len(t, outs, 2)
	assert.Equal(t, "_voxhook_", outs[0].Name)
	assert.Equal(t, "cart", outs[1].Name)
	assert.Equal(t, 0, outs[1].Lifespan)
}
