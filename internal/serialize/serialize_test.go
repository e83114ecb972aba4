// SPDX-License-Identifier: MIT

package serialize

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxhook/voxhook/internal/wire"
	"github.com/voxhook/voxhook/rich"
)

func TestDialogflowV1TellGolden(t *testing.T) {
	body, header, err := Response(Input{
		Generation: wire.Gen1,
		FrontEnd:   wire.Dialogflow,
		Rich:       rich.NewResponse().AddSimple("hello", ""),
	})
	require.NoError(t, err)

	want := `{"speech":"hello","data":{"google":{"expect_user_response":false,"is_ssml":false,"no_input_prompts":[]}},"contextOut":[]}`
	if diff := cmp.Diff(want, string(body)); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "application/json; charset=utf-8", header.Get("Content-Type"))
}

func TestDialogflowV1AskEmitsContexts(t *testing.T) {
	body, _, err := Response(Input{
		Generation:         wire.Gen1,
		FrontEnd:           wire.Dialogflow,
		ExpectUserResponse: true,
		Rich:               rich.NewResponse().AddSimple("<speak>hi</speak>", ""),
		NoInputPrompts:     []string{"still there?"},
		Contexts: []ContextOut{
			{Name: "_voxhook_", Lifespan: 100, Parameters: map[string]any{"data": `{"state":"s","data":{}}`}},
			{Name: "cart", Lifespan: 5, Parameters: map[string]any{"items": float64(2)}},
		},
	})
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "<speak>hi</speak>", resp["speech"])

	google := resp["data"].(map[string]any)["google"].(map[string]any)
	assert.Equal(t, true, google["expect_user_response"])
	assert.Equal(t, true, google["is_ssml"])
	prompts := google["no_input_prompts"].([]any)
	require.Len(t, prompts, 1)
	assert.Equal(t, "still there?", prompts[0].(map[string]any)["text_to_speech"])

	ctxs := resp["contextOut"].([]any)
	require.Len(t, ctxs, 2)
	reserved := ctxs[0].(map[string]any)
	assert.Equal(t, "_voxhook_", reserved["name"])
	assert.Equal(t, float64(100), reserved["lifespan"])
}

func TestDialogflowV2AskShape(t *testing.T) {
	body, _, err := Response(Input{
		Generation:         wire.Gen2,
		FrontEnd:           wire.Dialogflow,
		ExpectUserResponse: true,
		Rich:               rich.NewResponse().AddSimple("pick one", "Pick one"),
		Session:            "projects/p/agent/sessions/abc",
		Contexts: []ContextOut{
			{Name: "_voxhook_", Lifespan: 99, Parameters: map[string]any{"data": `{"state":null,"data":{}}`}},
		},
	})
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "Pick one", resp["fulfillmentText"])

	google := resp["payload"].(map[string]any)["google"].(map[string]any)
	assert.Equal(t, true, google["expectUserResponse"])

	ctxs := resp["outputContexts"].([]any)
	require.Len(t, ctxs, 1)
	first := ctxs[0].(map[string]any)
	assert.Equal(t, "projects/p/agent/sessions/abc/contexts/_voxhook_", first["name"])
	assert.Equal(t, float64(99), first["lifespanCount"])
}

func TestActionsV2Ask(t *testing.T) {
	body, _, err := Response(Input{
		Generation:         wire.Gen2,
		FrontEnd:           wire.ActionsSDK,
		ExpectUserResponse: true,
		Rich:               rich.NewResponse().AddSimple("hi", ""),
		DialogToken:        `{"state":"greeted","data":{}}`,
		APIVersion:         "v1",
	})
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, true, resp["expectUserResponse"])
	assert.Equal(t, `{"state":"greeted","data":{}}`, resp["conversationToken"])

	inputs := resp["expectedInputs"].([]any)
	require.Len(t, inputs, 1)
	intents := inputs[0].(map[string]any)["possibleIntents"].([]any)
	require.Len(t, intents, 1)
	assert.Equal(t, "actions.intent.TEXT", intents[0].(map[string]any)["intent"])
}

func TestActionsV2Tell(t *testing.T) {
	body, _, err := Response(Input{
		Generation: wire.Gen2,
		FrontEnd:   wire.ActionsSDK,
		Rich:       rich.NewResponse().AddSimple("bye", ""),
	})
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, false, resp["expectUserResponse"])
	require.Contains(t, resp, "finalResponse")
	assert.NotContains(t, resp, "expectedInputs")
}

func TestActionsV2SystemIntent(t *testing.T) {
	si, err := rich.NewPermission("to greet you", rich.PermissionName)
	require.NoError(t, err)

	body, _, err := Response(Input{
		Generation:         wire.Gen2,
		FrontEnd:           wire.ActionsSDK,
		ExpectUserResponse: true,
		Rich:               rich.NewResponse().AddSimple(si.Placeholder, ""),
		SystemIntent:       si,
	})
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(body, &resp))
	inputs := resp["expectedInputs"].([]any)
	intent := inputs[0].(map[string]any)["possibleIntents"].([]any)[0].(map[string]any)
	assert.Equal(t, "actions.intent.PERMISSION", intent["intent"])
	data := intent["inputValueData"].(map[string]any)
	assert.Equal(t, "type.googleapis.com/google.actions.v2.PermissionValueSpec", data["@type"])
}

func TestActionsV1SystemIntentSpecShape(t *testing.T) {
	si, err := rich.NewConfirmation("delete everything?")
	require.NoError(t, err)

	body, _, err := Response(Input{
		Generation:         wire.Gen1,
		FrontEnd:           wire.ActionsSDK,
		ExpectUserResponse: true,
		Rich:               rich.NewResponse().AddSimple(si.Placeholder, ""),
		SystemIntent:       si,
	})
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(body, &resp))
	inputs := resp["expected_inputs"].([]any)
	intent := inputs[0].(map[string]any)["possible_intents"].([]any)[0].(map[string]any)
	assert.Equal(t, "assistant.intent.action.CONFIRMATION", intent["intent"])
	spec := intent["input_value_spec"].(map[string]any)
	assert.Equal(t, "delete everything?", spec["request_confirmation_text"])
}

func TestGen1RejectsTransactionIntents(t *testing.T) {
	si, err := rich.NewTransactionDecision(map[string]any{"id": "o1"}, nil, nil)
	require.NoError(t, err)

	for _, fe := range []wire.FrontEnd{wire.ActionsSDK, wire.Dialogflow} {
		_, _, err := Response(Input{
			Generation:         wire.Gen1,
			FrontEnd:           fe,
			ExpectUserResponse: true,
			Rich:               rich.NewResponse().AddSimple(si.Placeholder, ""),
			SystemIntent:       si,
		})
		assert.Error(t, err)
	}
}

func TestValidationErrors(t *testing.T) {
	_, _, err := Response(Input{Generation: wire.Gen2, FrontEnd: wire.ActionsSDK})
	assert.ErrorIs(t, err, rich.ErrNoSimpleItem)

	_, _, err = Response(Input{
		Generation: wire.Gen2,
		FrontEnd:   wire.ActionsSDK,
		Rich:       rich.NewResponse().AddBasicCard(&rich.BasicCard{Title: "t"}),
	})
	assert.ErrorIs(t, err, rich.ErrNoSimpleItem)

	_, _, err = Response(Input{
		Generation:         wire.Gen2,
		FrontEnd:           wire.ActionsSDK,
		ExpectUserResponse: true,
		Rich:               rich.NewResponse().AddSimple("hi", ""),
		NoInputPrompts:     []string{"a", "b", "c", "d"},
	})
	assert.ErrorIs(t, err, rich.ErrTooManyPrompts)
}
