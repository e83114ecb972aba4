// SPDX-License-Identifier: MIT

package rich

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPermissionValidation(t *testing.T) {
	_, err := NewPermission("why")
	assert.ErrorIs(t, err, ErrNoPermissions)

	_, err = NewPermission("why", Permission("BOGUS"))
	assert.ErrorIs(t, err, ErrInvalidPermission)

	si, err := NewPermission("to find you", PermissionName, PermissionPreciseLocation)
	require.NoError(t, err)
	assert.Equal(t, "actions.intent.PERMISSION", si.IntentV2)
	assert.Equal(t, "assistant.intent.action.PERMISSION", si.IntentV1)
	assert.Equal(t, "PERMISSION", si.ExpectedArgument)

	spec, err := si.SpecV2JSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(spec, &decoded))
	assert.Equal(t, "type.googleapis.com/google.actions.v2.PermissionValueSpec", decoded["@type"])
	assert.Equal(t, "to find you", decoded["optContext"])
	assert.Len(t, decoded["permissions"], 2)
}

func TestNewSignInRequiresPhrase(t *testing.T) {
	_, err := NewSignIn("")
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	si, err := NewSignIn("to save your progress")
	require.NoError(t, err)
	assert.Equal(t, "actions.intent.SIGN_IN", si.IntentV2)
}

func TestNewConfirmationSpecs(t *testing.T) {
	_, err := NewConfirmation("")
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	si, err := NewConfirmation("are you sure?")
	require.NoError(t, err)

	v1, err := si.SpecV1JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"request_confirmation_text":"are you sure?"}`, string(v1))

	v2, err := si.SpecV2JSON()
	require.NoError(t, err)
	assert.Contains(t, string(v2), `"@type"`)
	assert.Contains(t, string(v2), `"requestConfirmationText":"are you sure?"`)
}

func TestNewTransactionDecisionRequiresOrder(t *testing.T) {
	_, err := NewTransactionDecision(nil, nil, nil)
	assert.ErrorIs(t, err, ErrMissingOrder)

	si, err := NewTransactionDecision(map[string]any{"id": "order-1"}, nil, nil)
	require.NoError(t, err)
	// Transaction flows exist on generation 2 only.
	assert.Empty(t, si.IntentV1)
	assert.Equal(t, "actions.intent.TRANSACTION_DECISION", si.IntentV2)
}

func TestNewListOptionValidates(t *testing.T) {
	_, err := NewListOption(nil)
	assert.ErrorIs(t, err, ErrListTooSmall)

	list, err := NewList("pick",
		OptionItem{OptionInfo: OptionInfo{Key: "a"}, Title: "A"},
		OptionItem{OptionInfo: OptionInfo{Key: "b"}, Title: "B"},
	)
	require.NoError(t, err)

	si, err := NewListOption(list)
	require.NoError(t, err)
	assert.Equal(t, "OPTION", si.ExpectedArgument)

	v1, err := si.SpecV1JSON()
	require.NoError(t, err)
	assert.Contains(t, string(v1), `"list_select"`)
}
