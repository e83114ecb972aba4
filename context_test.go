// SPDX-License-Identifier: MIT

package voxhook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDialogState(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantOK   bool
		wantData map[string]any
	}{
		{"empty token", "", true, map[string]any{}},
		{"well formed", `{"state":"greeted","data":{"n":1}}`, true, map[string]any{"n": float64(1)}},
		{"null fields", `{"state":null,"data":null}`, true, map[string]any{}},
		{"malformed resets", `{broken`, false, map[string]any{}},
		{"non-object resets", `"just a string"`, false, map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, ok := decodeDialogState(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantData, ds.Data)
		})
	}
}

func TestDialogStatePreservesUnknownFields(t *testing.T) {
	ds, ok := decodeDialogState(`{"state":"s","data":{"a":1},"vendor":{"k":"v"}}`)
	require.True(t, ok)
	assert.Equal(t, "s", ds.State)

	out, err := ds.encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "s", decoded["state"])
	assert.Equal(t, map[string]any{"k": "v"}, decoded["vendor"])
}

func TestDialogStateRoundTrip(t *testing.T) {
	ds, ok := decodeDialogState("")
	require.True(t, ok)
	ds.State = "checkout"
	ds.Data["items"] = []any{"a", "b"}

	out, err := ds.encode()
	require.NoError(t, err)

	back, ok := decodeDialogState(out)
	require.True(t, ok)
	assert.Equal(t, "checkout", back.State)
	assert.Equal(t, []any{"a", "b"}, back.Data["items"])
}
