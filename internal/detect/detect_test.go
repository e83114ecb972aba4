// SPDX-License-Identifier: MIT

package detect

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxhook/voxhook/internal/wire"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		body    string
		wantGen wire.Generation
		wantFE  wire.FrontEnd
	}{
		{
			name:    "actions sdk gen1",
			body:    `{"inputs":[{"intent":"assistant.intent.action.MAIN"}]}`,
			wantGen: wire.Gen1,
			wantFE:  wire.ActionsSDK,
		},
		{
			name:    "actions sdk gen2 via marker header",
			headers: map[string]string{"Google-Actions-Api-Version": "2"},
			body:    `{"inputs":[{"intent":"actions.intent.MAIN"}]}`,
			wantGen: wire.Gen2,
			wantFE:  wire.ActionsSDK,
		},
		{
			name:    "marker header other value stays gen1",
			headers: map[string]string{"Google-Actions-Api-Version": "1"},
			body:    `{"inputs":[{"intent":"assistant.intent.action.MAIN"}]}`,
			wantGen: wire.Gen1,
			wantFE:  wire.ActionsSDK,
		},
		{
			name:    "empty inputs array still actions sdk",
			body:    `{"inputs":[]}`,
			wantGen: wire.Gen1,
			wantFE:  wire.ActionsSDK,
		},
		{
			name:    "null inputs falls back to dialogflow",
			body:    `{"inputs":null,"result":{"action":"greet"}}`,
			wantGen: wire.Gen1,
			wantFE:  wire.Dialogflow,
		},
		{
			name:    "dialogflow gen1 result envelope",
			body:    `{"result":{"action":"greet"},"sessionId":"s"}`,
			wantGen: wire.Gen1,
			wantFE:  wire.Dialogflow,
		},
		{
			name:    "dialogflow gen1 with embedded version 2",
			body:    `{"result":{"action":"greet"},"originalRequest":{"source":"google","version":2,"data":{}}}`,
			wantGen: wire.Gen2,
			wantFE:  wire.Dialogflow,
		},
		{
			name:    "dialogflow gen2 with string version marker",
			body:    `{"queryResult":{"action":"greet"},"originalDetectIntentRequest":{"source":"google","version":"2","payload":{}}}`,
			wantGen: wire.Gen2,
			wantFE:  wire.Dialogflow,
		},
		{
			name:    "queryResult alone marks gen2",
			body:    `{"queryResult":{"action":"greet"},"session":"projects/p/agent/sessions/s"}`,
			wantGen: wire.Gen2,
			wantFE:  wire.Dialogflow,
		},
		{
			name:    "malformed body defaults gen1 dialogflow",
			body:    `{not json`,
			wantGen: wire.Gen1,
			wantFE:  wire.Dialogflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tt.headers {
				header.Set(k, v)
			}
			gen, fe := Detect(header, []byte(tt.body))
			assert.Equal(t, tt.wantGen, gen)
			assert.Equal(t, tt.wantFE, fe)
		})
	}
}
