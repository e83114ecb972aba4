// SPDX-License-Identifier: MIT

// Package detect decides which API generation and front-end integration
// produced an inbound webhook body. Detection is pure: it inspects headers
// and the raw body, performs no I/O, and never fails.
package detect

import (
	"encoding/json"
	"net/http"

	"github.com/voxhook/voxhook/internal/wire"
)

// probe is the minimal body shape needed for format detection.
type probe struct {
	Inputs                      json.RawMessage      `json:"inputs"`
	Result                      json.RawMessage      `json:"result"`
	QueryResult                 json.RawMessage      `json:"queryResult"`
	OriginalRequest             *wire.OriginalRequest `json:"originalRequest"`
	OriginalDetectIntentRequest *wire.OriginalRequest `json:"originalDetectIntentRequest"`
}

// Detect returns the generation and front end of the request. Precedence for
// the generation, first match wins: the generation-2 marker header with value
// "2", an embedded original-request version marker equal to 2 or "2", or a
// queryResult envelope (which only generation 2 produces). Everything else is
// generation 1. Unknown shapes default to generation 1 on the Dialogflow
// front end; the platform is assumed to send one of the known shapes.
func Detect(header http.Header, body []byte) (wire.Generation, wire.FrontEnd) {
	var p probe
	// A malformed body detects as Gen1/Dialogflow; the adapter rejects it later.
	_ = json.Unmarshal(body, &p)

	gen := wire.Gen1
	switch {
	case header.Get(wire.HeaderActionsAPIVersion) == "2":
		gen = wire.Gen2
	case p.OriginalRequest.VersionIs2() || p.OriginalDetectIntentRequest.VersionIs2():
		gen = wire.Gen2
	case len(p.QueryResult) > 0:
		gen = wire.Gen2
	}

	fe := wire.Dialogflow
	if keyPresent(p.Inputs) {
		fe = wire.ActionsSDK
	}
	return gen, fe
}

// keyPresent reports whether a probed JSON key was present with a non-null
// value. An empty inputs array still marks the Actions SDK envelope.
func keyPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
