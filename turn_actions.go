// SPDX-License-Identifier: MIT

package voxhook

import (
	"encoding/json"
	"fmt"

	"github.com/voxhook/voxhook/internal/wire"
)

// actionsSDKTurn is the Actions-SDK front-end variant.
type actionsSDKTurn struct {
	gen wire.Generation
	v1  *wire.AppRequestV1
	v2  *wire.AppRequestV2
}

func parseActionsSDKTurn(gen wire.Generation, body []byte) (*actionsSDKTurn, error) {
	t := &actionsSDKTurn{gen: gen}
	if gen == wire.Gen2 {
		var req wire.AppRequestV2
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		if len(req.Inputs) == 0 {
			return nil, fmt.Errorf("%w: missing inputs", ErrMalformedRequest)
		}
		t.v2 = &req
		return t, nil
	}
	var req wire.AppRequestV1
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if len(req.Inputs) == 0 {
		return nil, fmt.Errorf("%w: missing inputs", ErrMalformedRequest)
	}
	t.v1 = &req
	return t, nil
}

func (t *actionsSDKTurn) intentKey() string {
	if t.v2 != nil {
		return t.v2.Inputs[0].Intent
	}
	return t.v1.Inputs[0].Intent
}

func (t *actionsSDKTurn) query() string {
	if t.v2 != nil {
		if raw := t.v2.Inputs[0].RawInputs; len(raw) > 0 {
			return raw[0].Query
		}
		return ""
	}
	if raw := t.v1.Inputs[0].RawInputs; len(raw) > 0 {
		return raw[0].Query
	}
	return ""
}

func (t *actionsSDKTurn) arguments() []Argument {
	if t.v2 != nil {
		args := make([]Argument, 0, len(t.v2.Inputs[0].Arguments))
		for _, a := range t.v2.Inputs[0].Arguments {
			args = append(args, argumentFromV2(a))
		}
		return args
	}
	args := make([]Argument, 0, len(t.v1.Inputs[0].Arguments))
	for _, a := range t.v1.Inputs[0].Arguments {
		args = append(args, argumentFromV1(a))
	}
	return args
}

// parameters is always nil: slot extraction exists only on Dialogflow.
func (t *actionsSDKTurn) parameters() map[string]any { return nil }

// inboundContexts is always nil: contexts exist only on Dialogflow.
func (t *actionsSDKTurn) inboundContexts() []Context { return nil }

func (t *actionsSDKTurn) statePayload() string {
	if t.v2 != nil {
		if t.v2.Conversation != nil {
			return t.v2.Conversation.ConversationToken
		}
		return ""
	}
	if t.v1.Conversation != nil {
		return t.v1.Conversation.ConversationToken
	}
	return ""
}

func (t *actionsSDKTurn) meta() turnMeta {
	if t.v2 != nil {
		return metaFromAppV2(t.v2)
	}
	return metaFromAppV1(t.v1)
}

func metaFromAppV2(req *wire.AppRequestV2) turnMeta {
	m := turnMeta{Sandbox: req.IsInSandbox}
	if req.Conversation != nil {
		m.ConversationID = req.Conversation.ConversationID
	}
	if req.User != nil {
		m.User = User{
			ID:          req.User.UserID,
			AccessToken: req.User.AccessToken,
			Locale:      req.User.Locale,
			LastSeen:    req.User.LastSeen,
		}
		m.Locale = req.User.Locale
		if p := req.User.Profile; p != nil {
			m.User.DisplayName = p.DisplayName
			m.User.GivenName = p.GivenName
			m.User.FamilyName = p.FamilyName
		}
	}
	if req.Device != nil && req.Device.Location != nil {
		m.Location = locationFromV2(req.Device.Location)
	}
	if req.Surface != nil {
		for _, c := range req.Surface.Capabilities {
			m.Surface.Capabilities = append(m.Surface.Capabilities, c.Name)
		}
	}
	return m
}

func metaFromAppV1(req *wire.AppRequestV1) turnMeta {
	m := turnMeta{}
	if req.Conversation != nil {
		m.ConversationID = req.Conversation.ConversationID
	}
	if req.User != nil {
		m.User = User{ID: req.User.UserID, AccessToken: req.User.AccessToken}
		if p := req.User.Profile; p != nil {
			m.User.DisplayName = p.DisplayName
			m.User.GivenName = p.GivenName
			m.User.FamilyName = p.FamilyName
		}
	}
	if req.Device != nil && req.Device.Location != nil {
		m.Location = locationFromV1(req.Device.Location)
	}
	return m
}

func locationFromV2(l *wire.LocationV2) *Location {
	out := &Location{
		FormattedAddress: l.FormattedAddress,
		ZipCode:          l.ZipCode,
		City:             l.City,
	}
	if l.Coordinates != nil {
		out.Latitude = l.Coordinates.Latitude
		out.Longitude = l.Coordinates.Longitude
	}
	return out
}

func locationFromV1(l *wire.LocationV1) *Location {
	out := &Location{
		FormattedAddress: l.FormattedAddress,
		ZipCode:          l.ZipCode,
		City:             l.City,
	}
	if l.Coordinates != nil {
		out.Latitude = l.Coordinates.Latitude
		out.Longitude = l.Coordinates.Longitude
	}
	return out
}
