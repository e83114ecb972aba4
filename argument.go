// SPDX-License-Identifier: MIT

package voxhook

import (
	"encoding/json"

	"github.com/voxhook/voxhook/internal/wire"
)

// Argument is a normalized typed argument supplied by a built-in system
// intent. At most one value field is populated per argument.
type Argument struct {
	Name       string
	RawText    string
	TextValue  string
	BoolValue  *bool
	IntValue   string
	FloatValue float64
	DateTime   *DateTime
	Extension  json.RawMessage
	StatusCode int
}

// DateTime is the flattened value of a DATETIME argument.
type DateTime struct {
	Year    int
	Month   int
	Day     int
	Hours   int
	Minutes int
	Seconds int
}

// Location is a device location granted via a location permission.
type Location struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	ZipCode          string
	City             string
}

// User describes the calling user as far as granted permissions allow.
type User struct {
	ID          string
	AccessToken string
	Locale      string
	LastSeen    string
	DisplayName string
	GivenName   string
	FamilyName  string
}

// Surface lists the capabilities of the surface handling the conversation.
type Surface struct {
	Capabilities []string
}

func (s Surface) has(name string) bool {
	for _, c := range s.Capabilities {
		if c == name {
			return true
		}
	}
	return false
}

// HasScreen reports whether the surface can display visual output.
func (s Surface) HasScreen() bool { return s.has(wire.CapabilityScreenOutput) }

// HasAudio reports whether the surface can play audio.
func (s Surface) HasAudio() bool { return s.has(wire.CapabilityAudioOutput) }

// HasBrowser reports whether the surface can open a web browser.
func (s Surface) HasBrowser() bool { return s.has(wire.CapabilityWebBrowser) }

func argumentFromV2(a wire.ArgumentV2) Argument {
	arg := Argument{
		Name:       a.Name,
		RawText:    a.RawText,
		TextValue:  a.TextValue,
		BoolValue:  a.BoolValue,
		IntValue:   a.IntValue,
		FloatValue: a.FloatValue,
		Extension:  a.Extension,
	}
	if a.Status != nil {
		arg.StatusCode = a.Status.Code
	}
	if a.DatetimeValue != nil {
		arg.DateTime = flattenDateTime(a.DatetimeValue)
	}
	return arg
}

func argumentFromV1(a wire.ArgumentV1) Argument {
	arg := Argument{
		Name:      a.Name,
		RawText:   a.RawText,
		TextValue: a.TextValue,
		BoolValue: a.BoolValue,
		IntValue:  a.IntValue,
	}
	if a.DatetimeValue != nil {
		arg.DateTime = flattenDateTime(a.DatetimeValue)
	}
	return arg
}

func flattenDateTime(dt *wire.DateTimeV2) *DateTime {
	out := &DateTime{}
	if dt.Date != nil {
		out.Year, out.Month, out.Day = dt.Date.Year, dt.Date.Month, dt.Date.Day
	}
	if dt.Time != nil {
		out.Hours, out.Minutes, out.Seconds = dt.Time.Hours, dt.Time.Minutes, dt.Time.Seconds
	}
	return out
}
