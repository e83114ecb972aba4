// SPDX-License-Identifier: MIT

package voxhook

import (
	"errors"

	"github.com/voxhook/voxhook/rich"
)

// Dispatch and configuration failures are distinct sentinels so callers can
// classify them with errors.Is instead of string matching.
var (
	// ErrCircularRedirect reports a redirect chain in the handler table that
	// revisits a key. This is a configuration error, never retried.
	ErrCircularRedirect = errors.New("circular handler redirect")

	// ErrNoMatchingHandler reports a dispatch key with no table entry after
	// following redirects. Recoverable: the adapter answers with the generic
	// apology instead of propagating.
	ErrNoMatchingHandler = errors.New("no matching handler")

	// ErrDanglingRedirect reports a redirect pointing at a missing entry.
	ErrDanglingRedirect = errors.New("redirect target not registered")

	// ErrEmptyResponse reports a handler that returned without calling Ask
	// or Tell.
	ErrEmptyResponse = errors.New("handler produced no response")

	// ErrMalformedRequest reports an inbound body missing its required
	// envelope (no inputs array, no result/queryResult).
	ErrMalformedRequest = errors.New("malformed conversation request")

	// ErrVerificationFailed reports a request that did not carry the
	// configured verification header value.
	ErrVerificationFailed = errors.New("request verification failed")
)

const (
	// apologyText is the fixed terminal reply for recoverable dispatch
	// failures and unhandled handler errors.
	apologyText = "Sorry, I am unable to process your request."

	// errorBodyPrefix is the fixed marker prefixing plain-text 400 bodies.
	errorBodyPrefix = "Action Error: "
)

// configurationError reports whether a dispatch failure stems from developer
// configuration: redirect-table defects and response-construction
// violations. These get their descriptive message on the 400 body; runtime
// handler failures get the fixed apology text instead.
func configurationError(err error) bool {
	return errors.Is(err, ErrCircularRedirect) ||
		errors.Is(err, ErrDanglingRedirect) ||
		rich.IsValidationError(err)
}
