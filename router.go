// SPDX-License-Identifier: MIT

package voxhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/voxhook/voxhook/internal/log"
	"github.com/voxhook/voxhook/internal/metrics"
)

// Handler processes one conversation turn. It must call Ask or Tell on the
// conversation (directly or via the typed ask helpers) before returning;
// returning without responding surfaces ErrEmptyResponse to the error
// handler. Blocking work belongs in the handler itself, bounded by ctx.
type Handler func(ctx context.Context, conv *Conversation) error

// ErrorHandler receives handler-execution failures (a handler returning an
// error, or returning without responding). It may respond on the
// conversation to recover the turn; if it does not, the turn fails with an
// HTTP 400. Redirect-table defects are fatal and never reach it.
type ErrorHandler func(ctx context.Context, conv *Conversation, err error)

// AnyState matches a dispatch regardless of the conversation state.
const AnyState = "*"

// dispatchKey is the composite routing key. State is AnyState for
// state-agnostic registrations.
type dispatchKey struct {
	state  string
	intent string
}

func (k dispatchKey) String() string {
	return fmt.Sprintf("%s/%s", k.state, k.intent)
}

// routeEntry is one table entry: either a handler or a redirect to another
// key, never both.
type routeEntry struct {
	handler  Handler
	redirect *dispatchKey
}

// router owns the handler table. Registration happens during setup and is
// not synchronized; dispatch is read-only and safe for concurrent turns.
type router struct {
	table    map[dispatchKey]routeEntry
	fallback Handler
	onError  ErrorHandler
	logger   zerolog.Logger
}

func newRouter() *router {
	return &router{
		table:  map[dispatchKey]routeEntry{},
		logger: log.WithComponent("router"),
	}
}

func (r *router) handle(state, intent string, h Handler) {
	r.table[dispatchKey{state: state, intent: intent}] = routeEntry{handler: h}
}

func (r *router) redirect(state, intent, toState, toIntent string) {
	to := dispatchKey{state: toState, intent: toIntent}
	r.table[dispatchKey{state: state, intent: intent}] = routeEntry{redirect: &to}
}

// resolve follows redirect chains from the starting key to a concrete
// handler. A key visited twice is a configuration cycle; a redirect to an
// absent key is dangling. Both are returned as errors, never panics.
func (r *router) resolve(start dispatchKey) (Handler, error) {
	visited := map[dispatchKey]bool{}
	key := start
	for {
		if visited[key] {
			return nil, fmt.Errorf("%w: at %s", ErrCircularRedirect, key)
		}
		visited[key] = true

		entry, ok := r.table[key]
		if !ok {
			if key == start {
				return nil, fmt.Errorf("%w: %s", ErrNoMatchingHandler, key)
			}
			return nil, fmt.Errorf("%w: %s", ErrDanglingRedirect, key)
		}
		if entry.redirect != nil {
			key = *entry.redirect
			continue
		}
		return entry.handler, nil
	}
}

// lookup resolves the handler for a turn: the state-specific entry first,
// then the state-agnostic one, then the fallback.
func (r *router) lookup(state, intent string) (Handler, error) {
	if state != "" && state != AnyState {
		h, err := r.resolve(dispatchKey{state: state, intent: intent})
		if err == nil {
			return h, nil
		}
		if !isMissingEntry(err) {
			return nil, err
		}
	}
	h, err := r.resolve(dispatchKey{state: AnyState, intent: intent})
	if err == nil {
		return h, nil
	}
	if isMissingEntry(err) && r.fallback != nil {
		return r.fallback, nil
	}
	return nil, err
}

func isMissingEntry(err error) bool {
	return errors.Is(err, ErrNoMatchingHandler)
}

// dispatch runs the turn end to end: lookup, handler call, empty-response
// check. An unknown dispatch key is recoverable and closes the turn with the
// apology tell. Every other failure is returned to the caller: handler
// errors pass through the error handler first (which may recover by
// responding), redirect-table defects do not.
func (r *router) dispatch(ctx context.Context, conv *Conversation) error {
	state := stateKey(conv.State())
	intent := conv.Intent()

	logger := r.logger.With().
		Str(log.FieldIntent, intent).
		Str(log.FieldState, state).
		Str(log.FieldGeneration, conv.APIGeneration().String()).
		Str(log.FieldFrontEnd, conv.FrontEnd().String()).
		Logger()

	h, err := r.lookup(state, intent)
	if err != nil {
		metrics.HandlerErrors.WithLabelValues(errorClass(err)).Inc()
		if isMissingEntry(err) {
			logger.Warn().Err(err).Str(log.FieldOutcome, "apology").Msg("no handler for turn")
			if tellErr := conv.TellText(apologyText); tellErr != nil {
				logger.Error().Err(tellErr).Msg("apology reply failed")
			}
			return nil
		}
		logger.Error().Err(err).Str(log.FieldOutcome, "error").Msg("handler table misconfigured")
		return err
	}

	err = h(ctx, conv)
	if err == nil && !conv.hasResponded() {
		err = ErrEmptyResponse
	}
	if err == nil {
		logger.Debug().Str(log.FieldOutcome, "handled").Msg("turn dispatched")
		return nil
	}

	metrics.HandlerErrors.WithLabelValues(errorClass(err)).Inc()
	logger.Warn().Err(err).Str(log.FieldOutcome, "error").Msg("dispatch failed")
	if r.onError != nil {
		r.onError(ctx, conv, err)
		if conv.hasResponded() {
			return nil
		}
	}
	return err
}

// errorClass buckets a dispatch failure for metrics.
func errorClass(err error) string {
	switch {
	case errors.Is(err, ErrCircularRedirect):
		return "cycle"
	case errors.Is(err, ErrDanglingRedirect):
		return "dangling"
	case errors.Is(err, ErrNoMatchingHandler):
		return "no_handler"
	case errors.Is(err, ErrEmptyResponse):
		return "empty"
	default:
		return "handler"
	}
}

// stateKey renders the round-tripped state value as a dispatch key. Only
// string states participate in state-keyed routing.
func stateKey(state any) string {
	if s, ok := state.(string); ok {
		return s
	}
	return ""
}
