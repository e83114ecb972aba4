// SPDX-License-Identifier: MIT

// Package voxhook adapts inbound voice-assistant webhook calls — two API
// generations crossed with two front-end integrations — into one
// conversation model, dispatches them to intent- and state-keyed handlers,
// and serializes the reply back into the exact wire shape the caller spoke.
package voxhook

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/voxhook/voxhook/dedupe"
	"github.com/voxhook/voxhook/internal/detect"
	"github.com/voxhook/voxhook/internal/log"
	"github.com/voxhook/voxhook/internal/metrics"
	"github.com/voxhook/voxhook/internal/wire"
	"github.com/voxhook/voxhook/telemetry"
)

// tracerName is the instrumentation scope of the per-turn dispatch span.
const tracerName = "voxhook"

// maxBodyBytes bounds inbound payloads. Platform requests are a few KB;
// anything near the cap is hostile.
const maxBodyBytes = 1 << 20

// Config carries per-instance settings. The zero value is a working
// configuration with verification disabled.
type Config struct {
	// VerifyHeader / VerifyValue, when both set, require every inbound
	// request to carry that exact header value.
	VerifyHeader string
	VerifyValue  string

	// LogLevel and LogOutput feed the process-wide logger on first use.
	LogLevel  string
	LogOutput io.Writer

	// DedupeTTL bounds replay-cache entries when a store is attached.
	DedupeTTL time.Duration
}

// App is the webhook entry point. Register handlers during setup, then mount
// it as an http.Handler; it is safe for concurrent requests once serving.
type App struct {
	cfg    Config
	router *router
	replay dedupe.Store
	verify VerificationSource
	logger zerolog.Logger
}

// VerificationSource supplies the active verification header pair. It is
// consulted on every request, so a hot-reloaded configuration takes effect
// without restarting the App. Returning two empty strings disables
// verification.
type VerificationSource func() (header, value string)

// Option customizes an App at construction.
type Option func(*App)

// WithReplayStore attaches a replay-suppression store: retried deliveries of
// an identical body are answered from cache instead of re-running handlers.
func WithReplayStore(store dedupe.Store) Option {
	return func(a *App) { a.replay = store }
}

// WithErrorHandler installs the dispatch error callback.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.router.onError = h }
}

// WithVerificationSource reads the verification pair per request instead of
// the static Config fields, typically from a hot-reloading config holder.
func WithVerificationSource(src VerificationSource) Option {
	return func(a *App) { a.verify = src }
}

// New constructs an App.
func New(cfg Config, opts ...Option) *App {
	log.Configure(log.Config{Level: cfg.LogLevel, Output: cfg.LogOutput})
	a := &App{
		cfg:    cfg,
		router: newRouter(),
		logger: log.WithComponent("app"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HandleIntent registers a state-agnostic handler for an intent.
func (a *App) HandleIntent(intent string, h Handler) {
	a.router.handle(AnyState, intent, h)
}

// HandleStateIntent registers a handler matched only when the round-tripped
// conversation state equals state.
func (a *App) HandleStateIntent(state, intent string, h Handler) {
	a.router.handle(state, intent, h)
}

// RedirectIntent routes one intent's turns to another intent's handler.
// Chains are followed at dispatch time; cycles surface as
// ErrCircularRedirect through the error handler.
func (a *App) RedirectIntent(intent, toIntent string) {
	a.router.redirect(AnyState, intent, AnyState, toIntent)
}

// RedirectStateIntent routes a state-specific key to another key.
func (a *App) RedirectStateIntent(state, intent, toState, toIntent string) {
	a.router.redirect(state, intent, toState, toIntent)
}

// HandleFallback registers the handler used when no table entry matches.
func (a *App) HandleFallback(h Handler) {
	a.router.fallback = h
}

// ServeHTTP implements the webhook endpoint.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, errorBodyPrefix+"method not allowed", http.StatusMethodNotAllowed)
		return
	}
	verifyHeader, verifyValue := a.cfg.VerifyHeader, a.cfg.VerifyValue
	if a.verify != nil {
		verifyHeader, verifyValue = a.verify()
	}
	if verifyHeader != "" && verifyValue != "" {
		if r.Header.Get(verifyHeader) != verifyValue {
			metrics.VerificationFailures.Inc()
			a.logger.Warn().
				Str(log.FieldEvent, "verify.reject").
				Msg("request verification failed")
			http.Error(w, errorBodyPrefix+ErrVerificationFailed.Error(), http.StatusForbidden)
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, errorBodyPrefix+"unreadable body", http.StatusBadRequest)
		return
	}

	gen, fe := detect.Detect(r.Header, body)
	outcomeLabels := []string{gen.String(), fe.String()}

	if cached, ok := a.replayed(r, body); ok {
		metrics.TurnsTotal.WithLabelValues(gen.String(), fe.String(), "duplicate").Inc()
		w.Header().Set(wire.HeaderContentType, wire.ContentTypeJSON)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)
		return
	}

	t, err := parseTurn(gen, fe, body)
	if err != nil {
		metrics.MalformedRequests.Inc()
		metrics.TurnsTotal.WithLabelValues(gen.String(), fe.String(), "rejected").Inc()
		a.logger.Warn().Err(err).
			Str(log.FieldGeneration, gen.String()).
			Str(log.FieldFrontEnd, fe.String()).
			Str(log.FieldEvent, "parse.reject").
			Msg("malformed request")
		http.Error(w, errorBodyPrefix+err.Error(), http.StatusBadRequest)
		return
	}

	conv := newConversation(gen, fe, body, t, r.Header.Get(wire.HeaderAPIVersion))
	if conv.StateLost() {
		metrics.StateResets.Inc()
	}

	ctx := log.ContextWithConversationID(r.Context(), conv.ConversationID())
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "voxhook.dispatch")
	span.SetAttributes(telemetry.TurnAttributes(
		conv.ConversationID(), conv.Intent(), stateKey(conv.State()),
		gen.String(), fe.String(),
	)...)

	start := time.Now()
	dispatchErr := a.router.dispatch(ctx, conv)
	metrics.DispatchDuration.WithLabelValues(outcomeLabels...).Observe(time.Since(start).Seconds())
	if dispatchErr != nil {
		span.SetAttributes(telemetry.ErrorAttributes(dispatchErr, errorClass(dispatchErr))...)
	}
	span.End()

	if dispatchErr != nil {
		metrics.TurnsTotal.WithLabelValues(gen.String(), fe.String(), "error").Inc()
		a.logger.Warn().Err(dispatchErr).
			Str(log.FieldEvent, "dispatch.fail").
			Msg("turn failed")
		msg := apologyText
		if configurationError(dispatchErr) {
			msg = dispatchErr.Error()
		}
		http.Error(w, errorBodyPrefix+msg, http.StatusBadRequest)
		return
	}

	respBody, header, err := conv.serializeResponse()
	if err != nil {
		metrics.HandlerErrors.WithLabelValues("serialize").Inc()
		metrics.TurnsTotal.WithLabelValues(gen.String(), fe.String(), "error").Inc()
		a.logger.Error().Err(err).
			Str(log.FieldEvent, "serialize.fail").
			Msg("response serialization failed")
		http.Error(w, errorBodyPrefix+err.Error(), http.StatusBadRequest)
		return
	}

	metrics.TurnsTotal.WithLabelValues(gen.String(), fe.String(), "handled").Inc()
	for name, values := range header {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(respBody)

	a.cacheResponse(r, body, respBody)
}

// replayed answers a retried delivery from the replay store.
func (a *App) replayed(r *http.Request, body []byte) ([]byte, bool) {
	if a.replay == nil {
		return nil, false
	}
	cached, err := a.replay.Get(r.Context(), dedupe.Fingerprint(body))
	if errors.Is(err, dedupe.ErrMiss) {
		return nil, false
	}
	if err != nil {
		a.logger.Warn().Err(err).
			Str(log.FieldEvent, "replay.get.fail").
			Msg("replay store read failed; processing normally")
		return nil, false
	}
	a.logger.Debug().
		Str(log.FieldEvent, "replay.hit").
		Msg("answering retried delivery from cache")
	return cached, true
}

func (a *App) cacheResponse(r *http.Request, reqBody, respBody []byte) {
	if a.replay == nil {
		return
	}
	ttl := a.cfg.DedupeTTL
	if ttl <= 0 {
		ttl = dedupe.DefaultTTL
	}
	if err := a.replay.Put(r.Context(), dedupe.Fingerprint(reqBody), respBody, ttl); err != nil {
		a.logger.Warn().Err(err).
			Str(log.FieldEvent, "replay.put.fail").
			Msg("replay store write failed")
	}
}

// parseTurn constructs the front-end variant for the detected format.
func parseTurn(gen wire.Generation, fe wire.FrontEnd, body []byte) (turn, error) {
	if fe == wire.ActionsSDK {
		return parseActionsSDKTurn(gen, body)
	}
	return parseDialogflowTurn(gen, body)
}
